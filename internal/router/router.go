// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/todo-api/internal/config"
	"github.com/iliyamo/todo-api/internal/handler"
	"github.com/iliyamo/todo-api/internal/middleware"
)

// Register wires every route of the application onto the provided Echo
// instance.
//
// Unauthenticated routes live under /api/auth (plus /healthz) and carry a
// Redis token-bucket limiter to slow credential stuffing. Everything under
// /api/todos is gated by the session middleware: requests reach the task
// handlers only with a valid bearer token, and the verified claims ride
// the request context from there on. The Redis client may be nil, in
// which case the limiter and cache become pass-throughs.
func Register(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, t *handler.TaskHandler, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	rl := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Signup, login and token introspection do not require a session.
	authGroup := e.Group("/api/auth", rl)
	authGroup.POST("/signup", a.Signup)
	authGroup.POST("/login", a.Login)
	authGroup.GET("/me", a.Me)

	// Protected task resources. The cache middleware runs after Session so
	// the cache key can include the verified subject.
	todos := e.Group("/api/todos")
	todos.Use(middleware.Session(cfg.JWTSecret))
	todos.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	todos.GET("", t.List)
	todos.GET("/:id", t.Get)
	todos.POST("", t.Create)
	todos.PATCH("/:id", t.Update)
	todos.DELETE("/:id", t.Delete)
}
