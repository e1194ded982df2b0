package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-api/internal/auth"
)

// claimsKey is the context key under which verified identity claims are
// stored. Handlers must use ClaimsFrom instead of reading it directly.
const claimsKey = "identity"

// Session returns an Echo middleware that gates every protected request on
// a valid bearer session token. The token alone establishes identity --
// the middleware never queries the credential store, trading revocation
// awareness for statelessness.
//
// Rejections, all 401 and all before the protected handler runs:
//   - no Authorization header
//   - header not using the "Bearer <token>" scheme
//   - token failing structural or signature verification
func Session(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization header"})
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "malformed authorization header"})
			}

			claims, err := auth.VerifyToken(secret, strings.TrimSpace(raw))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the verified identity claims stored by Session. The
// second return value is false when the request did not pass through the
// session middleware.
func ClaimsFrom(c echo.Context) (auth.Claims, bool) {
	claims, ok := c.Get(claimsKey).(auth.Claims)
	return claims, ok
}
