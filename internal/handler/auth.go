package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-api/internal/auth"
	"github.com/iliyamo/todo-api/internal/config"
	"github.com/iliyamo/todo-api/internal/model"
	"github.com/iliyamo/todo-api/internal/repository"
)

// dbTimeout bounds every credential-store round-trip. A store that does
// not answer in time fails the request; there are no retries.
const dbTimeout = 5 * time.Second

// UserStore is the slice of the credential store the auth endpoints need.
// The concrete implementation is repository.UserRepo; tests substitute an
// in-memory fake.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, salt string) (string, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// AuthHandler bundles dependencies for the signup/login/verify endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResp struct {
	ID string `json:"id"`
}

type loginResp struct {
	Status string `json:"status"`
	User   string `json:"user"`
	Token  string `json:"token"`
}

// Signup creates a new user: fresh salt, keyed hash of the password,
// one new row. Duplicate emails fail with 409 and create nothing.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	hash := auth.HashPassword(req.Password, salt, h.Cfg.HashIters)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Email, hash, salt)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	return c.JSON(http.StatusCreated, signupResp{ID: id})
}

// Login verifies the credentials and mints a session token. Unknown email
// and wrong password produce the same response so callers cannot probe
// which part failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !auth.VerifyPassword(u.PasswordHash, req.Password, u.Salt, h.Cfg.HashIters) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	ttl := time.Duration(h.Cfg.AccessTTLMin) * time.Minute
	tok, err := auth.NewSessionToken(h.Cfg.JWTSecret, auth.Claims{UserID: u.ID, Email: u.Email}, ttl)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, loginResp{Status: "success", User: u.Email, Token: tok.Token})
}

// Me decodes the bearer token from the Authorization header and returns
// the identity claims it carries. The route is public: verification is a
// pure function of the token and server secret, no store lookup.
func (h *AuthHandler) Me(c echo.Context) error {
	header := c.Request().Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "malformed authorization header"})
	}
	claims, err := auth.VerifyToken(h.Cfg.JWTSecret, strings.TrimSpace(raw))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": claims.UserID, "email": claims.Email})
}
