package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/todo-api/internal/auth"
)

const testSecret = "test-secret"

// protectedProbe records whether the wrapped handler ran and what identity
// it observed.
type protectedProbe struct {
	called bool
	claims auth.Claims
}

func (p *protectedProbe) handler(c echo.Context) error {
	p.called = true
	p.claims, _ = ClaimsFrom(c)
	return c.NoContent(http.StatusOK)
}

func doRequest(t *testing.T, authorization string) (*httptest.ResponseRecorder, *protectedProbe) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	probe := &protectedProbe{}
	err := Session(testSecret)(probe.handler)(c)
	require.NoError(t, err)
	return rec, probe
}

func TestSession_MissingHeader(t *testing.T) {
	t.Parallel()

	rec, probe := doRequest(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.called, "protected handler must not run without a token")
	assert.Contains(t, rec.Body.String(), "missing authorization header")
}

func TestSession_MalformedHeader(t *testing.T) {
	t.Parallel()

	for _, header := range []string{"Token abc", "bearer abc", "Bearer", "Bearer   "} {
		rec, probe := doRequest(t, header)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.False(t, probe.called, "header %q must not reach the handler", header)
	}
}

func TestSession_InvalidToken(t *testing.T) {
	t.Parallel()

	rec, probe := doRequest(t, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.called)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestSession_WrongSecretToken(t *testing.T) {
	t.Parallel()

	tok, err := auth.NewSessionToken("other-secret", auth.Claims{UserID: "u1", Email: "u1@example.com"}, time.Hour)
	require.NoError(t, err)

	rec, probe := doRequest(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, probe.called)
}

func TestSession_ValidTokenReachesHandlerWithIdentity(t *testing.T) {
	t.Parallel()

	want := auth.Claims{UserID: "a6f0c1d2-1111-2222-3333-444455556666", Email: "alice@example.com"}
	tok, err := auth.NewSessionToken(testSecret, want, time.Hour)
	require.NoError(t, err)

	rec, probe := doRequest(t, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, probe.called, "valid token must reach the protected handler")
	assert.Equal(t, want, probe.claims)
}

func TestClaimsFrom_AbsentWithoutMiddleware(t *testing.T) {
	t.Parallel()

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, ok := ClaimsFrom(c)
	assert.False(t, ok)
}
