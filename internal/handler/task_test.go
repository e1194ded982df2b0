package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/todo-api/internal/auth"
	"github.com/iliyamo/todo-api/internal/middleware"
	"github.com/iliyamo/todo-api/internal/model"
	"github.com/iliyamo/todo-api/internal/queue"
)

// newTaskServer wires the task routes behind the session middleware the
// same way the router does, backed by fakes.
func newTaskServer(tasks *fakeTaskStore, events ActivityPublisher) *echo.Echo {
	e := echo.New()
	h := NewTaskHandler(tasks, events)
	g := e.Group("/api/todos")
	g.Use(middleware.Session("test-secret"))
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return e
}

func tokenFor(t *testing.T, userID, email string) string {
	t.Helper()
	tok, err := auth.NewSessionToken("test-secret", auth.Claims{UserID: userID, Email: email}, time.Hour)
	require.NoError(t, err)
	return tok.Token
}

func request(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTasks_CRUDForOwner(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskStore()
	events := &recordingPublisher{}
	e := newTaskServer(tasks, events)
	token := tokenFor(t, "user-alice", "alice@example.com")

	// Empty list first.
	rec := request(e, http.MethodGet, "/api/todos", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	// Create.
	rec = request(e, http.MethodPost, "/api/todos", token, `{"title":"buy milk","description":"2 liters"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-alice", created.UserID)
	assert.Equal(t, "buy milk", created.Title)
	assert.False(t, created.IsCompleted)

	// Fetch it directly.
	rec = request(e, http.MethodGet, "/api/todos/"+created.ID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)

	rec = request(e, http.MethodGet, "/api/todos/unknown-id", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// List contains it.
	rec = request(e, http.MethodGet, "/api/todos", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// Complete.
	rec = request(e, http.MethodPatch, "/api/todos/"+created.ID, token, `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.IsCompleted)

	// Delete.
	rec = request(e, http.MethodDelete, "/api/todos/"+created.ID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = request(e, http.MethodGet, "/api/todos", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestTasks_GatedByMiddleware(t *testing.T) {
	t.Parallel()

	e := newTaskServer(newFakeTaskStore(), nil)

	// No header.
	rec := request(e, http.MethodGet, "/api/todos", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Invalid token.
	rec = request(e, http.MethodGet, "/api/todos", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTasks_OwnershipBoundary(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskStore()
	e := newTaskServer(tasks, nil)
	alice := tokenFor(t, "user-alice", "alice@example.com")
	bob := tokenFor(t, "user-bob", "bob@example.com")

	rec := request(e, http.MethodPost, "/api/todos", alice, `{"title":"alice task"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Bob sees an empty list and cannot touch alice's task.
	rec = request(e, http.MethodGet, "/api/todos", bob, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = request(e, http.MethodGet, "/api/todos/"+created.ID, bob, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = request(e, http.MethodPatch, "/api/todos/"+created.ID, bob, `{"completed":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = request(e, http.MethodDelete, "/api/todos/"+created.ID, bob, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Alice still owns an untouched task.
	rec = request(e, http.MethodGet, "/api/todos", alice, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.False(t, listed[0].IsCompleted)
}

func TestTasks_Validation(t *testing.T) {
	t.Parallel()

	e := newTaskServer(newFakeTaskStore(), nil)
	token := tokenFor(t, "user-alice", "alice@example.com")

	rec := request(e, http.MethodPost, "/api/todos", token, `{"title":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(e, http.MethodPatch, "/api/todos/some-id", token, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(e, http.MethodPatch, "/api/todos/unknown-id", token, `{"completed":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTasks_PublishesActivity(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskStore()
	events := &recordingPublisher{}
	e := newTaskServer(tasks, events)
	token := tokenFor(t, "user-alice", "alice@example.com")

	rec := request(e, http.MethodPost, "/api/todos", token, `{"title":"buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = request(e, http.MethodPatch, "/api/todos/"+created.ID, token, `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Publishing happens on a goroutine; wait for both events.
	require.Eventually(t, func() bool {
		events.mu.Lock()
		defer events.mu.Unlock()
		return len(events.events) == 2
	}, 2*time.Second, 10*time.Millisecond)

	events.mu.Lock()
	defer events.mu.Unlock()
	actions := []string{events.events[0].Action, events.events[1].Action}
	assert.ElementsMatch(t, []string{queue.ActionCreated, queue.ActionCompleted}, actions)
	for _, ev := range events.events {
		assert.Equal(t, "user-alice", ev.UserID)
	}
}
