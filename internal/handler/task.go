package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-api/internal/middleware"
	"github.com/iliyamo/todo-api/internal/model"
	"github.com/iliyamo/todo-api/internal/queue"
	"github.com/iliyamo/todo-api/internal/repository"
)

// TaskStore is the per-user task persistence the handlers need. The
// concrete implementation is repository.TaskRepo.
type TaskStore interface {
	Create(ctx context.Context, t *model.Task) error
	ListByUser(ctx context.Context, userID string) ([]model.Task, error)
	GetByID(ctx context.Context, id, userID string) (model.Task, error)
	SetCompleted(ctx context.Context, id, userID string, done bool) (model.Task, error)
	Delete(ctx context.Context, id, userID string) error
}

// ActivityPublisher emits task activity events. May be nil, in which case
// no events are published.
type ActivityPublisher interface {
	Publish(ctx context.Context, event queue.TaskActivityEvent) error
}

// TaskHandler implements the per-user task CRUD endpoints. Authorization
// comes entirely from the identity the session middleware attached; every
// store call is scoped by that user id.
type TaskHandler struct {
	Tasks  TaskStore
	Events ActivityPublisher
}

func NewTaskHandler(tasks TaskStore, events ActivityPublisher) *TaskHandler {
	return &TaskHandler{Tasks: tasks, Events: events}
}

type createTaskReq struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

type updateTaskReq struct {
	Completed *bool `json:"completed"`
}

// List handles GET /api/todos and returns the authenticated user's tasks.
func (h *TaskHandler) List(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Tasks.ListByUser(ctx, claims.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /api/todos/:id and returns a single task owned by the
// authenticated user.
func (h *TaskHandler) Get(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	task, err := h.Tasks.GetByID(ctx, c.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, task)
}

// Create handles POST /api/todos.
func (h *TaskHandler) Create(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	task := model.Task{
		UserID:      claims.UserID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		DueDate:     req.DueDate,
	}
	if err := h.Tasks.Create(ctx, &task); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create task failed"})
	}

	h.publish(task, queue.ActionCreated)
	return c.JSON(http.StatusCreated, task)
}

// Update handles PATCH /api/todos/:id and toggles completion.
func (h *TaskHandler) Update(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")
	var req updateTaskReq
	if err := c.Bind(&req); err != nil || req.Completed == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "completed is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	task, err := h.Tasks.SetCompleted(ctx, id, claims.UserID, *req.Completed)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	action := queue.ActionCompleted
	if !task.IsCompleted {
		action = queue.ActionReopened
	}
	h.publish(task, action)
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/todos/:id.
func (h *TaskHandler) Delete(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Tasks.Delete(ctx, id, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	h.publish(model.Task{ID: id, UserID: claims.UserID}, queue.ActionDeleted)
	return c.JSON(http.StatusOK, echo.Map{"message": "deleted successfully"})
}

// publish emits a task activity event in the background. Failures are
// already logged by the publisher and never fail the request.
func (h *TaskHandler) publish(task model.Task, action string) {
	if h.Events == nil {
		return
	}
	ev := queue.TaskActivityEvent{
		TaskID:     task.ID,
		UserID:     task.UserID,
		Action:     action,
		Title:      task.Title,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		_ = h.Events.Publish(ctx, ev)
	}()
}
