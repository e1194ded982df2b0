package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/todo-api/internal/model"
)

// TaskRepo persists tasks in the 'tasks' table. Every statement is scoped
// by user_id so one user can never read or mutate another user's rows;
// the caller supplies the identity established by the session middleware.
type TaskRepo struct{ DB *sql.DB }

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{DB: db} }

// Create inserts a task for the given user and fills in the generated id
// and timestamps on the passed struct.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	t.ID = uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO tasks (id, user_id, title, description, due_date) VALUES (?,?,?,?,?)",
		t.ID, t.UserID, t.Title, t.Description, t.DueDate)
	if err != nil {
		return err
	}
	created, err := r.getOwned(ctx, t.ID, t.UserID)
	if err != nil {
		return err
	}
	*t = created
	return nil
}

// ListByUser returns all tasks belonging to the user, newest first.
func (r *TaskRepo) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,title,description,is_completed,due_date,created_at,updated_at FROM tasks WHERE user_id=? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		var desc sql.NullString
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &desc, &t.IsCompleted, &t.DueDate, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Description = desc.String
		items = append(items, t)
	}
	return items, rows.Err()
}

// GetByID fetches a single task owned by the user.
func (r *TaskRepo) GetByID(ctx context.Context, id, userID string) (model.Task, error) {
	return r.getOwned(ctx, id, userID)
}

// SetCompleted updates the completion flag of a task owned by the user and
// returns the updated row.
func (r *TaskRepo) SetCompleted(ctx context.Context, id, userID string, done bool) (model.Task, error) {
	// MySQL reports zero affected rows for a no-op update, so existence is
	// checked by re-reading the row rather than via RowsAffected.
	_, err := r.DB.ExecContext(ctx,
		"UPDATE tasks SET is_completed=?, updated_at=NOW() WHERE id=? AND user_id=?",
		done, id, userID)
	if err != nil {
		return model.Task{}, err
	}
	return r.getOwned(ctx, id, userID)
}

// Delete removes a task owned by the user.
func (r *TaskRepo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM tasks WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepo) getOwned(ctx context.Context, id, userID string) (model.Task, error) {
	var t model.Task
	var desc sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,title,description,is_completed,due_date,created_at,updated_at FROM tasks WHERE id=? AND user_id=? LIMIT 1",
		id, userID).Scan(&t.ID, &t.UserID, &t.Title, &desc, &t.IsCompleted, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, ErrTaskNotFound
	}
	t.Description = desc.String
	return t, err
}
