package model

import "time"

// Task represents a row in the `tasks` table. Every task belongs to
// exactly one user and is only ever visible to that user.
//
// Fields:
//  ID          – UUID primary key.
//  UserID      – owner of the task (users.id, cascade on delete).
//  Title       – short description, required.
//  Description – optional longer text.
//  IsCompleted – whether the task is done.
//  DueDate     – optional due date (null when unset).
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
