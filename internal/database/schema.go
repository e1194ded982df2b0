package database

import (
	"context"
	"database/sql"
)

// The schema is created at startup with idempotent DDL. There is no
// migration tooling; both statements are safe to run on every boot.
// The email column carries a binary collation so uniqueness and login
// lookup are case-sensitive on the stored bytes.
const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id            CHAR(36)     NOT NULL PRIMARY KEY,
    email         VARCHAR(150) COLLATE utf8mb4_bin NOT NULL UNIQUE,
    password_hash VARCHAR(255) NOT NULL,
    salt          VARCHAR(255) NOT NULL,
    created_at    DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
    id           CHAR(36)     NOT NULL PRIMARY KEY,
    user_id      CHAR(36)     NOT NULL,
    title        VARCHAR(255) NOT NULL,
    description  TEXT         NULL,
    is_completed BOOLEAN      NOT NULL DEFAULT FALSE,
    due_date     DATETIME     NULL,
    created_at   DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at   DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
    CONSTRAINT fk_tasks_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
    INDEX idx_tasks_user (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the users and tasks tables when they do not exist.
// Users must be created first because tasks references it.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{createUsersTable, createTasksTable} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
