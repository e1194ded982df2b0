package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/todo-api/internal/model"
)

// UserRepo persists identity records in the 'users' table. It owns the
// table exclusively: nothing else reads or writes user rows.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new user and returns its generated UUID. The email is
// stored exactly as given (the column collation is binary, so lookups and
// the unique index are case-sensitive) and pre-checked for uniqueness; the
// unique index still backs the check, so a racing duplicate insert also
// surfaces as ErrEmailExists (MySQL error 1062).
func (r *UserRepo) Create(ctx context.Context, email, passwordHash, salt string) (string, error) {
	var existing string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE email=? LIMIT 1", email).Scan(&existing)
	if err == nil {
		return "", ErrEmailExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, salt) VALUES (?,?,?,?)",
		id, email, passwordHash, salt)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return "", ErrEmailExists
		}
		return "", err
	}
	return id, nil
}

// GetByEmail fetches a user by exact email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,salt,created_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Salt, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}
