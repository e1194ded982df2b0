// Package repository defines sentinel error values shared across
// repositories. These let handlers distinguish failure scenarios without
// inspecting driver-specific errors: ErrEmailExists maps to an HTTP 409,
// ErrUserNotFound and ErrTaskNotFound to 404/401 depending on context.
package repository

import "errors"

// ErrEmailExists is returned when a signup collides with an existing
// user's email. Handlers translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when no user row matches the given email
// or id. The login handler collapses it with a bad password into one
// generic unauthorized response.
var ErrUserNotFound = errors.New("user not found")

// ErrTaskNotFound is returned when no task row matches the given id for
// the requesting user. It covers both "does not exist" and "belongs to
// someone else" so ownership is never leaked.
var ErrTaskNotFound = errors.New("task not found")
