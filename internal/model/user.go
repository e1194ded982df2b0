package model

import "time"

// User represents an identity record as stored in the `users` table.
// Each field corresponds to a column. Records are created exactly once at
// signup and are immutable afterwards; there is no password-change flow.
//
// Fields:
//  ID           – UUID primary key, generated at signup.
//  Email        – unique email address, the natural key for login lookup.
//  PasswordHash – hex PBKDF2-SHA256 digest keyed by Salt.
//  Salt         – per-user random value; never reused across users.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           string    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Salt         string    // users.salt
	CreatedAt    time.Time // users.created_at
}
