// Package auth implements the credential and session-token core: salted
// password hashing, HS256 session token minting and strict verification.
package auth

import "errors"

// ErrInvalidToken is returned for any structural, signature or claim
// failure during token verification. There is deliberately only one
// token error: partial acceptance is never allowed.
var ErrInvalidToken = errors.New("invalid token")
