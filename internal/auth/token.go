package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded, verified identity carried by a session token.
// It is the only thing downstream handlers see about the caller; no
// database lookup backs it after login.
type Claims struct {
	UserID string
	Email  string
}

// SessionToken bundles a signed JWT string with its expiry so handlers can
// report both to the client.
type SessionToken struct {
	Token string
	Exp   time.Time
}

// NewSessionToken builds and signs an HS256 JWT asserting the given identity.
// The token carries sub (user ID), email, iat and exp. ttl controls the
// lifetime; tokens are stateless and cannot be revoked before expiry.
func NewSessionToken(secret string, claims Claims, ttl time.Duration) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	})
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// sessionParser rejects everything but HS256 and decodes base64url
// strictly. Strict decoding matters for tamper rejection: the default
// lenient mode ignores the unused trailing bits of a segment's last
// character, so a bit flipped there would decode to the same bytes and
// the mutated token would still verify.
var sessionParser = jwt.NewParser(
	jwt.WithValidMethods([]string{"HS256"}),
	jwt.WithStrictDecoding(),
)

// VerifyToken parses and validates a session token against the server
// secret. Verification is strict: the signing method must be HS256, the
// signature must match, and the sub and email claims must be present as
// non-empty strings. Any failure collapses to ErrInvalidToken -- there is
// no partial or lenient acceptance.
func VerifyToken(secret, raw string) (Claims, error) {
	tok, err := sessionParser.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, ok := mc["sub"].(string)
	if !ok || sub == "" {
		return Claims{}, ErrInvalidToken
	}
	email, ok := mc["email"].(string)
	if !ok || email == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: sub, Email: email}, nil
}
