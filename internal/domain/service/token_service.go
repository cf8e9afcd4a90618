package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"passport/internal/domain/entity"
)

// Claims defines the claims carried by issued tokens. The subject is the
// user's email (the login handle).
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating signed,
// stateless tokens. Implementations hold only immutable configuration (the
// signing secret and the TTL) so they are safe for concurrent use.
type TokenService interface {
	// Issue creates a signed token for the given user, carrying the user's
	// email as subject, the issue time, and an expiry of now + TTL.
	Issue(user *entity.User) (string, error)

	// ExtractSubject decodes the token WITHOUT verifying its signature and
	// returns the subject claim. It is used only to pre-resolve the identity
	// lookup and must never be trusted for authorization decisions.
	// It fails only when the token is structurally malformed.
	ExtractSubject(tokenString string) (string, error)

	// Validate verifies the token's signature with the service secret, checks
	// that it has not expired, and checks that its subject matches the given
	// user's email. Every failure mode collapses into false so callers cannot
	// leak which check failed.
	Validate(tokenString string, user *entity.User) bool

	// TokenDuration returns the configured token time-to-live.
	TokenDuration() time.Duration
}
