// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"passport/config"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
)

const defaultTokenTTL = 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using
// HMAC-signed JWTs. It holds only the signing secret and the TTL, so a single
// instance is safe for concurrent use across requests.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService.
// It fails fast when no signing secret is configured, since every issued
// token would otherwise be forgeable.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth == nil || cfg.Auth.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &jwtService{
		secret: []byte(cfg.Auth.Secret),
		ttl:    ttl,
	}, nil
}

// Issue creates a signed token for the given user. The subject claim carries
// the user's email; expiry is now plus the configured TTL.
func (s *jwtService) Issue(user *entity.User) (string, error) {
	now := time.Now()
	claims := service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// ExtractSubject decodes the token without verifying the signature and
// returns the subject claim. The result is only good enough to pre-resolve a
// user lookup; Validate is the sole authority on token validity.
func (s *jwtService) ExtractSubject(tokenString string) (string, error) {
	claims := &service.Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return "", domainerrors.ErrMalformedToken.WrapMessage("failed to parse token structure")
	}

	return claims.Subject, nil
}

// Validate verifies the token's signature, expiry, and subject against the
// given user. All failure modes collapse into false so the caller cannot
// distinguish a bad signature from an expired token or a subject mismatch.
func (s *jwtService) Validate(tokenString string, user *entity.User) bool {
	if user == nil {
		return false
	}

	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Reject any signing method we did not issue, including "none".
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}

	// ParseWithClaims already enforced exp/iat; the subject binding is ours.
	return claims.Subject == user.Email
}

// TokenDuration returns the configured token time-to-live.
func (s *jwtService) TokenDuration() time.Duration {
	return s.ttl
}
