package middleware

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
)

// AuthMiddleware resolves the caller's identity from a bearer token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo, logger: logger}
}

// Resolve inspects the Authorization header and, when the token verifies
// against a stored user, attaches that identity to the request. It never
// rejects a request: a missing, malformed, or invalid token leaves the
// request unauthenticated (as does a failing user lookup), and route policy
// decides what that means.
func (m *AuthMiddleware) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := extractBearerToken(c)
		if !ok {
			return next(c)
		}

		// Peek at the subject without verifying the signature. The claimed
		// subject only selects which user's credentials to verify against.
		subject, err := m.tokenSvc.ExtractSubject(tokenString)
		if err != nil || subject == "" {
			return next(c)
		}

		ctx := c.Request().Context()
		user, err := m.userRepo.FindByEmail(ctx, subject)
		if err != nil {
			// Lookup failures of any kind degrade to unauthenticated. An
			// infrastructure error is still worth a trace for operators.
			if !errors.Is(err, repository.ErrUserNotFound) {
				deliverycontext.GetLoggerOrDefault(ctx, m.logger).Warn("User lookup failed during authentication",
					slog.String("subject", subject), slog.Any("error", err))
			}

			return next(c)
		}

		// Full verification: signature, expiry, and subject match.
		if !m.tokenSvc.Validate(tokenString, user) {
			return next(c)
		}

		deliverycontext.SetIdentity(c, &deliverycontext.Identity{
			Subject: user.Email,
			UserID:  user.ID,
		})

		return next(c)
	}
}

// extractBearerToken pulls the token out of the Authorization header.
// Returns false when the header is absent or not a bearer scheme.
func extractBearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", false
	}

	return tokenString, true
}
