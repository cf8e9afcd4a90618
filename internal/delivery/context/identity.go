package context

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// KeyIdentity is the key for storing the authenticated identity in context.
const KeyIdentity ContextKey = "identity"

// Identity is the per-request authentication result. It exists only when a
// request carried a bearer token that verified against a stored user.
type Identity struct {
	// Subject is the email the token was issued for.
	Subject string

	// UserID is the resolved user's primary key, so downstream lookups do
	// not have to go back through the login handle.
	UserID uuid.UUID
}

// SetIdentity stores the resolved identity in echo.Context and mirrors it into
// the request's context.Context so the service layer can read it.
func SetIdentity(c echo.Context, identity *Identity) {
	c.Set(string(KeyIdentity), identity)

	ctx := WithIdentity(c.Request().Context(), identity)
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetIdentity extracts the identity from echo.Context.
// Returns nil when the request is unauthenticated.
func GetIdentity(c echo.Context) *Identity {
	if identity, ok := c.Get(string(KeyIdentity)).(*Identity); ok {
		return identity
	}

	return nil
}

// WithIdentity returns a new context carrying the identity.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, KeyIdentity, identity)
}

// IdentityFromContext extracts the identity from a standard context.Context.
// Returns nil when the request is unauthenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(KeyIdentity).(*Identity); ok {
		return identity
	}

	return nil
}
