package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"passport/config"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/infra/auth"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func newMiddlewareLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMiddlewareTokenService(t *testing.T) service.TokenService {
	t.Helper()

	svc, err := auth.NewJWTService(&config.Config{
		Auth: &config.AuthConfig{Secret: "middleware-test-secret", TokenTTL: time.Hour},
	})
	require.NoError(t, err)

	return svc
}

// runResolve sends a request through AuthMiddleware.Resolve and reports the
// identity the downstream handler observed.
func runResolve(t *testing.T, m *AuthMiddleware, authHeader string) (*deliverycontext.Identity, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *deliverycontext.Identity
	handler := m.Resolve(func(c echo.Context) error {
		seen = deliverycontext.GetIdentity(c)
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)

	return seen, err
}

func TestAuthMiddleware_Resolve_NoHeader(t *testing.T) {
	userRepo := new(mockUserRepository)
	m := NewAuthMiddleware(newMiddlewareTokenService(t), userRepo, newMiddlewareLogger())

	identity, err := runResolve(t, m, "")

	require.NoError(t, err)
	assert.Nil(t, identity)
	userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAuthMiddleware_Resolve_NonBearerScheme(t *testing.T) {
	userRepo := new(mockUserRepository)
	m := NewAuthMiddleware(newMiddlewareTokenService(t), userRepo, newMiddlewareLogger())

	identity, err := runResolve(t, m, "Basic dXNlcjpwYXNz")

	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestAuthMiddleware_Resolve_MalformedToken(t *testing.T) {
	userRepo := new(mockUserRepository)
	m := NewAuthMiddleware(newMiddlewareTokenService(t), userRepo, newMiddlewareLogger())

	identity, err := runResolve(t, m, "Bearer not-a-jwt")

	require.NoError(t, err)
	assert.Nil(t, identity)
	userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAuthMiddleware_Resolve_ValidToken(t *testing.T) {
	tokenSvc := newMiddlewareTokenService(t)
	user := &entity.User{ID: uuid.New(), Email: "test@example.com"}

	token, err := tokenSvc.Issue(user)
	require.NoError(t, err)

	userRepo := new(mockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

	m := NewAuthMiddleware(tokenSvc, userRepo, newMiddlewareLogger())
	identity, err := runResolve(t, m, "Bearer "+token)

	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, user.Email, identity.Subject)
	assert.Equal(t, user.ID, identity.UserID)
}

func TestAuthMiddleware_Resolve_UnknownSubject(t *testing.T) {
	tokenSvc := newMiddlewareTokenService(t)

	token, err := tokenSvc.Issue(&entity.User{ID: uuid.New(), Email: "gone@example.com"})
	require.NoError(t, err)

	userRepo := new(mockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, "gone@example.com").Return(nil, repository.ErrUserNotFound)

	m := NewAuthMiddleware(tokenSvc, userRepo, newMiddlewareLogger())
	identity, err := runResolve(t, m, "Bearer "+token)

	// A token for a deleted user degrades to unauthenticated, not an error.
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestAuthMiddleware_Resolve_RepositoryError(t *testing.T) {
	tokenSvc := newMiddlewareTokenService(t)
	user := &entity.User{ID: uuid.New(), Email: "test@example.com"}

	token, err := tokenSvc.Issue(user)
	require.NoError(t, err)

	userRepo := new(mockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(nil, errors.New("connection refused"))

	m := NewAuthMiddleware(tokenSvc, userRepo, newMiddlewareLogger())
	identity, err := runResolve(t, m, "Bearer "+token)

	// A failed lookup degrades to unauthenticated rather than failing the request.
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestAuthMiddleware_Resolve_TamperedToken(t *testing.T) {
	tokenSvc := newMiddlewareTokenService(t)
	user := &entity.User{ID: uuid.New(), Email: "test@example.com"}

	token, err := tokenSvc.Issue(user)
	require.NoError(t, err)
	tampered := token[:len(token)-2] + "xx"

	userRepo := new(mockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

	m := NewAuthMiddleware(tokenSvc, userRepo, newMiddlewareLogger())
	identity, err := runResolve(t, m, "Bearer "+tampered)

	require.NoError(t, err)
	assert.Nil(t, identity)
}
