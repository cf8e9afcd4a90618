package impl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/usecase"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	userRepo     *mockUserRepository
	txUserRepo   *mockUserRepository
	hasher       *mockPasswordHasher
	tokenService *mockTokenService
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	t.Helper()

	userRepo := new(mockUserRepository)
	txUserRepo := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	tokenService := new(mockTokenService)

	service := NewAuthService(AuthServiceParams{
		TxManager:    &stubTxManager{factory: &stubRepoFactory{userRepo: txUserRepo}},
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       newDiscardLogger(),
	})

	return authServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		txUserRepo:   txUserRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Str0ng!Password",
	}

	fixtures.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	fixtures.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fixtures.txUserRepo.On("FindByEmail", ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fixtures.txUserRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = uuid.New()
		}).
		Return(nil)
	fixtures.tokenService.On("Issue", mock.AnythingOfType("*entity.User")).Return("signed.token", nil)
	fixtures.tokenService.On("TokenDuration").Return(24 * time.Hour)

	output, err := fixtures.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "signed.token", output.Token)
	assert.Equal(t, 24*time.Hour, output.ExpiresIn)
	assert.Equal(t, input.Email, output.User.Email)
	assert.Equal(t, "hashed_password", output.User.PasswordHash)
	assert.NotEqual(t, uuid.Nil, output.User.ID)
	fixtures.txUserRepo.AssertExpectations(t)
	fixtures.tokenService.AssertExpectations(t)
}

func TestAuthService_Register_EmailAlreadyExists(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "taken@example.com",
		Password: "Str0ng!Password",
	}

	existing := &entity.User{ID: uuid.New(), Email: input.Email}

	fixtures.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	fixtures.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fixtures.txUserRepo.On("FindByEmail", ctx, input.Email).Return(existing, nil)

	output, err := fixtures.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
	fixtures.txUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fixtures.tokenService.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "weak",
	}

	fixtures.hasher.On("ValidatePasswordStrength", input.Password).
		Return(errors.New("password must be at least 8 characters long"))

	output, err := fixtures.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
	fixtures.hasher.AssertNotCalled(t, "Hash", mock.Anything)
	fixtures.txUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_TokenIssueFails(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Str0ng!Password",
	}

	fixtures.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	fixtures.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fixtures.txUserRepo.On("FindByEmail", ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fixtures.txUserRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	fixtures.tokenService.On("Issue", mock.AnythingOfType("*entity.User")).
		Return("", errors.New("signing failed"))

	output, err := fixtures.service.Register(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
}

func TestAuthService_Login_Success(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
	}
	input := &usecase.LoginInput{Email: user.Email, Password: "Str0ng!Password"}

	fixtures.userRepo.On("FindByEmail", ctx, input.Email).Return(user, nil)
	fixtures.hasher.On("Check", input.Password, user.PasswordHash).Return(true)
	fixtures.tokenService.On("Issue", user).Return("signed.token", nil)
	fixtures.tokenService.On("TokenDuration").Return(time.Hour)

	output, err := fixtures.service.Login(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "signed.token", output.Token)
	assert.Equal(t, time.Hour, output.ExpiresIn)
	assert.Equal(t, user, output.User)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.LoginInput{Email: "nobody@example.com", Password: "whatever"}

	fixtures.userRepo.On("FindByEmail", ctx, input.Email).Return(nil, repository.ErrUserNotFound)

	output, err := fixtures.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	fixtures.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
	}
	input := &usecase.LoginInput{Email: user.Email, Password: "wrong"}

	fixtures.userRepo.On("FindByEmail", ctx, input.Email).Return(user, nil)
	fixtures.hasher.On("Check", input.Password, user.PasswordHash).Return(false)

	output, err := fixtures.service.Login(ctx, input)

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	fixtures.tokenService.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestAuthService_Login_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "known@example.com", PasswordHash: "hash"}

	fixtures.userRepo.On("FindByEmail", ctx, "unknown@example.com").Return(nil, repository.ErrUserNotFound)
	fixtures.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fixtures.hasher.On("Check", "wrong", user.PasswordHash).Return(false)

	_, unknownErr := fixtures.service.Login(ctx, &usecase.LoginInput{Email: "unknown@example.com", Password: "wrong"})
	_, wrongPassErr := fixtures.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "wrong"})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)

	// Both failure modes must surface the identical credential error so the
	// API response cannot be used to probe which emails are registered.
	var unknownApp, wrongApp domainerrors.AppError
	require.True(t, errors.As(unknownErr, &unknownApp))
	require.True(t, errors.As(wrongPassErr, &wrongApp))
	assert.Equal(t, unknownApp.ErrorCode(), wrongApp.ErrorCode())
	assert.Equal(t, unknownApp.Message(), wrongApp.Message())
}

func TestAuthService_Profile_Success(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "test@example.com", Name: "Test User"}

	fixtures.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	got, err := fixtures.service.Profile(ctx, user.ID)

	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestAuthService_Profile_NotFound(t *testing.T) {
	fixtures := createTestAuthService(t)

	ctx := context.Background()
	goneID := uuid.New()

	fixtures.userRepo.On("FindByID", ctx, goneID).Return(nil, repository.ErrUserNotFound)

	got, err := fixtures.service.Profile(ctx, goneID)

	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
