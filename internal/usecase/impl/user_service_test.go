package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"rutero/config"
	"rutero/internal/domain/entity"
	domainerrors "rutero/internal/domain/errors"
	"rutero/internal/domain/repository"
	"rutero/internal/domain/service"
	mockRepo "rutero/internal/mocks/repository"
	mockSvc "rutero/internal/mocks/service"
	"rutero/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"

	service := NewUserService(UserServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Config:       cfg,
		Logger:       logger,
	})

	return userServiceFixtures{
		service:      service,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func TestUserService_RegisterUser_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterUserInput{
		Email:       "chofer@example.com",
		Password:    "Password123!",
		DisplayName: "Carlos",
		Roles:       []string{"driver", "chef"},
	}

	fx.userRepo.On("FindByEmail", ctx, input.Email).Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", input.Password).Return("hashed_password", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := fx.service.RegisterUser(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, input.Email, user.Email)
	assert.Equal(t, "hashed_password", user.PasswordHash)
	assert.Equal(t, entity.Roles{entity.RoleDriver}, user.Roles, "unknown role strings are filtered out")
}

func TestUserService_RegisterUser_NoValidRoles(t *testing.T) {
	fx := createTestUserService(t)

	input := &usecase.RegisterUserInput{
		Email:       "chofer@example.com",
		Password:    "Password123!",
		DisplayName: "Carlos",
		Roles:       []string{"chef"},
	}

	user, err := fx.service.RegisterUser(context.Background(), input)

	assert.Nil(t, user)
	assertAppErrorCode(t, err, "VALIDATION_FAILED")
}

func TestUserService_RegisterUser_EmailAlreadyRegistered(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterUserInput{
		Email:       "chofer@example.com",
		Password:    "Password123!",
		DisplayName: "Carlos",
		Roles:       []string{"driver"},
	}

	fx.userRepo.On("FindByEmail", ctx, input.Email).Return(&entity.User{ID: uuid.New(), Email: input.Email}, nil)

	user, err := fx.service.RegisterUser(ctx, input)

	assert.Nil(t, user)
	require.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "chofer@example.com",
		PasswordHash: "hashed_password",
		Roles:        entity.Roles{entity.RoleDriver},
	}

	fx.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fx.hasher.On("Check", "Password123!", user.PasswordHash).Return(true)
	fx.tokenService.On("GenerateTokens", user.ID, []string{"driver"}).Return("access", "refresh", nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "Password123!"})

	require.NoError(t, err)
	assert.Equal(t, "access", output.AccessToken)
	assert.Equal(t, "refresh", output.RefreshToken)
	assert.Equal(t, user, output.User)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "chofer@example.com", PasswordHash: "hashed_password"}

	fx.userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)
	fx.hasher.On("Check", "wrong", user.PasswordHash).Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: user.Email, Password: "wrong"})

	assert.Nil(t, output)
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()

	fx.userRepo.On("FindByEmail", ctx, "nadie@example.com").Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "nadie@example.com", Password: "whatever"})

	assert.Nil(t, output)
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Refresh_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "chofer@example.com", Roles: entity.Roles{entity.RoleDriver}}
	token := &jwt.Token{
		Claims: &service.Claims{UserID: user.ID},
		Valid:  true,
	}

	fx.tokenService.On("ValidateToken", "old-refresh", "refresh-secret").Return(token, nil)
	fx.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	fx.tokenService.On("GenerateTokens", user.ID, []string{"driver"}).Return("new-access", "new-refresh", nil)

	output, err := fx.service.Refresh(ctx, "old-refresh")

	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
	assert.Equal(t, "new-refresh", output.RefreshToken)
}

func TestUserService_Refresh_InvalidToken(t *testing.T) {
	fx := createTestUserService(t)

	fx.tokenService.On("ValidateToken", "garbage", "refresh-secret").Return(nil, errors.New("token is malformed"))

	output, err := fx.service.Refresh(context.Background(), "garbage")

	assert.Nil(t, output)
	require.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Refresh_UserGone(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	token := &jwt.Token{
		Claims: &service.Claims{UserID: userID},
		Valid:  true,
	}

	fx.tokenService.On("ValidateToken", "old-refresh", "refresh-secret").Return(token, nil)
	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Refresh(ctx, "old-refresh")

	assert.Nil(t, output)
	require.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	user, err := fx.service.GetProfile(ctx, userID)

	assert.Nil(t, user)
	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
