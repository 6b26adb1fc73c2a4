// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"rutero/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new account.
type RegisterUserInput struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	DisplayName string   `json:"display_name" validate:"required"`
	Roles       []string `json:"roles" validate:"required,min=1"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// LoginOutput returns the generated tokens after a successful login or refresh.
type LoginOutput struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *entity.User `json:"user"`
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// RegisterUser creates a new account with the given roles
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*entity.User, error)

	// Login verifies credentials and issues an access/refresh token pair
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Refresh exchanges a valid refresh token for a fresh token pair
	Refresh(ctx context.Context, refreshToken string) (*LoginOutput, error)

	// GetProfile retrieves the account behind an authenticated request
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
