// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"ecofinds/internal/domain/entity"
)

// LoginInput is the login form.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// SessionUsecase manages the single locally identified user.
type SessionUsecase interface {
	// Login stores the user, replacing any previous one.
	Login(ctx context.Context, input *LoginInput) (*entity.User, error)

	// Logout removes the user record. Catalog, cart and purchases are kept.
	Logout(ctx context.Context) error

	// CurrentUser returns the stored user or ErrNoSession.
	CurrentUser(ctx context.Context) (*entity.User, error)
}
