package repository

import (
	"context"

	"ecofinds/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrNoUser is returned when no user record is stored.
var ErrNoUser = errors.New("no user stored")

// SessionRepository persists the single current-user record.
type SessionRepository interface {
	// Find returns the stored user or ErrNoUser.
	Find(ctx context.Context) (*entity.User, error)

	// Save overwrites the stored user.
	Save(ctx context.Context, user *entity.User) error

	// Delete removes the stored user.
	Delete(ctx context.Context) error
}
