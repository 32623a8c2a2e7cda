// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "ecofinds/internal/delivery/context"
	"ecofinds/internal/domain/entity"
	domainerrors "ecofinds/internal/domain/errors"
	"ecofinds/internal/domain/repository"
	"ecofinds/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionManager implements the SessionUsecase interface.
type sessionManager struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// SessionManagerParams holds dependencies for the session manager, injected by Fx.
type SessionManagerParams struct {
	fx.In

	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewSessionManager is the constructor for sessionManager.
func NewSessionManager(params SessionManagerParams) usecase.SessionUsecase {
	return &sessionManager{
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

func (srv *sessionManager) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login persists the user after checking that both fields are filled in.
func (srv *sessionManager) Login(ctx context.Context, input *usecase.LoginInput) (*entity.User, error) {
	user := &entity.User{
		Email:    strings.TrimSpace(input.Email),
		Username: strings.TrimSpace(input.Username),
	}
	if user.Email == "" || user.Username == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("email and username are required")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.SessionRepo().Save(ctx, user)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to save user", slog.String("username", user.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to log in")
	}

	srv.log(ctx).Info("User logged in", slog.String("username", user.Username))

	return user, nil
}

func (srv *sessionManager) Logout(ctx context.Context) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.SessionRepo().Delete(ctx)
	})
	if err != nil {
		return errors.Wrap(err, "failed to log out")
	}

	srv.log(ctx).Info("User logged out")

	return nil
}

func (srv *sessionManager) CurrentUser(ctx context.Context) (*entity.User, error) {
	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.SessionRepo().Find(ctx)
		if err != nil {
			return err
		}
		user = found

		return nil
	})
	if errors.Is(err, repository.ErrNoUser) {
		return nil, domainerrors.ErrNoSession
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load current user")
	}

	return user, nil
}
