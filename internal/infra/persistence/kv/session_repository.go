package kv

import (
	"context"
	"log/slog"

	"ecofinds/internal/domain/entity"
	domainerrors "ecofinds/internal/domain/errors"
	"ecofinds/internal/domain/repository"
)

// sessionRepository implements the repository.SessionRepository interface.
type sessionRepository struct {
	store  repository.KeyValueStore
	key    string
	logger *slog.Logger
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(store repository.KeyValueStore, keys Keys, logger *slog.Logger) repository.SessionRepository {
	return &sessionRepository{store: store, key: keys.User, logger: logger}
}

func (repo *sessionRepository) Find(ctx context.Context) (*entity.User, error) {
	user, found, err := loadRecord[entity.User](ctx, repo.store, repo.logger, repo.key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, repository.ErrNoUser
	}

	return &user, nil
}

func (repo *sessionRepository) Save(ctx context.Context, user *entity.User) error {
	return saveRecord(ctx, repo.store, repo.key, user)
}

func (repo *sessionRepository) Delete(ctx context.Context) error {
	if err := repo.store.Remove(ctx, repo.key); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to remove "+repo.key)
	}

	return nil
}
