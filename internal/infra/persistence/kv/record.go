package kv

import (
	"context"
	"encoding/json"
	"log/slog"

	domainerrors "ecofinds/internal/domain/errors"
	"ecofinds/internal/domain/repository"

	"github.com/pkg/errors"
)

// loadRecord decodes the JSON document under key into a T.
// A missing key yields found=false. A document that does not decode is
// treated the same way and logged, so one corrupt record cannot wedge the app.
func loadRecord[T any](ctx context.Context, store repository.KeyValueStore, logger *slog.Logger, key string) (value T, found bool, err error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return value, false, nil
		}

		return value, false, domainerrors.NewStoreExecuteError(err, "failed to read "+key)
	}

	if raw == "" || raw == "null" {
		return value, false, nil
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		logger.WarnContext(ctx, "Discarding malformed record",
			slog.String("key", key),
			slog.Any("error", err),
		)

		var zero T

		return zero, false, nil
	}

	return value, true, nil
}

// saveRecord replaces the document under key with the JSON encoding of value.
func saveRecord[T any](ctx context.Context, store repository.KeyValueStore, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", key)
	}

	if err := store.Set(ctx, key, string(data)); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to write "+key)
	}

	return nil
}

// loadCollection is loadRecord for slices, never returning nil.
func loadCollection[T any](ctx context.Context, store repository.KeyValueStore, logger *slog.Logger, key string) ([]T, error) {
	items, _, err := loadRecord[[]T](ctx, store, logger, key)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

// saveCollection writes items, encoding nil as an empty array.
func saveCollection[T any](ctx context.Context, store repository.KeyValueStore, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	return saveRecord(ctx, store, key, items)
}
