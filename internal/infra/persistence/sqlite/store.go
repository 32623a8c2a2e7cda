// Package sqlite stores the key-value records in a single-file sqlite database,
// the durable local analogue of a browser's origin storage.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"ecofinds/internal/domain/repository"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // sqlite driver
)

const schema = `CREATE TABLE IF NOT EXISTS kv_entries (
	entry_key   TEXT PRIMARY KEY,
	entry_value TEXT NOT NULL,
	updated_at  TIMESTAMP NOT NULL
)`

const upsertQuery = `INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = excluded.updated_at`

type store struct {
	db *sql.DB
}

// New opens (creating if needed) the database file at path.
func New(ctx context.Context, path string) (repository.BatchStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	// A single connection keeps writes serialized and the pragmas in effect.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()

		return nil, errors.Wrap(err, "failed to set busy timeout")
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()

		return nil, errors.Wrap(err, "failed to create kv_entries table")
	}

	return &store{db: db}, nil
}

func (s *store) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT entry_value FROM kv_entries WHERE entry_key = ?`

	var value string
	if err := s.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrKeyNotFound
		}

		return "", errors.Wrapf(err, "failed to read key %s", key)
	}

	return value, nil
}

func (s *store) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, upsertQuery, key, value, time.Now().UTC()); err != nil {
		return errors.Wrapf(err, "failed to write key %s", key)
	}

	return nil
}

func (s *store) Remove(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_entries WHERE entry_key = ?`

	if _, err := s.db.ExecContext(ctx, q, key); err != nil {
		return errors.Wrapf(err, "failed to remove key %s", key)
	}

	return nil
}

// Apply writes all mutations in one sqlite transaction.
func (s *store) Apply(ctx context.Context, mutations []repository.Mutation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := time.Now().UTC()
	for _, m := range mutations {
		if m.Value == nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv_entries WHERE entry_key = ?`, m.Key); err != nil {
				return errors.Wrapf(err, "failed to remove key %s", m.Key)
			}

			continue
		}
		if _, err := tx.ExecContext(ctx, upsertQuery, m.Key, *m.Value, now); err != nil {
			return errors.Wrapf(err, "failed to write key %s", m.Key)
		}
	}

	return errors.Wrap(tx.Commit(), "failed to commit transaction")
}

func (s *store) Close() error {
	return errors.WithStack(s.db.Close())
}
