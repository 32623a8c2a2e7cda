package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"ecofinds/internal/domain/repository"
	"ecofinds/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type store struct {
	db            *gorm.DB
	sqlDB         *sql.DB
	cancelMonitor context.CancelFunc
}

// NewStore wraps an opened database as a key-value store and starts the pool monitor.
func NewStore(db *gorm.DB, logger *slog.Logger) (repository.BatchStore, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitorCtx, cancel := context.WithCancel(context.Background())
	go monitorDBPool(monitorCtx, logger, sqlDB, dbPoolMonitorInterval)

	return &store{db: db, sqlDB: sqlDB, cancelMonitor: cancel}, nil
}

func (s *store) Get(ctx context.Context, key string) (string, error) {
	var entry model.KVEntryModel
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrKeyNotFound
		}

		return "", errors.Wrapf(err, "failed to read key %s", key)
	}

	return entry.Value, nil
}

func (s *store) Set(ctx context.Context, key, value string) error {
	return upsert(s.db.WithContext(ctx), key, value)
}

func (s *store) Remove(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&model.KVEntryModel{}).Error; err != nil {
		return errors.Wrapf(err, "failed to remove key %s", key)
	}

	return nil
}

// Apply writes all mutations in one database transaction.
func (s *store) Apply(ctx context.Context, mutations []repository.Mutation) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range mutations {
			if m.Value == nil {
				if err := tx.Where("key = ?", m.Key).Delete(&model.KVEntryModel{}).Error; err != nil {
					return errors.Wrapf(err, "failed to remove key %s", m.Key)
				}

				continue
			}
			if err := upsert(tx, m.Key, *m.Value); err != nil {
				return err
			}
		}

		return nil
	})

	return errors.Wrap(err, "failed to apply mutations")
}

func (s *store) Close() error {
	s.cancelMonitor()

	return errors.WithStack(s.sqlDB.Close())
}

func upsert(db *gorm.DB, key, value string) error {
	entry := &model.KVEntryModel{Key: key, Value: value}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(entry).Error

	return errors.Wrapf(err, "failed to write key %s", key)
}
