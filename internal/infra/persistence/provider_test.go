package persistence

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"ecofinds/config"
	"ecofinds/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenStore_Memory(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = config.StoreDriverMemory

	store, err := openStore(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)
}

func TestOpenStore_SQLite(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = config.StoreDriverSQLite
	cfg.Store.SQLite = &config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "kv.db")}

	store, err := openStore(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Set(context.Background(), "user", "{}"))
}

func TestOpenStore_Misconfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StoreConfig
	}{
		{name: "unknown driver", cfg: config.StoreConfig{Driver: "etcd"}},
		{name: "sqlite without path", cfg: config.StoreConfig{Driver: config.StoreDriverSQLite}},
		{name: "redis without addr", cfg: config.StoreConfig{Driver: config.StoreDriverRedis}},
		{name: "postgres without connection", cfg: config.StoreConfig{Driver: config.StoreDriverPostgres}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Store: tt.cfg}
			_, err := openStore(context.Background(), cfg, discardLogger())
			assert.Error(t, err)
		})
	}
}
