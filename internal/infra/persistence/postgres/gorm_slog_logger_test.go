package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferedLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestGormSlogLogger_Trace(t *testing.T) {
	sqlFn := func() (string, int64) { return `SELECT entry FROM "kv_entries"`, 1 }

	tests := []struct {
		name     string
		debug    bool
		elapsed  time.Duration
		err      error
		contains string
	}{
		{name: "error is logged", err: assert.AnError, contains: "GORM query failed"},
		{name: "record not found is ignored", err: gorm.ErrRecordNotFound},
		{name: "slow query is logged", elapsed: time.Second, contains: "GORM slow query"},
		{name: "fast query is quiet outside debug"},
		{name: "fast query is logged in debug", debug: true, contains: "GORM query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newGormSlogLogger(newBufferedLogger(&buf), tt.debug)

			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), sqlFn, tt.err)

			if tt.contains == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}

func TestGormSlogLogger_LogModeSilences(t *testing.T) {
	var buf bytes.Buffer
	l := newGormSlogLogger(newBufferedLogger(&buf), true).LogMode(logger.Silent)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, assert.AnError)

	assert.Empty(t, buf.String())
}
