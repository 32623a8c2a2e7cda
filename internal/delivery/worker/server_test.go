package worker

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ecofinds/config"
	"ecofinds/internal/delivery/worker/handler"
	"ecofinds/internal/domain/constants"
	"ecofinds/internal/domain/service"
	"ecofinds/internal/infra/pubsub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is written by the server goroutine and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func newTestWorker(t *testing.T, cfg *config.Config) (*httptest.Server, *syncBuffer) {
	t.Helper()

	logs := &syncBuffer{}
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	pushHandler := handler.NewCheckoutPushHandler(handler.CheckoutPushHandlerParams{Config: cfg, Logger: logger})

	srv := httptest.NewServer(NewEcho(cfg, logger, pushHandler))
	t.Cleanup(srv.Close)

	return srv, logs
}

func validEvent() *service.CheckoutEvent {
	return &service.CheckoutEvent{
		RequestID:   "req-1",
		CheckoutID:  "8f14e45f-ceea-467f-a0e6-1b6a3c9e1a11",
		Username:    "ann",
		Email:       "ann@example.com",
		ProductIDs:  []int64{1_700_000_000_000, 1_700_000_000_001},
		ItemCount:   2,
		Total:       "15.5",
		PurchasedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestWorker_ReceivesLocalPublisherEvents(t *testing.T) {
	srv, logs := newTestWorker(t, &config.Config{})

	publisher := pubsub.NewLocalHTTPPublisher(srv.URL+"/push", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, publisher.PublishCheckoutEvent(context.Background(), validEvent()))

	assert.Contains(t, logs.String(), "Checkout recorded")
	assert.Contains(t, logs.String(), `"total":"15.50"`)
	assert.Contains(t, logs.String(), `"request_id":"req-1"`)
}

func TestWorker_PushResponses(t *testing.T) {
	srv, _ := newTestWorker(t, &config.Config{})

	encode := func(v any) string {
		data, err := json.Marshal(v)
		require.NoError(t, err)

		return base64.StdEncoding.EncodeToString(data)
	}

	badCount := validEvent()
	badCount.ItemCount = 5

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "valid event", body: `{"message":{"data":"` + encode(validEvent()) + `"}}`, status: http.StatusOK},
		{name: "not json", body: `{`, status: http.StatusBadRequest},
		{name: "bad base64", body: `{"message":{"data":"%%%"}}`, status: http.StatusBadRequest},
		{name: "data not an event", body: `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("[]")) + `"}}`, status: http.StatusBadRequest},
		{name: "inconsistent event acknowledged", body: `{"message":{"data":"` + encode(badCount) + `"}}`, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/push", "application/json", bytes.NewBufferString(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestWorker_GoogleProviderRequiresToken(t *testing.T) {
	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderGoogle}}
	cfg.Env.Env = "production"
	srv, _ := newTestWorker(t, cfg)

	resp, err := http.Post(srv.URL+"/push", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWorker_Health(t *testing.T) {
	srv, _ := newTestWorker(t, &config.Config{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
