// Package handler contains the Pub/Sub push handlers of the checkout worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"ecofinds/config"
	deliverycontext "ecofinds/internal/delivery/context"
	"ecofinds/internal/domain/constants"
	"ecofinds/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// CheckoutPushHandler consumes checkout events pushed by Pub/Sub
type CheckoutPushHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
}

// CheckoutPushHandlerParams holds dependencies for the CheckoutPushHandler
type CheckoutPushHandlerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewCheckoutPushHandler creates a new checkout push handler
func NewCheckoutPushHandler(params CheckoutPushHandlerParams) *CheckoutPushHandler {
	// Google signs push requests; the local publisher does not
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvLocal

	return &CheckoutPushHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
	}
}

// HandlePush handles incoming Pub/Sub push messages.
// Malformed messages are acknowledged so Pub/Sub does not redeliver them forever.
func (h *CheckoutPushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.CheckoutEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse checkout event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	total, err := validateCheckoutEvent(&event)
	if err != nil {
		reqLogger.Warn("[Worker] Dropping invalid checkout event",
			slog.String("checkout_id", event.CheckoutID),
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Checkout recorded",
		slog.String("checkout_id", event.CheckoutID),
		slog.String("username", event.Username),
		slog.String("email", event.Email),
		slog.Int("item_count", event.ItemCount),
		slog.String("total", total.StringFixed(2)),
		slog.Time("purchased_at", event.PurchasedAt),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *CheckoutPushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.CheckoutEvent) string {
	// 1. Try message attributes (from Pub/Sub)
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	// 2. Try event field (from JSON payload)
	if event.RequestID != "" {
		return event.RequestID
	}

	// 3. Try existing context (from RequestIDMiddleware via X-Request-Id header)
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// validateCheckoutEvent checks the event is internally consistent and returns its total
func validateCheckoutEvent(event *service.CheckoutEvent) (decimal.Decimal, error) {
	if _, err := uuid.Parse(event.CheckoutID); err != nil {
		return decimal.Zero, errors.Wrap(err, "invalid checkout_id")
	}
	if event.ItemCount <= 0 || event.ItemCount != len(event.ProductIDs) {
		return decimal.Zero, errors.Errorf("item_count %d does not match %d product ids", event.ItemCount, len(event.ProductIDs))
	}
	total, err := decimal.NewFromString(event.Total)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "invalid total")
	}
	if total.IsNegative() {
		return decimal.Zero, errors.Errorf("negative total %s", event.Total)
	}

	return total, nil
}

// verifyPubSubToken validates the OIDC token Google attaches to push requests
func verifyPubSubToken(r *http.Request) error {
	authHeader := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return errors.New("missing bearer token")
	}

	// The audience is the URL of this endpoint
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	audience := scheme + "://" + r.Host + r.URL.Path

	payload, err := idtoken.Validate(r.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if !slices.Contains([]string{"accounts.google.com", "https://accounts.google.com"}, payload.Issuer) {
		return errors.Errorf("unexpected token issuer: %s", payload.Issuer)
	}

	return nil
}
