package service

import (
	"context"
	"time"
)

// CheckoutEvent is published once a checkout has been persisted
type CheckoutEvent struct {
	RequestID   string    `json:"request_id,omitempty"` // For distributed tracing
	CheckoutID  string    `json:"checkout_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	ProductIDs  []int64   `json:"product_ids"`
	ItemCount   int       `json:"item_count"`
	Total       string    `json:"total"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishCheckoutEvent announces a completed checkout
	PublishCheckoutEvent(ctx context.Context, event *CheckoutEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
