package repository

import (
	"context"

	"ecofinds/internal/domain/entity"
)

// CartRepository persists the items pending checkout.
type CartRepository interface {
	FindAll(ctx context.Context) ([]entity.CartItem, error)
	SaveAll(ctx context.Context, items []entity.CartItem) error
}

// PurchaseRepository persists the append-only purchase ledger.
type PurchaseRepository interface {
	FindAll(ctx context.Context) ([]entity.PurchaseRecord, error)
	SaveAll(ctx context.Context, records []entity.PurchaseRecord) error
}
