package usecase

import (
	"context"

	"ecofinds/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CartUsecase defines the cart and checkout use cases
type CartUsecase interface {
	// Add copies the current value of a catalog product into the cart
	Add(ctx context.Context, productID int64) (*entity.CartItem, error)
	Items(ctx context.Context) ([]entity.CartItem, error)
	Total(ctx context.Context) (decimal.Decimal, error)
	// Checkout moves every cart item to the purchase ledger
	Checkout(ctx context.Context) (*entity.CheckoutReceipt, error)
	Purchases(ctx context.Context) ([]entity.PurchaseRecord, error)
}
