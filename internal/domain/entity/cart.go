package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is a copy of a Product taken when it was added to the cart.
// Later edits or deletion of the listing do not reach it.
type CartItem Product

// NewCartItem copies p into a cart entry.
func NewCartItem(p Product) CartItem {
	return CartItem(p)
}

// PurchaseRecord is a copy of a CartItem appended to the ledger at checkout.
type PurchaseRecord CartItem

// CartTotal sums the prices of items.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}

	return total
}

// CheckoutReceipt describes a completed checkout.
type CheckoutReceipt struct {
	Items       []PurchaseRecord `json:"items"`
	Total       decimal.Decimal  `json:"total"`
	PurchasedAt time.Time        `json:"purchased_at"`
}
