package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PlaceholderImage is used for listings saved without an image.
const PlaceholderImage = "https://via.placeholder.com/100"

// Product is a single listing in the catalog.
type Product struct {
	ID       int64           `json:"id"`                  // Creation time in Unix milliseconds; unique within the catalog.
	Title    string          `json:"title"`               // Listing title.
	Price    decimal.Decimal `json:"price"`               // Non-negative asking price, serialized as a string.
	Category Category        `json:"category"`            // One of Categories().
	Img      string          `json:"img"`                 // Image URL or PlaceholderImage.
	ImageKey string          `json:"image_key,omitempty"` // Storage key of an uploaded image, empty for the placeholder.
}

// Matches reports whether the title or category contains filter, ignoring case.
// An empty filter matches everything.
func (p Product) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	needle := strings.ToLower(filter)

	return strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(string(p.Category)), needle)
}

// ProductDraft is the unsaved form input for a new listing.
type ProductDraft struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Category string `json:"category"`
	ImageKey string `json:"image_key,omitempty"` // Key returned by an image upload, optional.
}

// ProductPatch carries the fields of an edit. Nil fields keep their current value.
type ProductPatch struct {
	Title    *string `json:"title,omitempty"`
	Price    *string `json:"price,omitempty"`
	Category *string `json:"category,omitempty"`
	ImageKey *string `json:"image_key,omitempty"`
}

// PatchFromDraft turns a full form submission into a patch that sets every field.
// An empty image key leaves the current image in place.
func PatchFromDraft(d ProductDraft) ProductPatch {
	patch := ProductPatch{
		Title:    &d.Title,
		Price:    &d.Price,
		Category: &d.Category,
	}
	if d.ImageKey != "" {
		patch.ImageKey = &d.ImageKey
	}

	return patch
}

// DraftFromProduct pre-fills the edit form with a listing's current values.
func DraftFromProduct(p Product) ProductDraft {
	return ProductDraft{
		Title:    p.Title,
		Price:    p.Price.String(),
		Category: string(p.Category),
	}
}
