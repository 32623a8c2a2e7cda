package usecase

import (
	"context"
	"io"

	"ecofinds/internal/domain/entity"
	"ecofinds/internal/domain/service"
)

// ViewUsecase is the screen state machine of the marketplace.
//
// States are entry, dashboard, cart and purchases, starting at entry. Login
// moves to the dashboard and logout back to entry. The dashboard carries an
// optional edit sub-state holding the draft of the listing being edited.
type ViewUsecase interface {
	// Restore resumes at the dashboard when a user is already stored.
	Restore(ctx context.Context) error
	Snapshot(ctx context.Context) (*entity.ViewSnapshot, error)
	Login(ctx context.Context, input *LoginInput) (*entity.ViewSnapshot, error)
	Logout(ctx context.Context) (*entity.ViewSnapshot, error)
	// Navigate switches between dashboard, cart and purchases.
	Navigate(ctx context.Context, target entity.View) (*entity.ViewSnapshot, error)
	// BeginEdit loads a listing into the edit form.
	BeginEdit(ctx context.Context, productID int64) (*entity.EditState, error)
	// SubmitDraft updates the listing being edited, or creates a new one outside edit mode.
	SubmitDraft(ctx context.Context, draft *entity.ProductDraft) (*entity.Product, error)
	// UploadImage stores an image for the form being filled in and returns its key.
	// An earlier upload that was never saved to a listing is released.
	UploadImage(ctx context.Context, r io.Reader, contentType string) (*service.StoredImage, error)
	// CancelEdit leaves edit mode and releases any image uploaded for the draft.
	CancelEdit(ctx context.Context) error
}
