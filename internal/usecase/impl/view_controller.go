package impl

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	deliverycontext "ecofinds/internal/delivery/context"
	"ecofinds/internal/domain/entity"
	domainerrors "ecofinds/internal/domain/errors"
	"ecofinds/internal/domain/service"
	"ecofinds/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// viewController implements the ViewUsecase interface.
// Its state is process memory only and starts over at entry on restart.
type viewController struct {
	mu sync.Mutex

	view    entity.View
	editing *entity.EditState
	// stagedImage is an uploaded image not yet saved to any listing.
	stagedImage string

	session usecase.SessionUsecase
	catalog usecase.CatalogUsecase
	cart    usecase.CartUsecase
	images  service.ImageStorage
	logger  *slog.Logger
}

// ViewControllerParams holds dependencies for the view controller, injected by Fx.
type ViewControllerParams struct {
	fx.In

	Session usecase.SessionUsecase
	Catalog usecase.CatalogUsecase
	Cart    usecase.CartUsecase
	Images  service.ImageStorage
	Logger  *slog.Logger
}

// NewViewController is the constructor for viewController.
func NewViewController(params ViewControllerParams) usecase.ViewUsecase {
	return &viewController{
		view:    entity.ViewEntry,
		session: params.Session,
		catalog: params.Catalog,
		cart:    params.Cart,
		images:  params.Images,
		logger:  params.Logger,
	}
}

func (c *viewController) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, c.logger)
}

func (c *viewController) Restore(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.session.CurrentUser(ctx)
	if errors.Is(err, domainerrors.ErrNoSession) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to restore session")
	}
	if c.view == entity.ViewEntry {
		c.view = entity.ViewDashboard
	}

	return nil
}

func (c *viewController) Snapshot(ctx context.Context) (*entity.ViewSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot(ctx)
}

func (c *viewController) snapshot(ctx context.Context) (*entity.ViewSnapshot, error) {
	snap := &entity.ViewSnapshot{View: c.view}

	user, err := c.session.CurrentUser(ctx)
	switch {
	case err == nil:
		snap.User = user
	case !errors.Is(err, domainerrors.ErrNoSession):
		return nil, err
	}

	items, err := c.cart.Items(ctx)
	if err != nil {
		return nil, err
	}
	snap.CartCount = len(items)

	if c.editing != nil {
		editing := *c.editing
		snap.Editing = &editing
	}

	return snap, nil
}

func (c *viewController) Login(ctx context.Context, input *usecase.LoginInput) (*entity.ViewSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.session.Login(ctx, input); err != nil {
		return nil, err
	}
	c.view = entity.ViewDashboard

	return c.snapshot(ctx)
}

// Logout returns to entry and drops any form in progress.
func (c *viewController) Logout(ctx context.Context) (*entity.ViewSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.session.Logout(ctx); err != nil {
		return nil, err
	}
	c.view = entity.ViewEntry
	c.editing = nil
	c.releaseStagedImage(ctx)

	return c.snapshot(ctx)
}

func (c *viewController) Navigate(ctx context.Context, target entity.View) (*entity.ViewSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view == entity.ViewEntry || !target.IsNavigable() {
		return nil, domainerrors.ErrInvalidTransition.WithDetails(string(c.view) + " -> " + string(target))
	}
	c.view = target

	return c.snapshot(ctx)
}

func (c *viewController) BeginEdit(ctx context.Context, productID int64) (*entity.EditState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view == entity.ViewEntry {
		return nil, domainerrors.ErrInvalidTransition.WithDetails("log in before editing")
	}

	product, err := c.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	c.releaseStagedImage(ctx)
	c.editing = &entity.EditState{
		ProductID: product.ID,
		Draft:     entity.DraftFromProduct(*product),
	}
	c.view = entity.ViewDashboard

	editing := *c.editing

	return &editing, nil
}

// SubmitDraft saves the form. A rejected draft stays in the form so it can be corrected.
func (c *viewController) SubmitDraft(ctx context.Context, draft *entity.ProductDraft) (*entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view == entity.ViewEntry {
		return nil, domainerrors.ErrInvalidTransition.WithDetails("log in before listing products")
	}

	var (
		product *entity.Product
		err     error
	)
	if c.editing != nil {
		patch := entity.PatchFromDraft(*draft)
		product, err = c.catalog.Update(ctx, c.editing.ProductID, &patch)
	} else {
		product, err = c.catalog.Create(ctx, draft)
	}

	if err != nil {
		if c.editing != nil {
			if errors.Is(err, domainerrors.ErrProductNotFound) {
				c.editing = nil
			} else {
				c.editing.Draft = *draft
			}
		}

		return nil, err
	}

	if c.stagedImage == product.ImageKey {
		c.stagedImage = ""
	}
	c.releaseStagedImage(ctx)
	c.editing = nil

	return product, nil
}

func (c *viewController) UploadImage(ctx context.Context, r io.Reader, contentType string) (*service.StoredImage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view == entity.ViewEntry {
		return nil, domainerrors.ErrInvalidTransition.WithDetails("log in before uploading images")
	}

	stored, err := c.images.Save(ctx, r, contentType)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store image")
	}

	c.releaseStagedImage(ctx)
	c.stagedImage = stored.Key
	if c.editing != nil {
		c.editing.Draft.ImageKey = stored.Key
	}

	c.log(ctx).Debug("Image staged", slog.String("key", stored.Key), slog.Int64("size", stored.Size))

	return stored, nil
}

// CancelEdit clears the form. Calling it with nothing in progress is a no-op.
func (c *viewController) CancelEdit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.editing = nil
	c.releaseStagedImage(ctx)

	return nil
}

// releaseStagedImage deletes the uploaded image unless a listing was saved with it
// through the catalog routes. Failures are only logged.
func (c *viewController) releaseStagedImage(ctx context.Context) {
	if c.stagedImage == "" {
		return
	}
	key := c.stagedImage
	c.stagedImage = ""

	inUse, err := c.imageInUse(ctx, key)
	if err != nil {
		c.log(ctx).Warn("Failed to check staged image usage", slog.String("key", key), slog.Any("error", err))

		return
	}
	if inUse {
		return
	}

	if err := c.images.Delete(ctx, key); err != nil {
		c.log(ctx).Warn("Failed to release staged image", slog.String("key", key), slog.Any("error", err))

		return
	}

	c.log(ctx).Debug("Staged image released", slog.String("key", key))
}

func (c *viewController) imageInUse(ctx context.Context, key string) (bool, error) {
	products, err := c.catalog.List(ctx, "")
	if err != nil {
		return false, err
	}

	return slices.ContainsFunc(products, func(p entity.Product) bool {
		return p.ImageKey == key
	}), nil
}
