package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	deliverycontext "ecofinds/internal/delivery/context"
	"ecofinds/internal/domain/entity"
	domainerrors "ecofinds/internal/domain/errors"
	"ecofinds/internal/domain/repository"
	"ecofinds/internal/domain/service"
	"ecofinds/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// catalogManager implements the CatalogUsecase interface.
type catalogManager struct {
	txManager repository.TransactionManager
	images    service.ImageStorage
	logger    *slog.Logger
	now       func() time.Time
}

// CatalogManagerParams holds dependencies for the catalog manager, injected by Fx.
type CatalogManagerParams struct {
	fx.In

	TxManager repository.TransactionManager
	Images    service.ImageStorage
	Logger    *slog.Logger
}

// NewCatalogManager is the constructor for catalogManager.
func NewCatalogManager(params CatalogManagerParams) usecase.CatalogUsecase {
	return &catalogManager{
		txManager: params.TxManager,
		images:    params.Images,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *catalogManager) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *catalogManager) List(ctx context.Context, filter string) ([]entity.Product, error) {
	var products []entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		all, err := repoFactory.ProductRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		products = filterProducts(all, strings.TrimSpace(filter))

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func filterProducts(products []entity.Product, filter string) []entity.Product {
	matched := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.Matches(filter) {
			matched = append(matched, p)
		}
	}

	return matched
}

func (srv *catalogManager) Get(ctx context.Context, id int64) (*entity.Product, error) {
	var product *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		products, err := repoFactory.ProductRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		idx := indexOfProduct(products, id)
		if idx < 0 {
			return domainerrors.ErrProductNotFound
		}
		product = &products[idx]

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get product %d", id)
	}

	return product, nil
}

// Create validates the draft and appends a new listing to the catalog.
func (srv *catalogManager) Create(ctx context.Context, draft *entity.ProductDraft) (*entity.Product, error) {
	fields, err := parseProductFields(draft.Title, draft.Price, draft.Category)
	if err != nil {
		return nil, err
	}

	product := entity.Product{
		Title:    fields.title,
		Price:    fields.price,
		Category: fields.category,
		Img:      entity.PlaceholderImage,
	}
	if key := strings.TrimSpace(draft.ImageKey); key != "" {
		if err := srv.attachImage(ctx, &product, key); err != nil {
			return nil, err
		}
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.ProductRepo()
		products, err := repo.FindAll(ctx)
		if err != nil {
			return err
		}
		product.ID = nextProductID(products, srv.now())

		return repo.SaveAll(ctx, append(products, product))
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create product", slog.String("title", product.Title), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Int64("productID", product.ID))

	return &product, nil
}

// Update changes the listed fields of an existing product. Missing ids are reported, not ignored.
func (srv *catalogManager) Update(ctx context.Context, id int64, patch *entity.ProductPatch) (*entity.Product, error) {
	var updated entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.ProductRepo()
		products, err := repo.FindAll(ctx)
		if err != nil {
			return err
		}
		idx := indexOfProduct(products, id)
		if idx < 0 {
			return domainerrors.ErrProductNotFound
		}

		product := products[idx]
		if err := srv.applyPatch(ctx, &product, patch); err != nil {
			return err
		}
		products[idx] = product
		updated = product

		return repo.SaveAll(ctx, products)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update product %d", id)
	}

	srv.log(ctx).Info("Product updated", slog.Int64("productID", id))

	return &updated, nil
}

func (srv *catalogManager) applyPatch(ctx context.Context, product *entity.Product, patch *entity.ProductPatch) error {
	title, price, category := product.Title, product.Price.String(), string(product.Category)
	if patch.Title != nil {
		title = *patch.Title
	}
	if patch.Price != nil {
		price = *patch.Price
	}
	if patch.Category != nil {
		category = *patch.Category
	}

	fields, err := parseProductFields(title, price, category)
	if err != nil {
		return err
	}
	product.Title = fields.title
	product.Price = fields.price
	product.Category = fields.category

	if patch.ImageKey == nil {
		return nil
	}
	if key := strings.TrimSpace(*patch.ImageKey); key != "" {
		return srv.attachImage(ctx, product, key)
	}
	product.Img = entity.PlaceholderImage
	product.ImageKey = ""

	return nil
}

// attachImage points the product at an uploaded image after checking the upload exists.
func (srv *catalogManager) attachImage(ctx context.Context, product *entity.Product, key string) error {
	ok, err := srv.images.Exists(ctx, key)
	if err != nil {
		return errors.Wrapf(err, "failed to look up image %s", key)
	}
	if !ok {
		return domainerrors.ErrImageNotFound.WithDetails(key)
	}
	product.ImageKey = key
	product.Img = srv.images.URL(key)

	return nil
}

// Delete drops the product from the catalog. Cart and purchase copies are left alone.
func (srv *catalogManager) Delete(ctx context.Context, id int64) error {
	removed := false
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.ProductRepo()
		products, err := repo.FindAll(ctx)
		if err != nil {
			return err
		}
		kept := slices.DeleteFunc(products, func(p entity.Product) bool { return p.ID == id })
		removed = len(kept) != len(products)

		return repo.SaveAll(ctx, kept)
	})
	if err != nil {
		return errors.Wrapf(err, "failed to delete product %d", id)
	}

	srv.log(ctx).Info("Product deleted", slog.Int64("productID", id), slog.Bool("removed", removed))

	return nil
}

type productFields struct {
	title    string
	price    decimal.Decimal
	category entity.Category
}

// parseProductFields enforces the form rules shared by create and edit.
func parseProductFields(title, price, category string) (*productFields, error) {
	title = strings.TrimSpace(title)
	price = strings.TrimSpace(price)
	category = strings.TrimSpace(category)
	if title == "" || price == "" || category == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("title, price and category are required")
	}

	amount, err := decimal.NewFromString(price)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price must be a number")
	}
	if amount.IsNegative() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price must not be negative")
	}

	cat := entity.Category(category)
	if !cat.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown category " + category)
	}

	return &productFields{title: title, price: amount, category: cat}, nil
}

// nextProductID uses the clock in milliseconds, moving past the largest id when that value is taken.
func nextProductID(products []entity.Product, now time.Time) int64 {
	id := now.UnixMilli()
	if indexOfProduct(products, id) < 0 {
		return id
	}

	maxID := id
	for _, p := range products {
		maxID = max(maxID, p.ID)
	}

	return maxID + 1
}

func indexOfProduct(products []entity.Product, id int64) int {
	return slices.IndexFunc(products, func(p entity.Product) bool { return p.ID == id })
}
