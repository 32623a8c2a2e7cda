package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "ecofinds/internal/delivery/context"
	"ecofinds/internal/domain/entity"
	domainerrors "ecofinds/internal/domain/errors"
	"ecofinds/internal/domain/repository"
	"ecofinds/internal/domain/service"
	"ecofinds/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// cartManager implements the CartUsecase interface.
type cartManager struct {
	txManager repository.TransactionManager
	publisher service.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// CartManagerParams holds dependencies for the cart manager, injected by Fx.
type CartManagerParams struct {
	fx.In

	TxManager repository.TransactionManager
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewCartManager is the constructor for cartManager.
func NewCartManager(params CartManagerParams) usecase.CartUsecase {
	return &cartManager{
		txManager: params.TxManager,
		publisher: params.Publisher,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *cartManager) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Add appends a copy of the product. Adding the same product twice gives two entries.
func (srv *cartManager) Add(ctx context.Context, productID int64) (*entity.CartItem, error) {
	var item entity.CartItem
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		products, err := repoFactory.ProductRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		idx := indexOfProduct(products, productID)
		if idx < 0 {
			return domainerrors.ErrProductNotFound
		}
		item = entity.NewCartItem(products[idx])

		cartRepo := repoFactory.CartRepo()
		items, err := cartRepo.FindAll(ctx)
		if err != nil {
			return err
		}

		return cartRepo.SaveAll(ctx, append(items, item))
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to add product %d to cart", productID)
	}

	srv.log(ctx).Debug("Product added to cart", slog.Int64("productID", productID))

	return &item, nil
}

func (srv *cartManager) Items(ctx context.Context) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		items, err = repoFactory.CartRepo().FindAll(ctx)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	return items, nil
}

func (srv *cartManager) Total(ctx context.Context) (decimal.Decimal, error) {
	items, err := srv.Items(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return entity.CartTotal(items), nil
}

// Checkout appends the cart to the purchase ledger and empties it, then announces the checkout.
func (srv *cartManager) Checkout(ctx context.Context) (*entity.CheckoutReceipt, error) {
	var (
		user    *entity.User
		receipt *entity.CheckoutReceipt
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()
		items, err := cartRepo.FindAll(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domainerrors.ErrEmptyCart
		}

		purchaseRepo := repoFactory.PurchaseRepo()
		ledger, err := purchaseRepo.FindAll(ctx)
		if err != nil {
			return err
		}

		records := make([]entity.PurchaseRecord, 0, len(items))
		for _, item := range items {
			records = append(records, entity.PurchaseRecord(item))
		}
		if err := purchaseRepo.SaveAll(ctx, append(ledger, records...)); err != nil {
			return err
		}
		if err := cartRepo.SaveAll(ctx, []entity.CartItem{}); err != nil {
			return err
		}

		receipt = &entity.CheckoutReceipt{
			Items:       records,
			Total:       entity.CartTotal(items),
			PurchasedAt: srv.now().UTC(),
		}

		// The event names the buyer when one is logged in.
		user, err = repoFactory.SessionRepo().Find(ctx)
		if errors.Is(err, repository.ErrNoUser) {
			return nil
		}

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to check out")
	}

	srv.log(ctx).Info("Checkout completed",
		slog.Int("itemCount", len(receipt.Items)),
		slog.String("total", receipt.Total.String()),
	)

	srv.publishCheckout(ctx, user, receipt)

	return receipt, nil
}

// publishCheckout announces the checkout. A publish failure does not undo the purchase.
func (srv *cartManager) publishCheckout(ctx context.Context, user *entity.User, receipt *entity.CheckoutReceipt) {
	if srv.publisher == nil {
		return
	}

	event := &service.CheckoutEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		CheckoutID:  uuid.New().String(),
		ProductIDs:  make([]int64, 0, len(receipt.Items)),
		ItemCount:   len(receipt.Items),
		Total:       receipt.Total.String(),
		PurchasedAt: receipt.PurchasedAt,
	}
	if user != nil {
		event.Username = user.Username
		event.Email = user.Email
	}
	for _, record := range receipt.Items {
		event.ProductIDs = append(event.ProductIDs, record.ID)
	}

	if err := srv.publisher.PublishCheckoutEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish checkout event",
			slog.String("checkoutID", event.CheckoutID),
			slog.Any("error", err),
		)
	}
}

func (srv *cartManager) Purchases(ctx context.Context) ([]entity.PurchaseRecord, error) {
	var records []entity.PurchaseRecord
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		records, err = repoFactory.PurchaseRepo().FindAll(ctx)

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load purchases")
	}

	return records, nil
}
