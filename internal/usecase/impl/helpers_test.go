package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"ecofinds/internal/domain/repository"
	"ecofinds/internal/infra/persistence/kv"
	"ecofinds/internal/infra/persistence/memory"
	mockSvc "ecofinds/internal/mocks/service"
	"ecofinds/internal/usecase"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedClock returns a clock frozen at the given Unix millisecond.
func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

// managerFixtures wires every use case over one in-memory store.
type managerFixtures struct {
	store     *memory.Store
	txManager repository.TransactionManager
	images    *mockSvc.MockImageStorage
	publisher *mockSvc.MockEventPublisher
	session   usecase.SessionUsecase
	catalog   *catalogManager
	cart      *cartManager
	view      *viewController
}

func createTestManagers(t *testing.T) managerFixtures {
	store := memory.New()
	logger := newDiscardLogger()
	txManager := kv.NewTransactionManagerWithKeys(store, kv.NewKeys(""), logger)
	images := mockSvc.NewMockImageStorage(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	session := NewSessionManager(SessionManagerParams{TxManager: txManager, Logger: logger})
	catalog := NewCatalogManager(CatalogManagerParams{TxManager: txManager, Images: images, Logger: logger}).(*catalogManager)
	catalog.now = fixedClock(1_700_000_000_000)
	cart := NewCartManager(CartManagerParams{TxManager: txManager, Publisher: publisher, Logger: logger}).(*cartManager)
	cart.now = fixedClock(1_700_000_500_000)
	view := NewViewController(ViewControllerParams{
		Session: session,
		Catalog: catalog,
		Cart:    cart,
		Images:  images,
		Logger:  logger,
	}).(*viewController)

	return managerFixtures{
		store:     store,
		txManager: txManager,
		images:    images,
		publisher: publisher,
		session:   session,
		catalog:   catalog,
		cart:      cart,
		view:      view,
	}
}
