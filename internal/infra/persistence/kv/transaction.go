package kv

import (
	"context"
	"log/slog"
	"sync"

	"ecofinds/config"
	domainerrors "ecofinds/internal/domain/errors"
	"ecofinds/internal/domain/repository"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// transactionManager implements repository.TransactionManager.
// One operation runs at a time, like UI events dispatched on a single thread.
type transactionManager struct {
	mu     sync.Mutex
	store  repository.KeyValueStore
	keys   Keys
	logger *slog.Logger
}

// TransactionParams holds dependencies for the transaction manager, injected by Fx
type TransactionParams struct {
	fx.In

	Store  repository.KeyValueStore
	Config *config.Config
	Logger *slog.Logger
}

// NewTransactionManager is the Fx constructor; keys follow store.namespace.
func NewTransactionManager(params TransactionParams) repository.TransactionManager {
	return NewTransactionManagerWithKeys(params.Store, NewKeys(params.Config.Store.Namespace), params.Logger)
}

// NewTransactionManagerWithKeys builds a manager over store using the given keys.
func NewTransactionManagerWithKeys(store repository.KeyValueStore, keys Keys, logger *slog.Logger) repository.TransactionManager {
	return &transactionManager{
		store:  store,
		keys:   keys,
		logger: logger,
	}
}

// Execute runs fn with repositories over a staging layer and flushes the staged
// writes only when fn succeeds.
func (tm *transactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	staged := newStagedStore(tm.store)
	factory := &repositoryFactory{store: staged, keys: tm.keys, logger: tm.logger}

	if err := fn(factory); err != nil {
		return err
	}

	if err := staged.flush(ctx); err != nil {
		return domainerrors.NewStoreExecuteError(err, "failed to persist changes")
	}

	return nil
}

// repositoryFactory implements repository.RepositoryFactory over one staged store.
type repositoryFactory struct {
	store  repository.KeyValueStore
	keys   Keys
	logger *slog.Logger
}

func (f *repositoryFactory) SessionRepo() repository.SessionRepository {
	return NewSessionRepository(f.store, f.keys, f.logger)
}

func (f *repositoryFactory) ProductRepo() repository.ProductRepository {
	return NewProductRepository(f.store, f.keys, f.logger)
}

func (f *repositoryFactory) CartRepo() repository.CartRepository {
	return NewCartRepository(f.store, f.keys, f.logger)
}

func (f *repositoryFactory) PurchaseRepo() repository.PurchaseRepository {
	return NewPurchaseRepository(f.store, f.keys, f.logger)
}

// stagedStore reads through to the backing store and buffers writes.
type stagedStore struct {
	backing repository.KeyValueStore
	writes  map[string]*string
	order   []string
}

func newStagedStore(backing repository.KeyValueStore) *stagedStore {
	return &stagedStore{
		backing: backing,
		writes:  make(map[string]*string),
	}
}

func (s *stagedStore) Get(ctx context.Context, key string) (string, error) {
	if v, ok := s.writes[key]; ok {
		if v == nil {
			return "", repository.ErrKeyNotFound
		}

		return *v, nil
	}

	return s.backing.Get(ctx, key)
}

func (s *stagedStore) Set(_ context.Context, key, value string) error {
	s.stage(key, &value)

	return nil
}

func (s *stagedStore) Remove(_ context.Context, key string) error {
	s.stage(key, nil)

	return nil
}

func (s *stagedStore) Close() error {
	return nil
}

func (s *stagedStore) stage(key string, value *string) {
	if _, ok := s.writes[key]; !ok {
		s.order = append(s.order, key)
	}
	s.writes[key] = value
}

func (s *stagedStore) mutations() []repository.Mutation {
	mutations := make([]repository.Mutation, 0, len(s.order))
	for _, key := range s.order {
		mutations = append(mutations, repository.Mutation{Key: key, Value: s.writes[key]})
	}

	return mutations
}

// flush hands the staged writes to the backing store, in one batch when it supports that.
func (s *stagedStore) flush(ctx context.Context) error {
	mutations := s.mutations()
	if len(mutations) == 0 {
		return nil
	}

	if batch, ok := s.backing.(repository.BatchStore); ok {
		return errors.WithStack(batch.Apply(ctx, mutations))
	}

	for _, m := range mutations {
		var err error
		if m.Value == nil {
			err = s.backing.Remove(ctx, m.Key)
		} else {
			err = s.backing.Set(ctx, m.Key, *m.Value)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to flush %s", m.Key)
		}
	}

	return nil
}
