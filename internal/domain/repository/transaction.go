package repository

import "context"

// TransactionManager runs use-case operations one at a time.
// Writes made through the factory's repositories are staged and only reach the
// store when fn returns nil; an error discards them.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repositories bound to the running operation.
type RepositoryFactory interface {
	SessionRepo() SessionRepository
	ProductRepo() ProductRepository
	CartRepo() CartRepository
	PurchaseRepo() PurchaseRepository
}
