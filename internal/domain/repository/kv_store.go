// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"github.com/pkg/errors"
)

// ErrKeyNotFound is returned by KeyValueStore.Get when the key holds no value.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is a persistent, string-keyed storage area, the server-side
// counterpart of a browser origin's local storage.
type KeyValueStore interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the underlying connection or file handle.
	Close() error
}

// Mutation is a single staged write. A nil Value removes the key.
type Mutation struct {
	Key   string
	Value *string
}

// BatchStore is implemented by backends able to apply several writes together.
type BatchStore interface {
	KeyValueStore

	// Apply writes every mutation in order, all or nothing where the backend allows it.
	Apply(ctx context.Context, mutations []Mutation) error
}
