// Package redis keeps the key-value records as plain redis strings, letting
// several processes share one store (last writer wins).
package redis

import (
	"context"

	"ecofinds/internal/domain/repository"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

type store struct {
	client goredis.UniversalClient
}

// Options configure the redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// New connects to redis and verifies the connection.
func New(ctx context.Context, opts Options) (repository.BatchStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()

		return nil, errors.Wrap(err, "failed to connect to redis")
	}

	return NewWithClient(client), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client goredis.UniversalClient) repository.BatchStore {
	return &store{client: client}
}

func (s *store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", repository.ErrKeyNotFound
		}

		return "", errors.Wrapf(err, "failed to read key %s", key)
	}

	return v, nil
}

func (s *store) Set(ctx context.Context, key, value string) error {
	return errors.Wrapf(s.client.Set(ctx, key, value, 0).Err(), "failed to write key %s", key)
}

func (s *store) Remove(ctx context.Context, key string) error {
	return errors.Wrapf(s.client.Del(ctx, key).Err(), "failed to remove key %s", key)
}

// Apply sends all mutations in one MULTI/EXEC block.
func (s *store) Apply(ctx context.Context, mutations []repository.Mutation) error {
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, m := range mutations {
			if m.Value == nil {
				pipe.Del(ctx, m.Key)

				continue
			}
			pipe.Set(ctx, m.Key, *m.Value, 0)
		}

		return nil
	})

	return errors.Wrap(err, "failed to apply mutations")
}

func (s *store) Close() error {
	return errors.WithStack(s.client.Close())
}
