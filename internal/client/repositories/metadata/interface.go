// Package metadata is the client's small key/value table. The session store
// keeps the durable session credential and user id in it.
package metadata

import (
	"context"
)

// Repository is a byte-valued key/value store.
// Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Delete(ctx context.Context, keys ...string) error
}
