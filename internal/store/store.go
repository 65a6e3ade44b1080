package store

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is the minimal durable key-value contract shared by both storage
// backends. Values are opaque byte blobs; callers own the serialization.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
