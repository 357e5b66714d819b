// internal/kvstore/kvstore.go

// Package kvstore is the key-value collaborator the catalog persists its snapshot into.
// Values are opaque bytes and are always overwritten whole.
package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	// Get returns ErrNotFound when the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
