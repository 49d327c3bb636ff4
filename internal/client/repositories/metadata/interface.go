// Package metadata is the console's local persistent key/value store: the
// counterpart of a browser's localStorage. Values are opaque bytes; the
// session package decides what they mean.
package metadata

import (
	"context"
)

// Repository is a flat key/value store.
//
// Get returns (nil, nil) for an absent key. Clear removes every key, not
// just the ones a caller wrote.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
