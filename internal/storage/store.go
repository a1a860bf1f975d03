// Package storage holds the key-value stores that back the admissions
// collections. Every value is an opaque string; callers own the encoding.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set or was removed.
var ErrNotFound = errors.New("storage: key not found")

// Store is the injected key-value interface. Set replaces the whole value
// in one operation so a reader never observes a partial write.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
