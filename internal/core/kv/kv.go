// Package kv defines the string-keyed storage boundary that task and theme
// state is persisted through.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned (wrapped) by Get when a key does not exist.
	ErrNotFound = errors.New("key not found")
	// ErrMalformed is returned (wrapped) when a stored value cannot be decoded.
	ErrMalformed = errors.New("malformed value")
)

// KV is the interface for a persistent key-value store.
// Keys and values are opaque strings.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context) ([]string, error)
}
