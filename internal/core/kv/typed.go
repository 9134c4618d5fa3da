package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// TypedKV provides type-safe JSON access to a KV store for a specific type T.
type TypedKV[T any] struct {
	store  KV
	prefix string
}

// Scoped returns a TypedKV[T] that prefixes all keys with "namespace:".
// An empty namespace leaves keys untouched.
func Scoped[T any](store KV, namespace string) *TypedKV[T] {
	prefix := ""
	if namespace != "" {
		prefix = namespace + ":"
	}
	return &TypedKV[T]{
		store:  store,
		prefix: prefix,
	}
}

// Get retrieves and deserializes a value by key. A value that is not valid
// JSON for T returns an error wrapping ErrMalformed.
func (t *TypedKV[T]) Get(ctx context.Context, key string) (T, error) {
	var v T
	raw, err := t.store.Get(ctx, t.prefix+key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, fmt.Errorf("kv get %q: %w: %w", t.prefix+key, ErrMalformed, err)
	}
	return v, nil
}

// Set serializes and stores a value.
func (t *TypedKV[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", t.prefix+key, err)
	}
	return t.store.Set(ctx, t.prefix+key, string(data))
}

// Delete removes a key.
func (t *TypedKV[T]) Delete(ctx context.Context, key string) error {
	return t.store.Delete(ctx, t.prefix+key)
}
