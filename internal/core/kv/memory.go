package kv

import (
	"context"
	"fmt"

	memkv "github.com/colonyops/tasklist/pkg/kv"
)

// Memory is an in-process KV backed by pkg/kv. Nothing survives the process.
type Memory struct {
	data *memkv.Store[string, string]
}

var _ KV = (*Memory)(nil)

// NewMemory creates an empty in-memory KV.
func NewMemory() *Memory {
	return &Memory{data: memkv.New[string, string]()}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	v, ok := m.data.Get(key)
	if !ok {
		return "", fmt.Errorf("kv get %q: %w", key, ErrNotFound)
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key string, value string) error {
	m.data.Set(key, value)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.data.Delete(key)
	return nil
}

// ListKeys returns all keys in sorted order.
func (m *Memory) ListKeys(_ context.Context) ([]string, error) {
	return m.data.Keys(), nil
}
