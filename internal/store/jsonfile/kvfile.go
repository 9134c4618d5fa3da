// Package jsonfile implements a kv.KV backend stored as a single JSON file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/colonyops/tasklist/internal/core/kv"
)

// KVFile implements kv.KV using a JSON object file for persistence.
// Every write rewrites the whole file atomically.
type KVFile struct {
	path string
	mu   sync.RWMutex
}

var _ kv.KV = (*KVFile)(nil)

// NewKVFile creates a JSON file KV store at the given path.
// The file is created on first write.
func NewKVFile(path string) *KVFile {
	return &KVFile{path: path}
}

// Path returns the backing file path.
func (s *KVFile) Path() string {
	return s.path
}

// Get retrieves a value by key.
func (s *KVFile) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.load()
	if err != nil {
		return "", fmt.Errorf("kv get %q: %w", key, err)
	}

	v, ok := data[key]
	if !ok {
		return "", fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}
	return v, nil
}

// Set stores a value, replacing any existing one.
func (s *KVFile) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A corrupt file is replaced rather than blocking every future write.
	data, err := s.load()
	if err != nil && !errors.Is(err, kv.ErrMalformed) {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	if data == nil {
		data = map[string]string{}
	}

	data[key] = value
	if err := s.save(data); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *KVFile) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}

	if _, ok := data[key]; !ok {
		return nil
	}

	delete(data, key)
	if err := s.save(data); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// ListKeys returns all keys in sorted order.
func (s *KVFile) ListKeys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// load reads the file from disk.
// Returns an empty map if the file doesn't exist or is empty.
func (s *KVFile) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	if len(raw) == 0 {
		return map[string]string{}, nil
	}

	data := map[string]string{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %w", kv.ErrMalformed, err)
	}
	return data, nil
}

// save writes the file to disk atomically.
func (s *KVFile) save(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
