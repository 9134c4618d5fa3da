package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/tasklist/internal/core/kv"
)

// DefaultKey is the KV key the collection is stored under.
const DefaultKey = "todos"

// Persister loads and saves the whole collection.
type Persister interface {
	// Load returns the stored collection, newest first. A missing or
	// malformed blob yields an empty collection and no error.
	Load(ctx context.Context) ([]Task, error)
	// Save replaces the stored collection.
	Save(ctx context.Context, tasks []Task) error
}

// Record is the persisted shape of a Task.
type Record struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Timestamp int64  `json:"timestamp"` // ms since epoch
}

// ToRecord converts a task to its persisted shape.
func ToRecord(t Task) Record {
	return Record{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Timestamp: t.CreatedAt.UnixMilli(),
	}
}

// FromRecord converts a persisted record back to a task.
func FromRecord(r Record) Task {
	return Task{
		ID:        r.ID,
		Text:      r.Text,
		Completed: r.Completed,
		CreatedAt: time.UnixMilli(r.Timestamp),
	}
}

// KVPersister stores the collection as a JSON array under a single KV key.
type KVPersister struct {
	records *kv.TypedKV[[]Record]
	key     string
	log     zerolog.Logger
}

var _ Persister = (*KVPersister)(nil)

// NewKVPersister creates a persister writing to key in store.
// An empty key uses DefaultKey.
func NewKVPersister(store kv.KV, key string, log zerolog.Logger) *KVPersister {
	if key == "" {
		key = DefaultKey
	}
	return &KVPersister{
		records: kv.Scoped[[]Record](store, ""),
		key:     key,
		log:     log.With().Str("key", key).Logger(),
	}
}

// Load reads the collection. Records with an empty id, blank text, or an id
// already seen are dropped.
func (p *KVPersister) Load(ctx context.Context) ([]Task, error) {
	records, err := p.records.Get(ctx, p.key)
	switch {
	case err == nil:
	case errors.Is(err, kv.ErrNotFound):
		return []Task{}, nil
	case errors.Is(err, kv.ErrMalformed):
		p.log.Warn().Err(err).Msg("stored tasks are malformed, starting empty")
		return []Task{}, nil
	default:
		return []Task{}, fmt.Errorf("load tasks: %w", err)
	}

	tasks := make([]Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		r.Text = strings.TrimSpace(r.Text)
		if r.ID == "" || r.Text == "" || seen[r.ID] {
			p.log.Warn().Int("index", i).Str("id", r.ID).Msg("skipping invalid stored task")
			continue
		}
		seen[r.ID] = true
		tasks = append(tasks, FromRecord(r))
	}

	return tasks, nil
}

// Save writes the collection in the given order.
func (p *KVPersister) Save(ctx context.Context, tasks []Task) error {
	records := make([]Record, len(tasks))
	for i, t := range tasks {
		records[i] = ToRecord(t)
	}
	if err := p.records.Set(ctx, p.key, records); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
