package task

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Store owns the ordered task collection. Every mutation goes through its
// methods and is followed by a save of the full collection.
//
// Mutations return an error only when saving fails. Blank text and unknown
// ids are reported through the bool result, never as errors. When a save
// fails the in-memory change is kept.
//
// A Store is not safe for concurrent use.
type Store struct {
	persister Persister
	log       zerolog.Logger
	now       func() time.Time

	// items is oldest-first so Add appends; iteration runs backwards.
	items []*Task
	index map[string]*Task
}

// NewStore creates an empty store. Call Load to rehydrate it.
func NewStore(persister Persister, log zerolog.Logger) *Store {
	return &Store{
		persister: persister,
		log:       log,
		now:       time.Now,
		index:     map[string]*Task{},
	}
}

// Load replaces the in-memory collection with the persisted one. On failure
// the store is left empty and the error is returned for logging.
func (s *Store) Load(ctx context.Context) error {
	s.items = nil
	s.index = map[string]*Task{}

	tasks, err := s.persister.Load(ctx)
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Msg("load failed, starting with an empty task list")
		return err
	}

	// persisted order is newest-first
	for i := len(tasks) - 1; i >= 0; i-- {
		t := tasks[i]
		if _, dup := s.index[t.ID]; dup {
			continue
		}
		s.insert(&t)
	}

	s.log.Debug().Int("count", len(s.items)).Msg("tasks loaded")
	return nil
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.items)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	t, ok := s.index[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// Tasks returns a copy of the collection, newest first.
func (s *Store) Tasks() []Task {
	return slices.Collect(s.Query("", FilterAll))
}

// Add creates a task from text and places it first. Blank text is discarded
// and ok is false.
func (s *Store) Add(ctx context.Context, text string) (t Task, ok bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, false, nil
	}

	now := s.now()
	t = Task{
		ID:   s.newID(now),
		Text: text,
		// ms precision so the persisted timestamp round-trips exactly
		CreatedAt: time.UnixMilli(now.UnixMilli()),
	}
	s.insert(&t)

	s.log.Debug().Ctx(ctx).Str("id", t.ID).Msg("task added")
	return t, true, s.persist(ctx, "add")
}

// Toggle flips the completion flag of the task with id.
func (s *Store) Toggle(ctx context.Context, id string) (bool, error) {
	t, ok := s.index[id]
	if !ok {
		return false, nil
	}
	t.Completed = !t.Completed
	return true, s.persist(ctx, "toggle")
}

// Edit replaces the text of the task with id. Blank text is discarded.
func (s *Store) Edit(ctx context.Context, id, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	t, ok := s.index[id]
	if !ok {
		return false, nil
	}
	t.Text = text
	return true, s.persist(ctx, "edit")
}

// Delete removes the task with id.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.index[id]; !ok {
		return false, nil
	}
	s.items = slices.DeleteFunc(s.items, func(t *Task) bool { return t.ID == id })
	delete(s.index, id)
	return true, s.persist(ctx, "delete")
}

// SetAllCompleted marks every task completed.
func (s *Store) SetAllCompleted(ctx context.Context) error {
	for _, t := range s.items {
		t.Completed = true
	}
	return s.persist(ctx, "complete all")
}

// ClearCompleted removes every completed task and returns how many were removed.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(t *Task) bool {
		if t.Completed {
			delete(s.index, t.ID)
			return true
		}
		return false
	})
	return before - len(s.items), s.persist(ctx, "clear completed")
}

// ClearAll empties the collection and returns how many tasks were removed.
func (s *Store) ClearAll(ctx context.Context) (int, error) {
	n := len(s.items)
	s.items = nil
	s.index = map[string]*Task{}
	return n, s.persist(ctx, "clear all")
}

// Import adds records as new tasks with fresh ids, keeping their text,
// completion flag and timestamp. Records are newest-first and keep that order
// ahead of existing tasks. Blank records are skipped. The collection is saved
// once.
func (s *Store) Import(ctx context.Context, records []Record) (int, error) {
	added := 0
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}

		now := s.now()
		created := time.UnixMilli(r.Timestamp)
		if r.Timestamp == 0 {
			created = time.UnixMilli(now.UnixMilli())
		}

		s.insert(&Task{
			ID:        s.newID(now),
			Text:      text,
			Completed: r.Completed,
			CreatedAt: created,
		})
		added++
	}

	if added == 0 {
		return 0, nil
	}
	return added, s.persist(ctx, "import")
}

// Query returns the tasks whose text contains term (case-insensitive, trimmed)
// and that pass filter, newest first. The sequence reads the live collection
// each time it is ranged over, so it can be restarted after a mutation. The
// store must not be mutated while a range over it is in progress.
func (s *Store) Query(term string, filter Filter) iter.Seq[Task] {
	needle := strings.ToLower(strings.TrimSpace(term))
	return func(yield func(Task) bool) {
		for i := len(s.items) - 1; i >= 0; i-- {
			t := *s.items[i]
			if !filter.Matches(t) {
				continue
			}
			if needle != "" && !strings.Contains(strings.ToLower(t.Text), needle) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Count returns the number of tasks Query(term, filter) yields.
func (s *Store) Count(term string, filter Filter) int {
	n := 0
	for range s.Query(term, filter) {
		n++
	}
	return n
}

func (s *Store) insert(t *Task) {
	s.items = append(s.items, t)
	s.index[t.ID] = t
}

func (s *Store) newID(now time.Time) string {
	for {
		id := NewID(now)
		if _, taken := s.index[id]; !taken {
			return id
		}
	}
}

func (s *Store) persist(ctx context.Context, op string) error {
	if err := s.persister.Save(ctx, s.Tasks()); err != nil {
		s.log.Error().Ctx(ctx).Err(err).Str("op", op).Msg("failed to save tasks")
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
