// Package theme persists the selected colour theme.
package theme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colonyops/tasklist/internal/core/kv"
)

// Name identifies a theme.
type Name string

const (
	Light Name = "light"
	Dark  Name = "dark"
)

// DefaultKey is the KV key the theme is stored under.
const DefaultKey = "todo-theme"

// ErrInvalid is returned for names other than light or dark.
var ErrInvalid = errors.New("invalid theme")

// IsValid reports whether n is a known theme.
func (n Name) IsValid() bool {
	return n == Light || n == Dark
}

// Toggle returns the other theme.
func (n Name) Toggle() Name {
	if n == Dark {
		return Light
	}
	return Dark
}

// Parse parses a theme name, case-insensitively.
func Parse(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if !n.IsValid() {
		return "", fmt.Errorf("%w %q: must be light or dark", ErrInvalid, s)
	}
	return n, nil
}

// Service loads and saves the theme selection.
type Service struct {
	store    kv.KV
	key      string
	fallback Name
	log      zerolog.Logger
}

// NewService creates a theme service storing under key. An empty key uses
// DefaultKey; an invalid fallback uses Light.
func NewService(store kv.KV, key string, fallback Name, log zerolog.Logger) *Service {
	if key == "" {
		key = DefaultKey
	}
	if !fallback.IsValid() {
		fallback = Light
	}
	return &Service{store: store, key: key, fallback: fallback, log: log}
}

// Load returns the stored theme, or the fallback when nothing valid is stored.
func (s *Service) Load(ctx context.Context) Name {
	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Warn().Err(err).Msg("failed to read theme")
		}
		return s.fallback
	}

	n, err := Parse(raw)
	if err != nil {
		s.log.Warn().Str("value", raw).Msg("stored theme is invalid, using fallback")
		return s.fallback
	}
	return n
}

// Save stores the theme.
func (s *Service) Save(ctx context.Context, n Name) error {
	if !n.IsValid() {
		return fmt.Errorf("%w %q", ErrInvalid, n)
	}
	if err := s.store.Set(ctx, s.key, string(n)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
