// Package flags implements ports.FeatureFlags from the static "features"
// configuration map.
package flags

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

// Static serves flags loaded at startup. Set allows tests and operators to
// flip a flag at runtime.
type Static struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStatic copies values. Keys are matched case-insensitively.
func NewStatic(values map[string]string) *Static {
	s := &Static{values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[normalize(k)] = strings.TrimSpace(v)
	}

	return s
}

// IsEnabled implements ports.FeatureFlags.
func (s *Static) IsEnabled(_ context.Context, flag string, defaultValue bool) bool {
	raw, ok := s.lookup(flag)
	if !ok {
		return defaultValue
	}

	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}

	return enabled
}

// Set overrides a flag.
func (s *Static) Set(flag, value string) {
	s.mu.Lock()
	s.values[normalize(flag)] = strings.TrimSpace(value)
	s.mu.Unlock()
}

func (s *Static) lookup(flag string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[normalize(flag)]

	return v, ok
}

func normalize(flag string) string {
	return strings.ToLower(strings.TrimSpace(flag))
}
