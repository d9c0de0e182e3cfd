package storage

import (
	"context"
	"sync"

	"portal/pkg/platform/sentinel"
)

// InMemory keeps values in a map. Values are copied on the way in and out so
// callers cannot mutate stored bytes.
type InMemory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewInMemory() *InMemory {
	return &InMemory{values: make(map[string][]byte)}
}

func (s *InMemory) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[key]; ok {
		return append([]byte(nil), v...), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *InMemory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
