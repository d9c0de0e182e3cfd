// Package store keeps reference records in memory. Identifier uniqueness is
// the only invariant it enforces.
package store

import (
	"context"
	"sync"

	"portal/pkg/platform/sentinel"
)

// Record is anything addressable by a string id.
type Record interface {
	RecordID() string
}

// InMemory is a record store that preserves insertion order. Records are
// value types, so Get and List hand out copies.
type InMemory[T Record] struct {
	mu    sync.RWMutex
	order []string
	items map[string]T
}

func NewInMemory[T Record]() *InMemory[T] {
	return &InMemory[T]{items: make(map[string]T)}
}

// Create adds r. An existing id yields sentinel.ErrConflict.
func (s *InMemory[T]) Create(_ context.Context, r T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := r.RecordID()
	if _, ok := s.items[key]; ok {
		return sentinel.ErrConflict
	}
	s.items[key] = r
	s.order = append(s.order, key)
	return nil
}

func (s *InMemory[T]) Get(_ context.Context, key string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.items[key]
	if !ok {
		var zero T
		return zero, sentinel.ErrNotFound
	}
	return r, nil
}

func (s *InMemory[T]) Exists(_ context.Context, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[key]
	return ok
}

// List returns all records in insertion order.
func (s *InMemory[T]) List(_ context.Context) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.items[key])
	}
	return out
}

// Update replaces the record with r's id, keeping its position.
func (s *InMemory[T]) Update(_ context.Context, r T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := r.RecordID()
	if _, ok := s.items[key]; !ok {
		return sentinel.ErrNotFound
	}
	s.items[key] = r
	return nil
}

func (s *InMemory[T]) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *InMemory[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
