package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"portal/pkg/platform/sentinel"
)

type item struct {
	ID    string
	Label string
}

func (i item) RecordID() string { return i.ID }

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory[item]
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory[item]()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) TestCreate() {
	s.Require().NoError(s.store.Create(s.ctx, item{ID: "1", Label: "a"}))

	s.Run("duplicate id conflicts", func() {
		err := s.store.Create(s.ctx, item{ID: "1", Label: "b"})
		s.ErrorIs(err, sentinel.ErrConflict)
		got, err := s.store.Get(s.ctx, "1")
		s.Require().NoError(err)
		s.Equal("a", got.Label)
	})
}

func (s *MemoryStoreSuite) TestListKeepsInsertionOrder() {
	for _, key := range []string{"3", "1", "2"} {
		s.Require().NoError(s.store.Create(s.ctx, item{ID: key}))
	}
	s.Require().NoError(s.store.Update(s.ctx, item{ID: "1", Label: "updated"}))
	s.Require().NoError(s.store.Delete(s.ctx, "3"))

	s.Equal([]item{{ID: "1", Label: "updated"}, {ID: "2"}}, s.store.List(s.ctx))
	s.Equal(2, s.store.Len())
}

func (s *MemoryStoreSuite) TestMissingRecords() {
	_, err := s.store.Get(s.ctx, "nope")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.Update(s.ctx, item{ID: "nope"}), sentinel.ErrNotFound)
	s.ErrorIs(s.store.Delete(s.ctx, "nope"), sentinel.ErrNotFound)
	s.False(s.store.Exists(s.ctx, "nope"))
}

func (s *MemoryStoreSuite) TestConcurrentCreate() {
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.store.Create(s.ctx, item{ID: fmt.Sprint(i % 10)})
		}()
	}
	wg.Wait()
	s.Equal(10, s.store.Len())
	s.Len(s.store.List(s.ctx), 10)
}
