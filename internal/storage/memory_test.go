package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"portal/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *InMemorySuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) TestRoundTrip() {
	s.Run("returns ErrNotFound for missing key", func() {
		_, err := s.store.Get(s.ctx, "missing")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("overwrites on Set", func() {
		s.Require().NoError(s.store.Set(s.ctx, "k", []byte("one")))
		s.Require().NoError(s.store.Set(s.ctx, "k", []byte("two")))
		got, err := s.store.Get(s.ctx, "k")
		s.Require().NoError(err)
		s.Equal([]byte("two"), got)
	})

	s.Run("delete is idempotent", func() {
		s.Require().NoError(s.store.Set(s.ctx, "gone", []byte("x")))
		s.Require().NoError(s.store.Delete(s.ctx, "gone"))
		s.Require().NoError(s.store.Delete(s.ctx, "gone"))
		_, err := s.store.Get(s.ctx, "gone")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemorySuite) TestCopiesValues() {
	value := []byte("abc")
	s.Require().NoError(s.store.Set(s.ctx, "k", value))
	value[0] = 'z'

	got, err := s.store.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal([]byte("abc"), got)

	got[1] = 'z'
	again, err := s.store.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal([]byte("abc"), again)
}
