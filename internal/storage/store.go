// Package storage defines the client-local key/value storage that backs the
// session record, plus an in-memory implementation.
//
// Backends live in subpackages:
//
//   - storage/file    one file per key under a home directory
//   - storage/sqlite  a kv table in a local SQLite database
//   - storage/redis   a shared Redis instance
//
// Every backend returns sentinel.ErrNotFound (possibly wrapped) for a missing
// key and overwrites atomically on Set.
package storage

import "context"

// Store is byte-oriented so the session layer owns serialization.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
