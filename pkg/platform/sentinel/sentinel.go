package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Storage backends and record stores
// return these (optionally wrapped) so services can translate them into domain
// errors.
//
// - ErrNotFound: key or record does not exist
// - ErrConflict: record with the same identifier already exists
// - ErrUnavailable: backend temporarily unreachable (locked file, dropped connection)
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
