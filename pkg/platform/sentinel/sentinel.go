package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and outbound collaborators
// (notifier, blob store) return these, optionally wrapped, so services can
// translate them into domain errors at the operation boundary.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: row does not exist in the store
// - ErrConflict: a uniqueness or concurrent-write conflict
// - ErrInvalidState: entity in the wrong state for the requested transition
// - ErrUnavailable: collaborator temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
