// Package store defines the persistence contracts for the social feed and
// their Postgres and in-memory implementations. The in-memory stores exist
// for development and tests; production startup requires Postgres.
package store

import "errors"

// Sentinel errors shared by all stores.
var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrNotFoundOrForbidden = errors.New("not found or not owned by user")
)
