package services

import "errors"

var (
	// ErrInvalidInput means caller-supplied parameters were missing or empty.
	ErrInvalidInput = errors.New("missing user ID or images")

	// ErrNotFound means no owned records matched the request.
	ErrNotFound = errors.New("no designs found")

	// ErrAllUploadsFailed means the storage batch produced zero survivors.
	ErrAllUploadsFailed = errors.New("all uploads failed")

	// ErrUpstreamFailure wraps scrape or storage collaborator failures.
	ErrUpstreamFailure = errors.New("upstream service failure")

	// ErrPersistenceFailure wraps a rolled-back database transaction.
	ErrPersistenceFailure = errors.New("persistence failure")
)
