package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidGeometry indicates rectangle coordinates outside [0,1]
	// or an otherwise malformed anchor region.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrRemoteUnavailable indicates the remote annotation store could
	// not be reached or returned a non-success status.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrEditInProgress indicates another annotation is already in an
	// inline-edit session. Only one editor may be active at a time.
	ErrEditInProgress = errors.New("edit already in progress")
)
