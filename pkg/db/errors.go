package db

import "errors"

// Sentinel errors shared across the persistence layer and the core
// services. Callers check them with errors.Is; stores wrap driver
// errors with fmt.Errorf("...: %w", err) and translate constraint
// violations into these values.
var (
	// ErrNotFound is returned when a week, assignment or participant
	// id does not resolve to a record, including virtual role ids
	// whose week or participant no longer exists.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned for malformed dates, unknown status
	// values and missing slot-template references.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when a unique constraint is violated,
	// notably the week start-date constraint during generation.
	// Week generation treats it as "already exists".
	ErrConflict = errors.New("conflicting record exists")
)
