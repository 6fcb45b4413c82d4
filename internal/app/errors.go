package app

import "errors"

// Sentinel errors for the engine's error taxonomy. Layers wrap these with
// fmt.Errorf("...: %w", err); callers classify with errors.Is.
var (
	// ErrValidation indicates a missing or malformed identifier supplied
	// to an operation. No mutation is attempted.
	ErrValidation = errors.New("invalid argument")

	// ErrNotFound indicates a referenced applicant, job request or
	// auto-application does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a state transition attempted from a terminal
	// state, or a duplicate-pair insert resolved as a no-op. An expected
	// outcome, not a crash.
	ErrConflict = errors.New("conflict")

	// ErrDependency indicates the persistent store is unavailable. Bulk
	// operations isolate it per iteration instead of aborting the batch.
	ErrDependency = errors.New("dependency unavailable")
)
