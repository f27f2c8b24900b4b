package datastore

import (
	"errors"
)

var (
	// ErrNoSource is returned by Build when neither construction source was
	// supplied. This is a wiring defect, not a retryable condition.
	ErrNoSource = errors.New("either an external session or a session factory is required")

	// ErrTxFinalized is returned when a unit-of-work is committed or rolled
	// back more than once
	ErrTxFinalized = errors.New("transaction already finalized")
)
