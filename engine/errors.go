package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrFactoryClosed is returned when a session or metadata is requested
	// from a factory that has been closed
	ErrFactoryClosed = errors.New("session factory is closed")

	// ErrNoTransaction is returned when a write is issued on a session
	// without an active transaction
	ErrNoTransaction = errors.New("no active transaction on session")

	// ErrTransactionActive is returned by Begin when the session already
	// has an open transaction
	ErrTransactionActive = errors.New("session already has an active transaction")

	// ErrForwardOnly is returned by Rewind on a forward-only cursor
	ErrForwardOnly = errors.New("cursor is forward-only")
)

// NotFoundError represents an entity not found error
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.ID)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// UnmappedTypeError is returned when an operation names an entity type the
// engine has no mapping for
type UnmappedTypeError struct {
	Entity string
}

func (e *UnmappedTypeError) Error() string {
	return fmt.Sprintf("entity type '%s' is not mapped", e.Entity)
}
