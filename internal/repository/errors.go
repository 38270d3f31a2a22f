package repository

import (
	"errors"
	"fmt"
)

// The closed set of failures a storage operation can produce. Callers map
// these to HTTP statuses exhaustively; anything not in this set is a bug.
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPoolExhausted     = errors.New("connection pool exhausted")
)

// StoreError wraps any underlying query or connection failure. Op names the
// operation that failed; Err carries the driver error for diagnostics.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
