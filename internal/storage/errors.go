package storage

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates no live store connection exists. Callers surface
// it as a server-side fault; it is never retried here.
var ErrUnavailable = errors.New("document store unavailable")

// PersistenceError wraps a lower-level read or write failure from the driver.
type PersistenceError struct {
	Op         string
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
