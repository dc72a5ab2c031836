package store

import "fmt"

// DataAccessError indicates a failed read against the document store:
// store unreachable, query malformed, or auth failure. Reads are never
// retried here; a failure surfaces to the caller as-is.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access: %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}
