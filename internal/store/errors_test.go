package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestDataAccessError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &DataAccessError{Op: "list users", Err: cause}

	want := "data access: list users: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the underlying cause")
	}

	wrapped := fmt.Errorf("loading snapshot: %w", err)
	var dae *DataAccessError
	if !errors.As(wrapped, &dae) {
		t.Error("errors.As should find DataAccessError through wrapping")
	}
	if dae.Op != "list users" {
		t.Errorf("Op = %q, want %q", dae.Op, "list users")
	}
}
