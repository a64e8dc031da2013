package tablestorm

import (
	"errors"
	"fmt"

	"github.com/dshills/tablestorm/internal/host"
)

// Editor errors.
var (
	// ErrNoAdapter indicates New was called without a host adapter.
	ErrNoAdapter = host.ErrNoAdapter

	// ErrNoRoot indicates the adapter has no editable root element.
	ErrNoRoot = errors.New("host adapter has no root element")

	// ErrClosed indicates the editor has been closed.
	ErrClosed = errors.New("editor closed")
)

// OperationError wraps a failure of a named editor operation.
type OperationError struct {
	// Op is the operation that failed.
	Op string

	// Target describes what the operation acted on, if meaningful.
	Target string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}
