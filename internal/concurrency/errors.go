// File: internal/concurrency/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"fmt"
	"runtime/debug"

	"github.com/momentics/hioload-conc/api"
)

// Re-exported for callers that only import the pool package.
var (
	ErrPoolShutdown    = api.ErrPoolShutdown
	ErrNilTask         = api.ErrNilTask
	ErrInvalidArgument = api.ErrInvalidArgument
)

// PanicError carries a value recovered from a panicking task together with
// the goroutine stack at the point of recovery.
type PanicError struct {
	Value any
	Stack string
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: string(debug.Stack())}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
