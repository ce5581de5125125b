package pipeline

import (
	"errors"
	"fmt"
)

// ErrNotStarted is returned by Frame before Start has succeeded.
var ErrNotStarted = errors.New("pipeline has no compiled program")

// AssemblyError is returned when the runtime rejects an assembled program.
type AssemblyError struct {
	Err error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembling program: %v", e.Err)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}
