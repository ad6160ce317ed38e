// Package rec provides utilities for recovering from panics and wrapping errors.
package rec

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// PanicError carries a recovered panic value and the stack it was raised on.
type PanicError struct {
	Value any
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("recovered panic: %v\n%s", p.Value, p.Stack)
}

// Unwrap exposes the panic value when it was an error.
func (p *PanicError) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// From converts a value returned by recover into a *PanicError. It returns
// nil when r is nil.
func From(r any) *PanicError {
	if r == nil {
		return nil
	}
	return &PanicError{Value: r, Stack: debug.Stack()}
}

// Error recovers a panic and assigns it to the provided error.
// It must be deferred directly.
func Error(err *error) {
	if r := From(recover()); r != nil {
		*err = r
	}
}

// Wrap recovers a panic with the provided format and arguments
// and assigns it to the provided error.
// The recovered panic is appended to the end of the arguments.
// If no panic was recovered, but the error is not nil, it is wrapped
// with the provided format and arguments as well.
func Wrap(err *error, format string, a ...any) {
	if r := From(recover()); r != nil {
		*err = fmt.Errorf(format, append(a, r)...)
	} else if *err != nil {
		*err = fmt.Errorf(format, append(a, *err)...)
	}
}

// IsPanic reports whether err carries a recovered panic.
func IsPanic(err error) bool {
	var p *PanicError
	return errors.As(err, &p)
}
