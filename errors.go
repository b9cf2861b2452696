package jlt4013a

import (
	"errors"
	"fmt"

	"periph.io/x/devices/v3/jlt4013a/st7701s"
)

// BusError is returned when a single 9-bit transfer to the controller fails.
type BusError = st7701s.TransferError

// PowerError is returned when the panel supply cannot be switched.
type PowerError struct {
	Op  string // "enable" or "disable"
	Err error
}

func (e *PowerError) Error() string {
	return fmt.Sprintf("jlt4013a: power %s failed: %v", e.Op, e.Err)
}

func (e *PowerError) Unwrap() error {
	return e.Err
}

// ResourceError is returned when a bus or pin needed by the panel cannot be
// found or opened.
type ResourceError struct {
	Kind string // "spi", "reset" or "power"
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("jlt4013a: %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// ErrNotFound is wrapped by ResourceError when a lookup returned nothing.
var ErrNotFound = errors.New("not found")

// StateError is returned when a lifecycle operation is not allowed in the
// panel's current state. No hardware is touched.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("jlt4013a: cannot %s while %s", e.Op, e.State)
}
