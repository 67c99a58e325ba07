package inet

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfMemory is returned when the arena has no free slot left.
	ErrOutOfMemory = errors.New("arena exhausted")
	// ErrUndefinedReference is returned when a reference names no definition.
	ErrUndefinedReference = errors.New("undefined reference")
	// ErrOutOfRange reports access to a port that does not exist.
	ErrOutOfRange = errors.New("port out of range")
)

// RefError reports a failed dereference.
type RefError struct {
	Name string
}

func (e *RefError) Error() string {
	return fmt.Sprintf("%v: @%s", ErrUndefinedReference, e.Name)
}

func (e *RefError) Unwrap() error { return ErrUndefinedReference }

// PortError reports access to a free or missing arena slot. It indicates a
// graph-consistency bug and is raised as a panic by the internal accessors,
// then turned back into an error by the reduction drivers.
type PortError struct {
	Ptr Ptr
}

func (e *PortError) Error() string {
	return fmt.Sprintf("%v: %s", ErrOutOfRange, e.Ptr)
}

func (e *PortError) Unwrap() error { return ErrOutOfRange }

// recoverPort converts a PortError panic into err.
func recoverPort(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if pe, ok := r.(*PortError); ok {
		*err = pe
		return
	}
	panic(r)
}
