package flow

import "errors"

var (
	// ErrNotFound is returned when a referenced stage or item is absent from
	// the workflow.
	ErrNotFound = errors.New("not found")
	// ErrOutOfRange is returned when navigation would leave the stage
	// sequence.
	ErrOutOfRange = errors.New("out of range")
	// ErrInvalidTransition is returned for a disallowed structural change,
	// such as inserting after the end stage or removing the start item.
	ErrInvalidTransition = errors.New("invalid transition")
)
