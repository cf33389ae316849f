package models

import "errors"

// ValidationError reports a missing required inbound field. It is sent back
// to the caller as an error frame; the connection stays open and no state
// is mutated.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}

var (
	ErrNotFound       = errors.New("resource not found")
	ErrNotParticipant = errors.New("caller is not a participant of this conversation")
)
