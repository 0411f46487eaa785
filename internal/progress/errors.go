package progress

import (
	"errors"
	"fmt"

	"github.com/rainbowedu/rainbow/internal/curriculum"
)

// Caller errors. These indicate a view asked about something the curriculum
// does not contain and are always returned, never swallowed.
var (
	ErrUnknownSubject = curriculum.ErrUnknownSubject
	ErrUnknownLesson  = curriculum.ErrUnknownLesson
	ErrUnknownUnit    = errors.New("unknown unit")
	ErrUnknownGroup   = errors.New("unknown group")
	ErrNotSequenced   = errors.New("lesson is not tracked by unit")
)

// ErrInvalidSnapshot indicates persisted or imported data that does not match
// the snapshot format.
var ErrInvalidSnapshot = errors.New("invalid progress snapshot")

// StorageError wraps a failed read or write of the snapshot. The tracker logs
// these and carries on with its in-memory state.
type StorageError struct {
	Op  string // "read" or "write"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("progress storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
