package task

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTask       = errors.New("empty task")
	ErrMalformedTask   = errors.New("malformed task")
	ErrIndexOutOfRange = errors.New("task index out of range")
	ErrBadRecord       = errors.New("malformed persisted record")
)

// Error carries a user-facing message for one of the task error kinds.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func emptyf(format string, args ...any) error {
	return &Error{Kind: ErrEmptyTask, Msg: fmt.Sprintf(format, args...)}
}

func malformedf(format string, args ...any) error {
	return &Error{Kind: ErrMalformedTask, Msg: fmt.Sprintf(format, args...)}
}

func badRecordf(format string, args ...any) error {
	return &Error{Kind: ErrBadRecord, Msg: fmt.Sprintf(format, args...)}
}
