package command

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidInput   = errors.New("invalid input")
)

// Error is a dispatch failure. Keyword is the raw command word.
type Error struct {
	Kind    error
	Keyword string
	Msg     string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Keyword)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }
