package style

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchMatch reports input that does not name any known color or
	// attribute.
	ErrNoSuchMatch = errors.New("no match for the provided input")

	// ErrInvalidForm reports input of a recognizable shape that cannot be
	// parsed, such as an RGB triple with four components.
	ErrInvalidForm = errors.New("input is malformed")
)

// ParseError records the input that failed to parse.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func stError(input string, err error) error {
	return &ParseError{Input: input, Err: err}
}
