package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter signals a parameter absent from the parameter store.
	ErrMissingParameter = errors.New("missing parameter")
	// ErrInvalidParameter signals a stored parameter of an unexpected kind or encoding.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrInvalidArgument signals a request argument outside the accepted range.
	ErrInvalidArgument = errors.New("invalid argument")
)

// MissingParameterError wraps ErrMissingParameter with the parameter name.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingParameter.Error(), e.Name)
}

func (e *MissingParameterError) Unwrap() error { return ErrMissingParameter }

// NewMissingParameter creates a missing parameter error.
func NewMissingParameter(name string) error {
	return &MissingParameterError{Name: name}
}

// InvalidArgumentError wraps ErrInvalidArgument with the requested value and the allowed maximum.
// Max is negative when the argument has no upper bound.
type InvalidArgumentError struct {
	Arg string
	N   int
	Max int
}

func (e *InvalidArgumentError) Error() string {
	if e.N < 0 {
		return fmt.Sprintf("%s: %s must be non-negative, got %d", ErrInvalidArgument.Error(), e.Arg, e.N)
	}
	return fmt.Sprintf("%s: %s must be lower or equal than authors count; current %s: %d; authors count: %d",
		ErrInvalidArgument.Error(), e.Arg, e.Arg, e.N, e.Max)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// NewInvalidArgument creates an invalid argument error.
func NewInvalidArgument(arg string, n, maxN int) error {
	return &InvalidArgumentError{Arg: arg, N: n, Max: maxN}
}
