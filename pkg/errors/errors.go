package errors

import (
	"errors"
	"fmt"
)

// Archive error kinds. All of them are recoverable at post or entry granularity.
var (
	ErrInvalidURL        = errors.New("invalid url")
	ErrNoFilename        = errors.New("no filename in url")
	ErrNetwork           = errors.New("network error")
	ErrWrite             = errors.New("write error")
	ErrDanglingReference = errors.New("dangling reference")
	ErrAlreadyExists     = errors.New("already exists")
)

var codes = map[error]string{
	ErrInvalidURL:        "invalid_url",
	ErrNoFilename:        "no_filename",
	ErrNetwork:           "network_error",
	ErrWrite:             "write_error",
	ErrDanglingReference: "dangling_reference",
	ErrAlreadyExists:     "already_exists",
}

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Kind    error
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error kind, so errors.Is(err, ErrNetwork) holds for a
// network failure wrapped with WrapKind.
func (e *Error) Is(target error) bool {
	return e.Kind != nil && e.Kind == target
}

// WrapKind wraps err as one of the kinds declared in this package. A nil err
// still produces an error carrying the kind.
func WrapKind(err error, kind error, message string) error {
	return &Error{
		Code:    codes[kind],
		Message: message,
		Kind:    kind,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
