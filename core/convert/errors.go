package convert

import (
	"errors"
	"fmt"
)

// ErrConversion is matched by every conversion Error.
var ErrConversion = errors.New("conversion failed")

// Error names the instance field that could not be converted.
type Error struct {
	Field string
	Err   error
}

func (e *Error) Error() string { return fmt.Sprintf("convert %s: %v", e.Field, e.Err) }

func (e *Error) Unwrap() []error { return []error{ErrConversion, e.Err} }
