package generator

import (
	"errors"
	"fmt"
)

// ErrExhausted is matched by every ExhaustedError.
var ErrExhausted = errors.New("generation exhausted")

// ExhaustedError is returned when a rejection-sampling stage cannot satisfy
// its constraint within its attempt cap, or when the constraint is
// unsatisfiable up front.
type ExhaustedError struct {
	Stage    string
	Attempts int
	Reason   string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: %s after %d attempts: %s", ErrExhausted, e.Stage, e.Attempts, e.Reason)
}

func (e *ExhaustedError) Unwrap() error { return ErrExhausted }
