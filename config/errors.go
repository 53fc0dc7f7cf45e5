package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKey is returned when a required key is absent.
	ErrMissingKey = errors.New("missing required key")
	// ErrInvalidValue is returned when a key holds an unusable value.
	ErrInvalidValue = errors.New("invalid value")
	// ErrNotFound is returned when the configuration file does not exist.
	ErrNotFound = errors.New("config file not found")
)

// Error ties a configuration problem to the key that triggered it.
type Error struct {
	Key string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("config %s: %v", e.Key, e.Err) }

func (e *Error) Unwrap() error { return e.Err }
