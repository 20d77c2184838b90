package domain

import (
	"errors"
	"fmt"
)

// Input errors. The pipeline rejects these before calling any component.
var (
	ErrEmptyQuery = errors.New("query is empty")
	ErrEmptyText  = errors.New("text to embed is empty")
)

// Configuration errors. These are fatal at startup.
var (
	ErrMissingAPIKey     = errors.New("api key is not set")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrStoreMismatch     = errors.New("chunk and embedding files do not match")
	ErrUnknownProvider   = errors.New("unknown provider")
)

// ErrEmptyCompletion is returned when the generation endpoint answers without text.
var ErrEmptyCompletion = errors.New("generation endpoint returned no text")

// ConfigError marks an error as a configuration problem the process cannot
// recover from.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError wraps err as a ConfigError. It returns nil for a nil err.
func NewConfigError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ConfigError{Op: op, Err: err}
}

// IsConfigError reports whether err is a fatal configuration error.
func IsConfigError(err error) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return true
	}
	return errors.Is(err, ErrMissingAPIKey) ||
		errors.Is(err, ErrDimensionMismatch) ||
		errors.Is(err, ErrStoreMismatch) ||
		errors.Is(err, ErrUnknownProvider)
}

// IsInputError reports whether err was caused by invalid user input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyQuery) || errors.Is(err, ErrEmptyText)
}
