package editor

import (
	"errors"
	"strings"
)

var (
	// ErrSaveTimeout marks a save that failed because the catalog API did not
	// answer in time. The underlying error stays wrapped.
	ErrSaveTimeout = errors.New("save timed out")

	// ErrSuperseded is returned when a template load finished after another
	// category was selected; its result was discarded.
	ErrSuperseded = errors.New("template load superseded by a newer category selection")

	ErrOutOfRange   = errors.New("index out of range")
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid value")
	ErrNoProduct    = errors.New("no product loaded")
)

// ValidationError lists the problems that block a save.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "cannot save product: " + strings.Join(e.Problems, "; ")
}
