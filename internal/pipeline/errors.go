package pipeline

import (
	"context"
	"errors"
	"fmt"

	"nextseqstats/internal/ingest"
)

// Kind classifies why a batch failed.
type Kind uint8

const (
	KindNone Kind = iota
	// KindConfig: the base folder is missing or not a directory.
	KindConfig
	// KindInput: a run folder holds malformed or incomplete metadata.
	KindInput
	// KindOutput: an output file could not be written.
	KindOutput
	// KindInterrupted: the batch was cancelled.
	KindInterrupted
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindConfig:
		return "configuration error"
	case KindInput:
		return "bad input"
	case KindOutput:
		return "output error"
	case KindInterrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Error is returned by Collect and Run for every failure.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err. Errors not produced by this package are
// classified by their cause where possible.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindInterrupted
	case errors.Is(err, ingest.ErrNotADirectory):
		return KindConfig
	}
	return KindInput
}

func newError(kind Kind, path string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		kind = KindInterrupted
	}
	return &Error{Kind: kind, Path: path, Err: err}
}
