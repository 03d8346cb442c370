package ingest

import (
	"errors"
	"fmt"
)

var (
	ErrNotADirectory  = errors.New("not a directory")
	ErrMissingElement = errors.New("missing element")
	ErrBadNumber      = errors.New("invalid number")
	ErrTooLarge       = errors.New("file exceeds size limit")
)

// MetadataError reports a run folder whose metadata could not be extracted.
type MetadataError struct {
	Folder  string
	File    string
	Element string
	Err     error
}

func (e *MetadataError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("%s/%s: %s: %v", e.Folder, e.File, e.Element, e.Err)
	}
	return fmt.Sprintf("%s/%s: %v", e.Folder, e.File, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }
