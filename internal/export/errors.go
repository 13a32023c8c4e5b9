// Package export runs document exports and writes them to disk.
package export

import (
	"errors"
	"fmt"
)

// ErrSuperseded is the cancellation cause of an export replaced by a newer
// export for the same key.
var ErrSuperseded = errors.New("superseded by a newer export")

// SaveError represents a failure writing a document to disk
type SaveError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SaveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("save error: %s (%s): %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("save error: %s (%s)", e.Message, e.Path)
}

func (e *SaveError) Unwrap() error {
	return e.Cause
}
