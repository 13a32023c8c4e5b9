// Package flow turns a resume and a resolved layout into an ordered stream of
// measured content blocks.
package flow

import "fmt"

// DateError reports a date string that could not be parsed. It is never
// fatal: the date renders blank and the error is returned as a warning.
type DateError struct {
	EntryID string
	Field   string
	Value   string
	Cause   error
}

func (e *DateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unparseable date %q in %s of entry %q: %v", e.Value, e.Field, e.EntryID, e.Cause)
	}
	return fmt.Sprintf("unparseable date %q in %s of entry %q", e.Value, e.Field, e.EntryID)
}

func (e *DateError) Unwrap() error {
	return e.Cause
}
