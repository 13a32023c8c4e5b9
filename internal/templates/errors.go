// Package templates resolves template identifiers into concrete page layouts.
package templates

import "fmt"

// NotFoundError is returned when a template identifier is unknown
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template not found: %q", e.ID)
}

// PageSizeError is returned for an unknown page size name
type PageSizeError struct {
	Name string
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("unknown page size: %q", e.Name)
}
