// Package validation checks composed pages and exported documents against
// layout constraints.
package validation

import (
	"errors"
	"fmt"
)

// ErrNoPages is returned for documents without a single page object.
var ErrNoPages = errors.New("document contains no pages")

// DocumentError reports a problem inspecting an exported document.
type DocumentError struct {
	Path string
	Op   string
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}
