// Package rendering draws paginated resumes as PDF documents and HTML previews.
package rendering

import (
	"errors"
	"fmt"
)

// TemplateError represents an error parsing or executing the preview template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a failure drawing one page
type RenderError struct {
	Page    int
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error on page %d: %s: %v", e.Page, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error on page %d: %s", e.Page, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// ExportError reports that a document could not be produced. No partial
// output exists when it is returned, so the caller may simply try again.
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export failed: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether the export may be retried. Every export failure
// leaves nothing behind, so it always is.
func (e *ExportError) Retryable() bool {
	return true
}

// IsExportError reports whether err is or wraps an *ExportError.
func IsExportError(err error) bool {
	var exportErr *ExportError
	return errors.As(err, &exportErr)
}

func exportFailed(message string, cause error) error {
	var exportErr *ExportError
	if errors.As(cause, &exportErr) {
		return cause
	}
	return &ExportError{Message: message, Cause: cause}
}
