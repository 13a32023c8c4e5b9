// Package server provides the HTTP API for composing, previewing and
// exporting resumes.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-composer/internal/rendering"
	"github.com/jonathan/resume-composer/internal/schemas"
	"github.com/jonathan/resume-composer/internal/templates"
	"github.com/jonathan/resume-composer/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr      *ErrValidation
		schemaErr   *schemas.ValidationError
		ruleErr     *types.ValidationError
		pageSizeErr *templates.PageSizeError
		tooLarge    *http.MaxBytesError
		exportErr   *rendering.ExportError
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &reqErr), errors.As(err, &schemaErr), errors.As(err, &ruleErr), errors.As(err, &pageSizeErr):
		return http.StatusBadRequest
	case errors.As(err, &exportErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
