package types

// Violation types reported by layout checks
const (
	ViolationPageOverflow  = "page_overflow"
	ViolationOrphanHeading = "orphaned_heading"
	ViolationLineTooWide   = "line_too_wide"
	ViolationTooManyPages  = "too_many_pages"
	SeverityError          = "error"
	SeverityWarning        = "warning"
)

// Violation represents a single layout check failure
type Violation struct {
	Type             string   `json:"type"`
	Severity         string   `json:"severity"`
	Details          string   `json:"details"`
	AffectedSections []string `json:"affected_sections,omitempty"`

	// Where in the composition the violation occurred
	PageNumber *int     `json:"page_number,omitempty"`
	BlockIndex *int     `json:"block_index,omitempty"`
	Width      *float64 `json:"width,omitempty"`
}

// Violations represents a collection of layout check failures
type Violations struct {
	Violations []Violation `json:"violations"`
}

// HasErrors reports whether any violation has error severity.
func (v *Violations) HasErrors() bool {
	if v == nil {
		return false
	}
	for _, violation := range v.Violations {
		if violation.Severity == SeverityError {
			return true
		}
	}
	return false
}
