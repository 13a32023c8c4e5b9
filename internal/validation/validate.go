package validation

import (
	"fmt"
	"sort"

	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/templates"
	"github.com/jonathan/resume-composer/internal/types"
)

// Options provides optional parameters for composition checks
type Options struct {
	// MaxPages limits the page count; 0 means no limit.
	MaxPages int
	// Measurer re-measures lines; nil skips the line width check.
	Measurer flow.Measurer
}

// CheckComposition validates paginated blocks against the layout: page
// bounds, orphaned headings, line widths and the page limit.
func CheckComposition(layout templates.Layout, pages []pagination.Page, opts *Options) *types.Violations {
	if opts == nil {
		opts = &Options{}
	}

	var all []types.Violation
	all = append(all, CheckPageBounds(pages, layout)...)
	all = append(all, CheckOrphans(pages)...)
	if opts.Measurer != nil {
		all = append(all, CheckLineWidths(pages, layout, opts.Measurer)...)
	}

	if opts.MaxPages > 0 && len(pages) > opts.MaxPages {
		analysis := AnalyzePageOverflow(pages, layout, opts.MaxPages)
		all = append(all, types.Violation{
			Type:     types.ViolationTooManyPages,
			Severity: types.SeverityError,
			Details: fmt.Sprintf("Resume has %d pages, maximum allowed is %d (%.2f pages over, about %d body lines)",
				len(pages), opts.MaxPages, analysis.ExcessPages, analysis.LinesToDropCount()),
		})
	}

	sortViolations(all)
	return &types.Violations{Violations: all}
}

// ValidateDocument checks an exported PDF against the page limit.
func ValidateDocument(pdf []byte, maxPages int) (*types.Violations, error) {
	count := CountPages(pdf)
	if count == 0 {
		return nil, &DocumentError{Op: "validate document", Err: ErrNoPages}
	}
	var violations []types.Violation
	if maxPages > 0 && count > maxPages {
		violations = append(violations, types.Violation{
			Type:     types.ViolationTooManyPages,
			Severity: types.SeverityError,
			Details:  fmt.Sprintf("Document has %d pages, maximum allowed is %d", count, maxPages),
		})
	}
	return &types.Violations{Violations: violations}, nil
}

// sortViolations orders violations by page then block; violations without
// a position keep their relative order at the end.
func sortViolations(v []types.Violation) {
	key := func(p *int) int {
		if p == nil {
			return int(^uint(0) >> 1)
		}
		return *p
	}
	sort.SliceStable(v, func(i, j int) bool {
		if pi, pj := key(v[i].PageNumber), key(v[j].PageNumber); pi != pj {
			return pi < pj
		}
		return key(v[i].BlockIndex) < key(v[j].BlockIndex)
	})
}
