package validation

import (
	"math"

	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/templates"
)

// OverflowAnalysis describes how far a composition runs past a page limit
type OverflowAnalysis struct {
	PageCount    int     `json:"pageCount"`
	MaxPages     int     `json:"maxPages"`
	ExcessHeight float64 `json:"excessHeight"` // points of content on pages past the limit
	ExcessPages  float64 `json:"excessPages"`  // ExcessHeight as a fraction of a page
	ExcessLines  int     `json:"excessLines"`  // body lines past the limit
	CanTighten   bool    `json:"canTighten"`   // under half a page over
	MustTrim     bool    `json:"mustTrim"`     // half a page or more over
}

// AnalyzePageOverflow measures the content that falls on pages beyond
// maxPages. A non-positive maxPages disables the limit.
func AnalyzePageOverflow(pages []pagination.Page, layout templates.Layout, maxPages int) *OverflowAnalysis {
	analysis := &OverflowAnalysis{PageCount: len(pages), MaxPages: maxPages}
	if maxPages <= 0 || len(pages) <= maxPages {
		return analysis
	}

	for _, page := range pages[maxPages:] {
		used := 0.0
		for _, region := range layout.Regions() {
			used = math.Max(used, page.Bottom(region))
		}
		analysis.ExcessHeight += used
		for _, pl := range page.Placements {
			if pl.Block.Kind == flow.KindBodyLine {
				analysis.ExcessLines += len(pl.Block.Lines)
			}
		}
	}

	if h := layout.ContentHeight(); h > 0 {
		analysis.ExcessPages = analysis.ExcessHeight / h
	}
	analysis.MustTrim = analysis.ExcessPages >= 0.5
	analysis.CanTighten = !analysis.MustTrim
	return analysis
}

// LinesToDropCount returns roughly how many body lines must go to reach the
// limit. Returns 0 when there is no overflow.
func (a *OverflowAnalysis) LinesToDropCount() int {
	if a.PageCount <= a.MaxPages || a.MaxPages <= 0 {
		return 0
	}
	return a.ExcessLines
}
