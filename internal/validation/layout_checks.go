package validation

import (
	"fmt"

	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/templates"
	"github.com/jonathan/resume-composer/internal/types"
)

const tolerance = 1e-6

// CheckPageBounds reports blocks that extend past the bottom of the content
// area. Only a block taller than a whole page should ever do so; it is a
// warning because the content is still all there.
func CheckPageBounds(pages []pagination.Page, layout templates.Layout) []types.Violation {
	height := layout.ContentHeight()
	var violations []types.Violation
	for _, page := range pages {
		for _, pl := range page.Placements {
			if pl.Bottom() <= height+tolerance {
				continue
			}
			severity := types.SeverityError
			if pl.Y == 0 && pl.Block.Height > height {
				severity = types.SeverityWarning
			}
			violations = append(violations, types.Violation{
				Type:             types.ViolationPageOverflow,
				Severity:         severity,
				Details:          fmt.Sprintf("Block %d (%s) ends at %.1fpt, page content height is %.1fpt", pl.Index, pl.Block.Kind, pl.Bottom(), height),
				AffectedSections: sectionOf(pl.Block),
				PageNumber:       intPtr(page.Number),
				BlockIndex:       intPtr(pl.Index),
			})
		}
	}
	return violations
}

// CheckOrphans reports headings left as the last block of a region on a
// page while content that follows them continues on a later page.
func CheckOrphans(pages []pagination.Page) []types.Violation {
	lastIndex := make(map[templates.Region]int)
	for _, page := range pages {
		for _, pl := range page.Placements {
			lastIndex[pl.Block.Region] = pl.Index
		}
	}

	var violations []types.Violation
	for _, page := range pages {
		last := make(map[templates.Region]pagination.Placement)
		for _, pl := range page.Placements {
			last[pl.Block.Region] = pl
		}
		for region, pl := range last {
			if !pl.Block.KeepWithNext || pl.Index == lastIndex[region] {
				continue
			}
			violations = append(violations, types.Violation{
				Type:             types.ViolationOrphanHeading,
				Severity:         types.SeverityError,
				Details:          fmt.Sprintf("%s %q ends page %d without its content", pl.Block.Kind, headingText(pl.Block), page.Number),
				AffectedSections: sectionOf(pl.Block),
				PageNumber:       intPtr(page.Number),
				BlockIndex:       intPtr(pl.Index),
			})
		}
	}
	sortViolations(violations)
	return violations
}

// CheckLineWidths re-measures every physical line and reports lines wider
// than their column.
func CheckLineWidths(pages []pagination.Page, layout templates.Layout, m flow.Measurer) []types.Violation {
	faces := flow.NewFaces(layout.Fonts)
	var violations []types.Violation
	for _, page := range pages {
		for _, pl := range page.Placements {
			b := pl.Block
			width := layout.Column(b.Region).Width
			check := func(font flow.Font, text string) {
				w := m.StringWidth(font, text)
				if w <= width+tolerance {
					return
				}
				violations = append(violations, types.Violation{
					Type:             types.ViolationLineTooWide,
					Severity:         types.SeverityWarning,
					Details:          fmt.Sprintf("Line %q is %.1fpt wide, column is %.1fpt", text, w, width),
					AffectedSections: sectionOf(b),
					PageNumber:       intPtr(page.Number),
					BlockIndex:       intPtr(pl.Index),
					Width:            &w,
				})
			}

			switch b.Kind {
			case flow.KindNameHeader:
				check(faces.Name(), b.Text)
				for _, line := range b.Lines {
					check(faces.Contact(), line)
				}
			case flow.KindBodyLine, flow.KindSkillChipRow:
				for _, line := range b.Lines {
					check(faces.Body(), line)
				}
			case flow.KindEntryHeader:
				for _, row := range b.Rows {
					if row.Left == "" {
						continue
					}
					check(faces.Row(row.Style), row.Left)
				}
			case flow.KindSectionHeading:
				check(faces.Heading(), b.Text)
			case flow.KindSkillGroupHeading:
				check(faces.Group(), b.Text)
			}
		}
	}
	return violations
}

func sectionOf(b flow.Block) []string {
	if b.Section == "" {
		return nil
	}
	return []string{string(b.Section)}
}

func headingText(b flow.Block) string {
	if b.Text != "" {
		return b.Text
	}
	if len(b.Rows) > 0 {
		return b.Rows[0].Left
	}
	return b.EntryID
}

// intPtr returns a pointer to an integer
func intPtr(i int) *int {
	return &i
}
