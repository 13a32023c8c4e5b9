// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/rendering"
	"github.com/jonathan/resume-composer/internal/templates"
	"github.com/jonathan/resume-composer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintLayout outputs the resolved template and its page geometry.
func (p *Printer) PrintLayout(layout templates.Layout) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template: %s (%s)\n", layout.Template.Name, layout.Template.ID))
	sb.WriteString(fmt.Sprintf("Page:     %s %.0fx%.0fpt\n", layout.Page.Name, layout.Page.Width, layout.Page.Height))
	sb.WriteString(fmt.Sprintf("Content:  %.1fx%.1fpt\n", layout.ContentWidth(), layout.ContentHeight()))
	sb.WriteString(fmt.Sprintf("Main:     x=%.1f w=%.1f\n", layout.Main.X, layout.Main.Width))
	if layout.HasSidebar() {
		sb.WriteString(fmt.Sprintf("Sidebar:  x=%.1f w=%.1f\n", layout.Sidebar.X, layout.Sidebar.Width))
	}
	sections := make([]string, 0, len(layout.Sections))
	for _, s := range layout.Sections {
		sections = append(sections, string(s))
	}
	sb.WriteString(fmt.Sprintf("Sections: %s", strings.Join(sections, ", ")))
	if layout.ATSSafe {
		sb.WriteString("\nATS-safe: yes")
	}

	p.printBox("RESOLVED LAYOUT", sb.String())
}

// PrintPages outputs how full each page is and what starts it.
func (p *Printer) PrintPages(layout templates.Layout, pages []pagination.Page) {
	if len(pages) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total pages: %d\n\n", len(pages)))
	for i, page := range pages {
		sb.WriteString(fmt.Sprintf("Page %d: %d blocks\n", page.Number, len(page.Placements)))
		for _, region := range layout.Regions() {
			used := page.Bottom(region)
			sb.WriteString(fmt.Sprintf("  %-8s %6.1f / %.1fpt\n", region.String()+":", used, layout.ContentHeight()))
		}
		if len(page.Placements) > 0 {
			first := page.Placements[0]
			sb.WriteString(fmt.Sprintf("  starts:  %s %s", first.Block.Kind, describe(first.Block)))
		}
		if i < len(pages)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("PAGINATION", sb.String())
}

func describe(b flow.Block) string {
	switch {
	case b.Text != "":
		return fmt.Sprintf("%q", b.Text)
	case len(b.Rows) > 0:
		return fmt.Sprintf("%q", b.Rows[0].Left)
	case len(b.Lines) > 0:
		return fmt.Sprintf("%q", b.Lines[0])
	default:
		return ""
	}
}

// PrintWarnings outputs non-fatal composition warnings.
func (p *Printer) PrintWarnings(warnings []error) {
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warnings:\n\n", len(warnings)))
	count := min(len(warnings), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", warnings[i]))
	}
	if len(warnings) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(warnings)-maxItemsToShow))
	}

	p.printBox("COMPOSITION WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDocument outputs a summary of an exported document.
func (p *Printer) PrintDocument(doc *rendering.Document, path string) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:  %s\n", doc.FileName))
	sb.WriteString(fmt.Sprintf("Pages: %d\n", doc.PageCount))
	sb.WriteString(fmt.Sprintf("Size:  %d bytes", len(doc.Data)))
	if path != "" {
		sb.WriteString(fmt.Sprintf("\nSaved: %s", path))
	}

	p.printBox("EXPORTED DOCUMENT", sb.String())
}

// PrintViolations outputs any layout violations found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *types.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations.Violations)))

	for i, v := range violations.Violations {
		marker := "⚠"
		if v.Severity == types.SeverityError {
			marker = "✗"
		}
		where := ""
		if v.PageNumber != nil {
			where = fmt.Sprintf(" (page %d)", *v.PageNumber)
		}
		sb.WriteString(fmt.Sprintf("%s %s%s\n", marker, v.Type, where))
		sb.WriteString(fmt.Sprintf("  %s\n", truncate(v.Details, 45)))
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("LAYOUT VIOLATIONS", sb.String())
}
