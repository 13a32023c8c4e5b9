package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/rendering"
	"github.com/jonathan/resume-composer/internal/templates"
	"github.com/jonathan/resume-composer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintLayout(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	layout, err := templates.Resolve("modern-professional", templates.WithATSSafe(true))
	require.NoError(t, err)
	p.PrintLayout(layout)
	output := buf.String()

	assert.Contains(t, output, "RESOLVED LAYOUT")
	assert.Contains(t, output, "Modern Professional")
	assert.Contains(t, output, "Letter 612x792pt")
	assert.Contains(t, output, "Sidebar:")
	assert.Contains(t, output, "ATS-safe: yes")
}

func TestPrintPages(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	layout, err := templates.Resolve("classic-executive")
	require.NoError(t, err)
	pages := pagination.Paginate([]flow.Block{
		{Kind: flow.KindNameHeader, Region: templates.RegionFull, Text: "Jane Doe", Height: 40},
		{Kind: flow.KindBodyLine, Lines: []string{"Hello"}, Height: layout.ContentHeight()},
	}, layout.ContentHeight())

	p.PrintPages(layout, pages)
	output := buf.String()

	assert.Contains(t, output, "PAGINATION")
	assert.Contains(t, output, "Total pages: 2")
	assert.Contains(t, output, `name_header "Jane Doe"`)
	assert.Contains(t, output, `body_line "Hello"`)
}

func TestPrintPages_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintPages(templates.Layout{}, nil)
	assert.Empty(t, buf.String())
}

func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	warnings := []error{&templates.NotFoundError{ID: "fancy"}}
	for i := 0; i < 6; i++ {
		warnings = append(warnings, errors.New("bad date"))
	}
	p.PrintWarnings(warnings)
	output := buf.String()

	assert.Contains(t, output, "COMPOSITION WARNINGS")
	assert.Contains(t, output, "Found 7 warnings")
	assert.Contains(t, output, `template not found: "fancy"`)
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintWarnings_None(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintWarnings(nil)
	assert.Empty(t, buf.String())
}

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDocument(&rendering.Document{FileName: "Jane_Doe_Resume.pdf", PageCount: 2, Data: make([]byte, 1234)}, "/tmp/out/Jane_Doe_Resume.pdf")
	output := buf.String()

	assert.Contains(t, output, "EXPORTED DOCUMENT")
	assert.Contains(t, output, "Jane_Doe_Resume.pdf")
	assert.Contains(t, output, "Pages: 2")
	assert.Contains(t, output, "1234 bytes")
	assert.Contains(t, output, "Saved:")
}

func TestPrintViolations_WithViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	page := 2
	violations := &types.Violations{
		Violations: []types.Violation{
			{
				Type:       types.ViolationOrphanHeading,
				Severity:   types.SeverityError,
				Details:    "Skills heading ends page 2",
				PageNumber: &page,
			},
		},
	}

	p.PrintViolations(violations)
	output := buf.String()

	assert.Contains(t, output, "LAYOUT VIOLATIONS")
	assert.Contains(t, output, "orphaned_heading (page 2)")
	assert.Contains(t, output, "Skills heading ends page 2")
}

func TestPrintViolations_NoViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintViolations(&types.Violations{Violations: []types.Violation{}})

	assert.Contains(t, buf.String(), "NO VIOLATIONS FOUND")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 200))
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.Contains(t, output, "...")
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
}
