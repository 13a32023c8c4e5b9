// Package pipeline provides the high-level orchestration for composing and
// exporting resumes.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/metrics"
	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/rendering"
	"github.com/jonathan/resume-composer/internal/templates"
	"github.com/jonathan/resume-composer/internal/types"
	"github.com/jonathan/resume-composer/internal/validation"
)

// Pipeline steps reported through progress events
const (
	StepResolve  = "resolve_template"
	StepFlow     = "flow_content"
	StepPaginate = "paginate"
	StepExport   = "export"
)

// ProgressEvent represents a progress update during composition or export
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for composing a resume
type Options struct {
	// Resolver looks up templates; nil uses the built-in gallery.
	Resolver *templates.Resolver
	// Measurer measures text; nil allocates a fresh PDF measurer.
	Measurer flow.Measurer
	// PageSize overrides the template's page size when set.
	PageSize   templates.PageSize
	ATSSafe    bool
	OnProgress ProgressCallback
}

// Composition is a resume laid out on pages for one template. It is
// immutable once returned and may be exported any number of times.
type Composition struct {
	TemplateID string            `json:"templateId"`
	FullName   string            `json:"fullName"`
	Layout     templates.Layout  `json:"layout"`
	Blocks     []flow.Block      `json:"blocks"`
	Pages      []pagination.Page `json:"pages"`
	Warnings   []error           `json:"-"`
}

// WarningMessages returns the warnings as strings.
func (c *Composition) WarningMessages() []string {
	out := make([]string, 0, len(c.Warnings))
	for _, w := range c.Warnings {
		out = append(out, w.Error())
	}
	return out
}

// Violations runs the layout checks against the composition.
func (c *Composition) Violations(maxPages int, m flow.Measurer) *types.Violations {
	return validation.CheckComposition(c.Layout, c.Pages, &validation.Options{MaxPages: maxPages, Measurer: m})
}

func emitProgress(opts *Options, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// Compose resolves the template, flows the resume into blocks and paginates
// them. It never fails: an unknown template falls back to the default
// layout and problems in the resume become warnings. Compose does not
// modify resume.
func Compose(resume types.Resume, templateID string, opts *Options) *Composition {
	if opts == nil {
		opts = &Options{}
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = templates.Default()
	}
	measurer := opts.Measurer
	if measurer == nil {
		measurer = flow.NewPDFMeasurer()
	}

	var warnings []error
	var layoutOpts []templates.Option
	if opts.PageSize.Width > 0 {
		layoutOpts = append(layoutOpts, templates.WithPageSize(opts.PageSize))
	}
	if opts.ATSSafe {
		layoutOpts = append(layoutOpts, templates.WithATSSafe(true))
	}
	layout, err := resolver.ResolveOrDefault(templateID, layoutOpts...)
	if err != nil {
		warnings = append(warnings, err)
	}
	emitProgress(opts, StepResolve, fmt.Sprintf("Resolved template %s", layout.Template.ID), layout.Template)

	built := flow.Build(resume, layout, measurer)
	warnings = append(warnings, built.Warnings...)
	emitProgress(opts, StepFlow, fmt.Sprintf("Built %d blocks", len(built.Blocks)), nil)

	pages := pagination.Paginate(built.Blocks, layout.ContentHeight())
	emitProgress(opts, StepPaginate, fmt.Sprintf("Laid out %d page(s)", len(pages)), nil)

	metrics.ObserveComposition(layout.Template.ID, len(pages), len(warnings))

	return &Composition{
		TemplateID: layout.Template.ID,
		FullName:   resume.PersonalDetails.FullName,
		Layout:     layout,
		Blocks:     built.Blocks,
		Pages:      pages,
		Warnings:   warnings,
	}
}

// Export serializes a composition into a document. On failure or
// cancellation it returns an *rendering.ExportError and no document.
func Export(ctx context.Context, c *Composition, exporter rendering.Exporter) (*rendering.Document, error) {
	if c == nil {
		return nil, &rendering.ExportError{Message: "nothing to export"}
	}
	if exporter == nil {
		exporter = rendering.NewPDFExporter()
	}

	data, err := exporter.Export(ctx, c.Layout, c.Pages)
	if err != nil {
		if !rendering.IsExportError(err) {
			err = &rendering.ExportError{Message: "exporter failed", Cause: err}
		}
		return nil, err
	}

	count := validation.CountPages(data)
	if count != len(c.Pages) {
		return nil, &rendering.ExportError{Message: fmt.Sprintf("document has %d pages, composition has %d", count, len(c.Pages))}
	}
	return &rendering.Document{
		FileName:    rendering.FileName(c.FullName),
		ContentType: rendering.ContentTypePDF,
		PageCount:   count,
		Data:        data,
	}, nil
}

// IsCanceled reports whether err came from a canceled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
