package rendering

import (
	"bytes"
	"context"

	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/templates"
)

// Exporter serializes pages into a single PDF. Implementations return either
// the complete document or an *ExportError, never partial output.
type Exporter interface {
	Export(ctx context.Context, layout templates.Layout, pages []pagination.Page) ([]byte, error)
}

// PDFExporter draws pages as vector PDF
type PDFExporter struct {
	// NewCanvas allocates the drawing surface. Defaults to NewPDFCanvas.
	NewCanvas CanvasFactory
}

// NewPDFExporter creates a vector exporter backed by fpdf.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{NewCanvas: NewPDFCanvas}
}

// Export draws every page onto one canvas and serializes it in memory. The
// context is checked before each page and once more after serialization;
// a canceled export returns no bytes.
func (e *PDFExporter) Export(ctx context.Context, layout templates.Layout, pages []pagination.Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, exportFailed("canceled", err)
	}
	if len(pages) == 0 {
		return nil, exportFailed("no pages to export", nil)
	}

	newCanvas := e.NewCanvas
	if newCanvas == nil {
		newCanvas = NewPDFCanvas
	}
	canvas, err := newCanvas(layout.Page)
	if err != nil {
		return nil, exportFailed("failed to allocate canvas", err)
	}

	if err := drawPages(ctx, canvas, layout, pages); err != nil {
		return nil, exportFailed("failed to render pages", err)
	}

	var buf bytes.Buffer
	if err := canvas.Output(&buf); err != nil {
		return nil, exportFailed("failed to serialize document", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, exportFailed("canceled", err)
	}
	return buf.Bytes(), nil
}
