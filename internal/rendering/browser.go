package rendering

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/templates"
)

// DefaultRasterScale is the device scale used for page screenshots.
const DefaultRasterScale = 2.0

// pxPerPt converts CSS points to CSS pixels.
const pxPerPt = 96.0 / 72.0

// BrowserExporter rasterizes the preview surface in headless Chrome and
// embeds one screenshot per PDF page. It trades text selectability for a
// pixel-exact match with the preview. Requires Chrome or Chromium.
type BrowserExporter struct {
	Preview   *PreviewRenderer
	NewCanvas CanvasFactory
	// ChromePath overrides the browser binary lookup.
	ChromePath string
	Timeout    time.Duration
	Scale      float64
	Verbose    bool
}

// NewBrowserExporter creates a raster exporter with default settings.
func NewBrowserExporter() *BrowserExporter {
	return &BrowserExporter{
		Preview:   NewPreviewRenderer(),
		NewCanvas: NewPDFCanvas,
		Timeout:   60 * time.Second,
		Scale:     DefaultRasterScale,
	}
}

func (e *BrowserExporter) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.ChromePath))
	}
	return opts
}

// Export screenshots each page element and assembles the images into a PDF.
// Canceling ctx stops the browser and returns no bytes.
func (e *BrowserExporter) Export(ctx context.Context, layout templates.Layout, pages []pagination.Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, exportFailed("canceled", err)
	}
	if len(pages) == 0 {
		return nil, exportFailed("no pages to export", nil)
	}

	preview := e.Preview
	if preview == nil {
		preview = NewPreviewRenderer()
	}
	html, err := preview.RenderString(layout, pages)
	if err != nil {
		return nil, exportFailed("failed to render preview surface", err)
	}

	shots, err := e.capture(ctx, layout, pages, html)
	if err != nil {
		return nil, exportFailed("failed to rasterize pages", err)
	}

	newCanvas := e.NewCanvas
	if newCanvas == nil {
		newCanvas = NewPDFCanvas
	}
	canvas, err := newCanvas(layout.Page)
	if err != nil {
		return nil, exportFailed("failed to allocate canvas", err)
	}
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, exportFailed("canceled", err)
		}
		canvas.AddPage()
		canvas.Image(fmt.Sprintf("page-%d", p.Number), shots[i], 0, 0, layout.Page.Width, layout.Page.Height)
		if err := canvas.Err(); err != nil {
			return nil, exportFailed("failed to embed page image", &RenderError{Page: p.Number, Message: "image embedding failed", Cause: err})
		}
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

func (e *BrowserExporter) capture(ctx context.Context, layout templates.Layout, pages []pagination.Page, html string) ([][]byte, error) {
	if e.Verbose {
		log.Printf("[BROWSER] Rasterizing %d page(s) at %.1fx", len(pages), e.scale())
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, e.allocatorOptions()...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	width := int64(math.Ceil(layout.Page.Width * pxPerPt))
	height := int64(math.Ceil(layout.Page.Height * pxPerPt))

	shots := make([][]byte, len(pages))
	actions := []chromedp.Action{
		chromedp.EmulateViewport(width, height, chromedp.EmulateScale(e.scale())),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("#page-1", chromedp.ByQuery),
	}
	for i, p := range pages {
		actions = append(actions, chromedp.Screenshot(fmt.Sprintf("#page-%d", p.Number), &shots[i], chromedp.ByQuery))
	}

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		return nil, fmt.Errorf("browser rendering failed: %w", err)
	}

	if e.Verbose {
		total := 0
		for _, s := range shots {
			total += len(s)
		}
		log.Printf("[BROWSER] Captured %d screenshot(s): %d bytes", len(shots), total)
	}
	return shots, nil
}

func (e *BrowserExporter) scale() float64 {
	if e.Scale <= 0 {
		return DefaultRasterScale
	}
	return e.Scale
}
