package rendering

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/templates"
)

// Canvas is an off-screen drawing surface that serializes to a document.
// Coordinates are in points from the top-left corner of the page; Text
// draws with y on the baseline. A Canvas also measures text, so the widths
// it draws with are the widths the flow engine laid out with.
type Canvas interface {
	flow.Measurer

	AddPage()
	SetFont(font flow.Font)
	SetTextColor(c templates.RGB)
	SetFillColor(c templates.RGB)
	SetDrawColor(c templates.RGB)
	Text(x, y float64, s string)
	FillRect(x, y, w, h float64)
	Line(x1, y1, x2, y2 float64)
	Image(name string, png []byte, x, y, w, h float64)
	Output(w io.Writer) error
	Err() error
}

// CanvasFactory allocates a canvas for pages of the given size.
type CanvasFactory func(size templates.PageSize) (Canvas, error)

// DocumentDate is stamped as the creation and modification date of every
// document so identical inputs serialize to identical bytes.
var DocumentDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// pdfCanvas draws with fpdf core fonts
type pdfCanvas struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	font      flow.Font
}

// NewPDFCanvas allocates an fpdf canvas in points for the page size.
func NewPDFCanvas(size templates.PageSize) (Canvas, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("invalid page size %.2fx%.2f", size.Width, size.Height)
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreationDate(DocumentDate)
	pdf.SetModificationDate(DocumentDate)
	pdf.SetCatalogSort(true)
	pdf.SetCreator("resume-composer", false)
	if pdf.Err() {
		return nil, pdf.Error()
	}
	return &pdfCanvas{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}, nil
}

func (c *pdfCanvas) AddPage() {
	c.pdf.AddPage()
	// fpdf forgets the font between pages
	if c.font.Family != "" {
		c.pdf.SetFont(c.font.Family, c.font.Style, c.font.Size)
	}
}

func (c *pdfCanvas) SetFont(font flow.Font) {
	c.font = font
	c.pdf.SetFont(font.Family, font.Style, font.Size)
}

func (c *pdfCanvas) StringWidth(font flow.Font, s string) float64 {
	if font != c.font {
		c.SetFont(font)
	}
	return c.pdf.GetStringWidth(c.translate(s))
}

func (c *pdfCanvas) SetTextColor(rgb templates.RGB) {
	c.pdf.SetTextColor(rgb.R, rgb.G, rgb.B)
}

func (c *pdfCanvas) SetFillColor(rgb templates.RGB) {
	c.pdf.SetFillColor(rgb.R, rgb.G, rgb.B)
}

func (c *pdfCanvas) SetDrawColor(rgb templates.RGB) {
	c.pdf.SetDrawColor(rgb.R, rgb.G, rgb.B)
}

func (c *pdfCanvas) Text(x, y float64, s string) {
	if s == "" {
		return
	}
	c.pdf.Text(x, y, c.translate(s))
}

func (c *pdfCanvas) FillRect(x, y, w, h float64) {
	c.pdf.Rect(x, y, w, h, "F")
}

func (c *pdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.SetLineWidth(0.75)
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *pdfCanvas) Image(name string, png []byte, x, y, w, h float64) {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	c.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

func (c *pdfCanvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}

func (c *pdfCanvas) Err() error {
	return c.pdf.Error()
}
