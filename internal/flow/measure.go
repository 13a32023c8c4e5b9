package flow

import (
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

// Font selects a face for measuring. Style is "" for regular, "B" for bold,
// "I" for italic.
type Font struct {
	Family string
	Style  string
	Size   float64
}

// Measurer reports rendered text widths in points. Implementations must
// return the same widths the renderer will use when drawing.
type Measurer interface {
	StringWidth(font Font, s string) float64
}

// PDFMeasurer measures text with the PDF core font metrics.
// It is not safe for concurrent use.
type PDFMeasurer struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	current   Font
}

// NewPDFMeasurer creates a measurer backed by a private PDF document.
func NewPDFMeasurer() *PDFMeasurer {
	pdf := fpdf.New("P", "pt", "Letter", "")
	return &PDFMeasurer{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// StringWidth returns the width of s in points.
func (m *PDFMeasurer) StringWidth(font Font, s string) float64 {
	if s == "" {
		return 0
	}
	if font != m.current {
		m.pdf.SetFont(font.Family, font.Style, font.Size)
		m.current = font
	}
	return m.pdf.GetStringWidth(m.translate(s))
}

// Err returns the first error recorded by the underlying document.
func (m *PDFMeasurer) Err() error {
	return m.pdf.Error()
}

// Wrap breaks text into lines no wider than width. Words wider than a line
// are split between characters. Whitespace runs collapse to single spaces.
func Wrap(m Measurer, font Font, text string, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := ""
	for _, word := range words {
		if m.StringWidth(font, word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			pieces := splitWord(m, font, word, width)
			lines = append(lines, pieces[:len(pieces)-1]...)
			line = pieces[len(pieces)-1]
			continue
		}
		if line == "" {
			line = word
			continue
		}
		candidate := line + " " + word
		if m.StringWidth(font, candidate) <= width {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// splitWord cuts a word into pieces that each fit in width. Every piece holds
// at least one character so the loop always advances.
func splitWord(m Measurer, font Font, word string, width float64) []string {
	var pieces []string
	for word != "" {
		if m.StringWidth(font, word) <= width {
			pieces = append(pieces, word)
			break
		}
		_, end := utf8.DecodeRuneInString(word)
		for i := range word {
			if i <= end {
				continue
			}
			if m.StringWidth(font, word[:i]) > width {
				break
			}
			end = i
		}
		pieces = append(pieces, word[:end])
		word = word[end:]
	}
	return pieces
}
