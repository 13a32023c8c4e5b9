package flow

import "github.com/jonathan/resume-composer/internal/templates"

// Spacing shared by the flow engine and the renderers, in points.
const (
	NameSpaceAfter     = 10
	HeadingSpaceBefore = 10
	HeadingSpaceAfter  = 4
	EntrySpaceBefore   = 6
	GroupSpaceBefore   = 4
	ChipPaddingX       = 5
	ChipPaddingY       = 2
	ChipGap            = 4
	ChipRowSpaceAfter  = 2
	// RowGap is the minimum gap between the left and right text of a row.
	RowGap = 12
)

// Faces maps block parts to fonts for one layout.
type Faces struct {
	fonts templates.Fonts
}

// NewFaces returns the faces of a layout's typography.
func NewFaces(fonts templates.Fonts) Faces {
	return Faces{fonts: fonts}
}

func (f Faces) font(style string, size float64) Font {
	return Font{Family: f.fonts.Family, Style: style, Size: size}
}

// Name is the face of the name header.
func (f Faces) Name() Font { return f.font("B", f.fonts.Name) }

// Contact is the face of the contact line.
func (f Faces) Contact() Font { return f.font("", f.fonts.Small) }

// Heading is the face of section headings.
func (f Faces) Heading() Font { return f.font("B", f.fonts.Heading) }

// Body is the face of body lines and plain-text skill lists.
func (f Faces) Body() Font { return f.font("", f.fonts.Body) }

// Group is the face of skill group headings.
func (f Faces) Group() Font { return f.font("B", f.fonts.Body) }

// Chip is the face of skill chip labels.
func (f Faces) Chip() Font { return f.font("", f.fonts.Small) }

// Right is the face of right-aligned entry header text.
func (f Faces) Right() Font { return f.font("I", f.fonts.Small) }

// Row returns the left-hand face of an entry header row.
func (f Faces) Row(style RowStyle) Font {
	switch style {
	case RowTitle:
		return f.font("B", f.fonts.EntryTitle)
	case RowSubtitle:
		return f.font("", f.fonts.Body)
	default:
		return f.font("", f.fonts.Small)
	}
}

// LineHeight is the leading for a font.
func (f Faces) LineHeight(font Font) float64 {
	return font.Size * f.fonts.LineHeight
}

// ChipHeight is the height of one chip.
func (f Faces) ChipHeight() float64 {
	return f.LineHeight(f.Chip()) + 2*ChipPaddingY
}

// ChipWidth is the width of a chip for label, clamped to maxWidth.
func (f Faces) ChipWidth(m Measurer, label string, maxWidth float64) float64 {
	w := m.StringWidth(f.Chip(), label) + 2*ChipPaddingX
	if w > maxWidth {
		return maxWidth
	}
	return w
}
