package flow

import (
	"fmt"

	"github.com/jonathan/resume-composer/internal/templates"
)

// Kind tags a Block. The set is closed: renderers switch over every value.
type Kind int

// Block kinds
const (
	KindNameHeader Kind = iota + 1
	KindSectionHeading
	KindEntryHeader
	KindBodyLine
	KindSkillGroupHeading
	KindSkillChipRow
)

// Kinds lists every block kind.
var Kinds = []Kind{
	KindNameHeader,
	KindSectionHeading,
	KindEntryHeader,
	KindBodyLine,
	KindSkillGroupHeading,
	KindSkillChipRow,
}

func (k Kind) String() string {
	switch k {
	case KindNameHeader:
		return "name_header"
	case KindSectionHeading:
		return "section_heading"
	case KindEntryHeader:
		return "entry_header"
	case KindBodyLine:
		return "body_line"
	case KindSkillGroupHeading:
		return "skill_group_heading"
	case KindSkillChipRow:
		return "skill_chip_row"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindNameHeader && k <= KindSkillChipRow
}

// IsHeading reports whether the kind introduces content that follows it.
func (k Kind) IsHeading() bool {
	return k == KindSectionHeading || k == KindEntryHeader || k == KindSkillGroupHeading
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid block kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name written by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for _, kind := range Kinds {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown block kind %q", text)
}

// RowStyle selects the font of an entry header row
type RowStyle int

// Row styles
const (
	RowTitle RowStyle = iota
	RowSubtitle
	RowDetail
)

// Row is one physical line of an entry header: left text plus optional
// right-aligned text.
type Row struct {
	Left  string   `json:"left,omitempty"`
	Right string   `json:"right,omitempty"`
	Style RowStyle `json:"style"`
}

// Block is one measured, atomic unit of content
type Block struct {
	Kind    Kind              `json:"kind"`
	Region  templates.Region  `json:"region"`
	Section templates.Section `json:"section,omitempty"`
	EntryID string            `json:"entryId,omitempty"`

	// Text is the name, heading or skill category.
	Text string `json:"text,omitempty"`
	// Contacts is the contact line of the name header.
	Contacts []string `json:"contacts,omitempty"`
	// Rows are the lines of an entry header.
	Rows []Row `json:"rows,omitempty"`
	// Lines are the wrapped physical lines of a body line, or of a skill
	// list rendered as plain text.
	Lines []string `json:"lines,omitempty"`
	// ChipRows are the skill chips wrapped into physical rows.
	ChipRows [][]string `json:"chipRows,omitempty"`

	Height       float64 `json:"height"`
	KeepWithNext bool    `json:"keepWithNext,omitempty"`
}
