package templates

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-composer/internal/types"
)

// PageSize is a physical page size in points (1in = 72pt)
type PageSize struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Supported page sizes
var (
	Letter = PageSize{Name: "Letter", Width: 612, Height: 792}   // 8.5" x 11"
	A4     = PageSize{Name: "A4", Width: 595.28, Height: 841.89} // 210mm x 297mm
)

// PageSizeByName looks up a page size case-insensitively.
func PageSizeByName(name string) (PageSize, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "letter":
		return Letter, nil
	case "a4":
		return A4, nil
	default:
		return PageSize{}, &PageSizeError{Name: name}
	}
}

// Margins are page margins in points
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Region identifies which column a block flows in
type Region int

// Regions
const (
	RegionMain Region = iota
	RegionSidebar
	// RegionFull spans every column
	RegionFull
)

func (r Region) String() string {
	switch r {
	case RegionMain:
		return "main"
	case RegionSidebar:
		return "sidebar"
	case RegionFull:
		return "full"
	default:
		return "unknown"
	}
}

// MarshalText encodes the region by name.
func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a region name written by MarshalText.
func (r *Region) UnmarshalText(text []byte) error {
	switch string(text) {
	case "main":
		*r = RegionMain
	case "sidebar":
		*r = RegionSidebar
	case "full":
		*r = RegionFull
	default:
		return fmt.Errorf("unknown region %q", text)
	}
	return nil
}

// Section is a top-level resume section
type Section string

// Sections
const (
	SectionSummary    Section = "summary"
	SectionExperience Section = "experience"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
)

// Title returns the heading printed for the section.
func (s Section) Title() string {
	switch s {
	case SectionSummary:
		return "Professional Summary"
	case SectionExperience:
		return "Work Experience"
	case SectionEducation:
		return "Education"
	case SectionSkills:
		return "Skills"
	default:
		return string(s)
	}
}

// Column is a horizontal band of the page, X measured from the page's left edge
type Column struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// RGB is an 8-bit color
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Fonts holds the typographic rules of a layout; sizes are in points
type Fonts struct {
	Family     string  `json:"family"`
	Name       float64 `json:"name"`
	Heading    float64 `json:"heading"`
	EntryTitle float64 `json:"entryTitle"`
	Body       float64 `json:"body"`
	Small      float64 `json:"small"`
	LineHeight float64 `json:"lineHeight"`
}

// Palette holds the colors of a layout
type Palette struct {
	Text        RGB `json:"text"`
	Muted       RGB `json:"muted"`
	Accent      RGB `json:"accent"`
	Rule        RGB `json:"rule"`
	ChipFill    RGB `json:"chipFill"`
	SidebarFill RGB `json:"sidebarFill"`
}

// Layout is a resolved, read-only description of page geometry, columns,
// typography and section order for one template.
type Layout struct {
	Template        types.Template `json:"template"`
	Page            PageSize       `json:"page"`
	Margins         Margins        `json:"margins"`
	Main            Column         `json:"main"`
	Sidebar         Column         `json:"sidebar"`
	Fonts           Fonts          `json:"fonts"`
	Colors          Palette        `json:"colors"`
	Sections        []Section      `json:"sections"`
	SidebarSections []Section      `json:"sidebarSections,omitempty"`
	ATSSafe         bool           `json:"atsSafe"`
	ShowSkillLevels bool           `json:"showSkillLevels"`
}

// ContentHeight is the usable height of a page.
func (l Layout) ContentHeight() float64 {
	return l.Page.Height - l.Margins.Top - l.Margins.Bottom
}

// ContentWidth is the usable width of a page.
func (l Layout) ContentWidth() float64 {
	return l.Page.Width - l.Margins.Left - l.Margins.Right
}

// HasSidebar reports whether the layout has a second column.
func (l Layout) HasSidebar() bool {
	return l.Sidebar.Width > 0
}

// Column returns the horizontal band for a region.
func (l Layout) Column(r Region) Column {
	switch r {
	case RegionSidebar:
		if l.HasSidebar() {
			return l.Sidebar
		}
		return l.Main
	case RegionFull:
		return Column{X: l.Margins.Left, Width: l.ContentWidth()}
	default:
		return l.Main
	}
}

// RegionFor returns the region a section flows in.
func (l Layout) RegionFor(s Section) Region {
	if !l.HasSidebar() {
		return RegionMain
	}
	for _, side := range l.SidebarSections {
		if side == s {
			return RegionSidebar
		}
	}
	return RegionMain
}

// Regions lists the column regions of the layout.
func (l Layout) Regions() []Region {
	if l.HasSidebar() {
		return []Region{RegionMain, RegionSidebar}
	}
	return []Region{RegionMain}
}

// clone returns a copy that shares no slices with l.
func (l Layout) clone() Layout {
	out := l
	out.Sections = append([]Section(nil), l.Sections...)
	out.SidebarSections = append([]Section(nil), l.SidebarSections...)
	out.Template.Features = append([]string(nil), l.Template.Features...)
	return out
}

const gutter = 18

// arrange computes column bands from the layout kind, page and margins.
func (l *Layout) arrange() {
	left := l.Margins.Left
	width := l.ContentWidth()

	switch l.Template.Layout {
	case types.LayoutTwoColumn:
		mainWidth := width * 0.64
		l.Main = Column{X: left, Width: mainWidth}
		l.Sidebar = Column{X: left + mainWidth + gutter, Width: width - mainWidth - gutter}
	case types.LayoutHeaderSidebar:
		sideWidth := width*0.32 - gutter
		l.Sidebar = Column{X: left, Width: sideWidth}
		l.Main = Column{X: left + sideWidth + gutter, Width: width - sideWidth - gutter}
	default:
		l.Main = Column{X: left, Width: width}
		l.Sidebar = Column{}
	}
}
