package types

// LayoutKind is the column structure of a template
type LayoutKind string

// Layout kinds
const (
	LayoutSingleColumn  LayoutKind = "single-column"
	LayoutTwoColumn     LayoutKind = "two-column"
	LayoutHeaderSidebar LayoutKind = "header-sidebar"
)

// ColorScheme names a template palette
type ColorScheme string

// Color schemes
const (
	SchemeMinimal      ColorScheme = "minimal"
	SchemeProfessional ColorScheme = "professional"
	SchemeModern       ColorScheme = "modern"
	SchemeCreative     ColorScheme = "creative"
)

// Template describes one entry of the template gallery. Templates are
// read-only configuration.
type Template struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Category        string      `json:"category"`
	Description     string      `json:"description"`
	Features        []string    `json:"features"`
	Popular         bool        `json:"popular"`
	ATSOptimized    bool        `json:"atsOptimized"`
	ShowSkillLevels bool        `json:"showSkillLevels,omitempty"`
	Layout          LayoutKind  `json:"layout"`
	ColorScheme     ColorScheme `json:"colorScheme"`
}
