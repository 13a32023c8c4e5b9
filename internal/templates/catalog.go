package templates

import "github.com/jonathan/resume-composer/internal/types"

// DefaultTemplateID is used when a requested template cannot be resolved.
const DefaultTemplateID = "classic-executive"

// builtin is the template gallery shipped with the composer.
var builtin = []types.Template{
	{
		ID:           "modern-professional",
		Name:         "Modern Professional",
		Category:     "modern",
		Description:  "Clean, contemporary design perfect for tech roles and modern industries",
		Features:     []string{"ATS-Friendly", "Modern Design", "2-Column Layout", "Skills Highlight"},
		Popular:      true,
		ATSOptimized: true,
		Layout:       types.LayoutTwoColumn,
		ColorScheme:  types.SchemeModern,
	},
	{
		ID:           "classic-executive",
		Name:         "Classic Executive",
		Category:     "classic",
		Description:  "Traditional format ideal for senior positions and conservative industries",
		Features:     []string{"Professional", "Executive Level", "Traditional", "Single Column"},
		ATSOptimized: true,
		Layout:       types.LayoutSingleColumn,
		ColorScheme:  types.SchemeProfessional,
	},
	{
		ID:              "tech-specialist",
		Name:            "Tech Specialist",
		Category:        "modern",
		Description:     "Perfect for software developers and IT professionals",
		Features:        []string{"Tech-Focused", "Skills Highlight", "Modern", "Project Showcase"},
		Popular:         true,
		ATSOptimized:    true,
		ShowSkillLevels: true,
		Layout:          types.LayoutTwoColumn,
		ColorScheme:     types.SchemeModern,
	},
	{
		ID:           "minimal-clean",
		Name:         "Minimal Clean",
		Category:     "minimal",
		Description:  "Simple and elegant design for any industry",
		Features:     []string{"Minimal", "Clean Layout", "Universal", "Easy to Read"},
		ATSOptimized: true,
		Layout:       types.LayoutSingleColumn,
		ColorScheme:  types.SchemeMinimal,
	},
	{
		ID:           "creative-designer",
		Name:         "Creative Designer",
		Category:     "creative",
		Description:  "Stylish template for creative professionals while staying ATS-friendly",
		Features:     []string{"Creative", "Portfolio Ready", "Visual Impact", "ATS-Safe"},
		Popular:      true,
		ATSOptimized: true,
		Layout:       types.LayoutHeaderSidebar,
		ColorScheme:  types.SchemeCreative,
	},
	{
		ID:           "academic-scholar",
		Name:         "Academic Scholar",
		Category:     "academic",
		Description:  "Designed for academic and research positions",
		Features:     []string{"Academic", "Research-Focused", "Publications", "Traditional"},
		ATSOptimized: true,
		Layout:       types.LayoutSingleColumn,
		ColorScheme:  types.SchemeProfessional,
	},
}

// Categories lists gallery categories in display order; "all" matches every template.
var Categories = []string{"all", "modern", "classic", "creative", "minimal", "academic"}

var palettes = map[types.ColorScheme]Palette{
	types.SchemeMinimal: {
		Text:        RGB{17, 24, 39},
		Muted:       RGB{107, 114, 128},
		Accent:      RGB{17, 24, 39},
		Rule:        RGB{229, 231, 235},
		ChipFill:    RGB{243, 244, 246},
		SidebarFill: RGB{255, 255, 255},
	},
	types.SchemeProfessional: {
		Text:        RGB{0, 0, 0},
		Muted:       RGB{102, 102, 102},
		Accent:      RGB{30, 58, 138},
		Rule:        RGB{221, 221, 221},
		ChipFill:    RGB{240, 240, 240},
		SidebarFill: RGB{255, 255, 255},
	},
	types.SchemeModern: {
		Text:        RGB{31, 41, 55},
		Muted:       RGB{75, 85, 99},
		Accent:      RGB{37, 99, 235},
		Rule:        RGB{191, 219, 254},
		ChipFill:    RGB{219, 234, 254},
		SidebarFill: RGB{239, 246, 255},
	},
	types.SchemeCreative: {
		Text:        RGB{31, 41, 55},
		Muted:       RGB{107, 114, 128},
		Accent:      RGB{124, 58, 237},
		Rule:        RGB{221, 214, 254},
		ChipFill:    RGB{237, 233, 254},
		SidebarFill: RGB{245, 243, 255},
	},
}

var defaultSections = []Section{SectionSummary, SectionExperience, SectionEducation, SectionSkills}

// layoutFor builds the layout for a template on the given page size.
func layoutFor(t types.Template, page PageSize) Layout {
	l := Layout{
		Template: t,
		Page:     page,
		Margins:  Margins{Top: 36, Right: 36, Bottom: 36, Left: 36},
		Fonts: Fonts{
			Family:     "Helvetica",
			Name:       20,
			Heading:    12,
			EntryTitle: 10.5,
			Body:       9.5,
			Small:      8.5,
			LineHeight: 1.4,
		},
		Colors:          palettes[t.ColorScheme],
		Sections:        append([]Section(nil), defaultSections...),
		ShowSkillLevels: t.ShowSkillLevels,
	}
	if _, ok := palettes[t.ColorScheme]; !ok {
		l.Colors = palettes[types.SchemeProfessional]
	}

	switch t.Layout {
	case types.LayoutTwoColumn:
		l.SidebarSections = []Section{SectionSkills}
	case types.LayoutHeaderSidebar:
		l.SidebarSections = []Section{SectionSkills, SectionEducation}
	}

	switch t.ID {
	case "classic-executive":
		l.Fonts.Family = "Times"
		l.Fonts.Body = 10
	case "academic-scholar":
		l.Fonts.Family = "Times"
		l.Sections = []Section{SectionSummary, SectionEducation, SectionExperience, SectionSkills}
	case "minimal-clean":
		l.Margins = Margins{Top: 48, Right: 48, Bottom: 48, Left: 48}
	}

	l.sidebarFirst()
	l.arrange()
	return l
}

// sidebarFirst moves sidebar sections to the front of the reading order so
// the sidebar fills beside the first page of the main column.
func (l *Layout) sidebarFirst() {
	if len(l.SidebarSections) == 0 {
		return
	}
	ordered := make([]Section, 0, len(l.Sections))
	for _, s := range l.Sections {
		if l.isSidebar(s) {
			ordered = append(ordered, s)
		}
	}
	for _, s := range l.Sections {
		if !l.isSidebar(s) {
			ordered = append(ordered, s)
		}
	}
	l.Sections = ordered
}

func (l *Layout) isSidebar(s Section) bool {
	for _, side := range l.SidebarSections {
		if side == s {
			return true
		}
	}
	return false
}
