package flow

import (
	"strings"

	"github.com/jonathan/resume-composer/internal/templates"
	"github.com/jonathan/resume-composer/internal/types"
)

// ContactSeparator joins contact items on the name header.
const ContactSeparator = " | "

// Result is the output of Build.
type Result struct {
	Blocks []Block `json:"blocks"`
	// Warnings are non-fatal problems found in the resume, such as
	// unparseable dates. They never stop composition.
	Warnings []error `json:"-"`
}

// builder accumulates blocks for one resume and layout.
type builder struct {
	layout   templates.Layout
	measurer Measurer
	faces    Faces
	result   Result
}

// Build flattens a resume into measured blocks in reading order. The name
// header always comes first; sections follow in the layout's order, and a
// section without content is left out entirely. Build is pure: the same
// inputs always produce the same blocks.
func Build(resume types.Resume, layout templates.Layout, m Measurer) Result {
	b := &builder{
		layout:   layout,
		measurer: m,
		faces:    NewFaces(layout.Fonts),
	}

	b.nameHeader(resume.PersonalDetails)
	for _, section := range layout.Sections {
		switch section {
		case templates.SectionSummary:
			b.summary(resume.PersonalDetails.Summary)
		case templates.SectionExperience:
			b.experience(resume.WorkExperience)
		case templates.SectionEducation:
			b.education(resume.Education)
		case templates.SectionSkills:
			b.skills(resume.Skills)
		}
	}
	return b.result
}

func (b *builder) width(r templates.Region) float64 {
	return b.layout.Column(r).Width
}

func (b *builder) add(block Block) {
	block.KeepWithNext = block.Kind.IsHeading()
	b.result.Blocks = append(b.result.Blocks, block)
}

func (b *builder) nameHeader(p types.PersonalDetails) {
	contacts := p.ContactItems()
	block := Block{
		Kind:     KindNameHeader,
		Region:   templates.RegionFull,
		Text:     p.DisplayName(),
		Contacts: contacts,
	}
	if len(contacts) > 0 {
		block.Lines = Wrap(b.measurer, b.faces.Contact(), strings.Join(contacts, ContactSeparator), b.width(templates.RegionFull))
	}
	block.Height = b.faces.LineHeight(b.faces.Name()) +
		float64(len(block.Lines))*b.faces.LineHeight(b.faces.Contact()) +
		NameSpaceAfter
	b.add(block)
}

func (b *builder) heading(section templates.Section) templates.Region {
	region := b.layout.RegionFor(section)
	b.add(Block{
		Kind:    KindSectionHeading,
		Region:  region,
		Section: section,
		Text:    section.Title(),
		Height:  HeadingSpaceBefore + b.faces.LineHeight(b.faces.Heading()) + HeadingSpaceAfter,
	})
	return region
}

func (b *builder) summary(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	region := b.heading(templates.SectionSummary)
	b.bodyLines(region, templates.SectionSummary, "", text)
}

func (b *builder) experience(entries []types.WorkExperience) {
	if len(entries) == 0 {
		return
	}
	region := b.heading(templates.SectionExperience)
	for _, e := range entries {
		dates, warnings := DateRange(e.ID, e.StartDate, e.EffectiveEndDate(), e.Current)
		b.result.Warnings = append(b.result.Warnings, warnings...)
		b.entryHeader(region, templates.SectionExperience, e.ID, entryFields{
			title:    e.JobTitle,
			org:      e.Company,
			dates:    dates,
			location: e.Location,
		})
		b.bodyLines(region, templates.SectionExperience, e.ID, e.Description)
	}
}

func (b *builder) education(entries []types.Education) {
	if len(entries) == 0 {
		return
	}
	region := b.heading(templates.SectionEducation)
	for _, e := range entries {
		dates, warnings := DateRange(e.ID, e.StartDate, e.EffectiveEndDate(), e.Current)
		b.result.Warnings = append(b.result.Warnings, warnings...)
		fields := entryFields{
			title:    e.Title(),
			org:      e.Institution,
			dates:    dates,
			location: e.Location,
		}
		if gpa := strings.TrimSpace(e.GPA); gpa != "" {
			fields.detail = "GPA: " + gpa
		}
		b.entryHeader(region, templates.SectionEducation, e.ID, fields)
		b.bodyLines(region, templates.SectionEducation, e.ID, e.Description)
	}
}

func (b *builder) skills(skills []types.Skill) {
	groups := types.GroupSkills(skills)
	if len(groups) == 0 {
		return
	}
	region := b.heading(templates.SectionSkills)
	width := b.width(region)
	for _, g := range groups {
		b.add(Block{
			Kind:    KindSkillGroupHeading,
			Region:  region,
			Section: templates.SectionSkills,
			Text:    g.Category,
			Height:  GroupSpaceBefore + b.faces.LineHeight(b.faces.Group()),
		})

		labels := make([]string, len(g.Skills))
		for i, s := range g.Skills {
			labels[i] = b.chipLabel(s)
		}
		row := Block{
			Kind:    KindSkillChipRow,
			Region:  region,
			Section: templates.SectionSkills,
			Text:    g.Category,
		}
		if b.layout.ATSSafe {
			row.Lines = Wrap(b.measurer, b.faces.Body(), strings.Join(labels, ", "), width)
			row.Height = float64(len(row.Lines))*b.faces.LineHeight(b.faces.Body()) + ChipRowSpaceAfter
		} else {
			row.ChipRows = b.packChips(labels, width)
			n := float64(len(row.ChipRows))
			row.Height = n*b.faces.ChipHeight() + (n-1)*ChipGap + ChipRowSpaceAfter
		}
		b.add(row)
	}
}

func (b *builder) chipLabel(s types.Skill) string {
	name := strings.TrimSpace(s.Name)
	if !b.layout.ShowSkillLevels {
		return name
	}
	if label := s.Level.Label(); label != "" {
		return name + " (" + label + ")"
	}
	return name
}

// packChips places chips left to right, starting a new row when the next
// chip would cross the column edge.
func (b *builder) packChips(labels []string, width float64) [][]string {
	var rows [][]string
	var current []string
	x := 0.0
	for _, label := range labels {
		w := b.faces.ChipWidth(b.measurer, label, width)
		if len(current) > 0 && x+w > width {
			rows = append(rows, current)
			current = nil
			x = 0
		}
		current = append(current, label)
		x += w + ChipGap
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}
	return rows
}

type entryFields struct {
	title    string
	org      string
	dates    string
	location string
	detail   string
}

func (b *builder) entryHeader(region templates.Region, section templates.Section, id string, f entryFields) {
	width := b.width(region)
	var rows []Row
	rows = b.pairRows(rows, width, strings.TrimSpace(f.title), f.dates, RowTitle)
	rows = b.pairRows(rows, width, strings.TrimSpace(f.org), strings.TrimSpace(f.location), RowSubtitle)
	if f.detail != "" {
		for _, line := range Wrap(b.measurer, b.faces.Row(RowDetail), f.detail, width) {
			rows = append(rows, Row{Left: line, Style: RowDetail})
		}
	}

	height := float64(EntrySpaceBefore)
	for _, r := range rows {
		height += b.faces.LineHeight(b.faces.Row(r.Style))
	}
	b.add(Block{
		Kind:    KindEntryHeader,
		Region:  region,
		Section: section,
		EntryID: id,
		Rows:    rows,
		Height:  height,
	})
}

// pairRows lays out left text with right-aligned text on one row when both
// fit; otherwise the left text wraps and the right text drops to a row of
// its own.
func (b *builder) pairRows(rows []Row, width float64, left, right string, style RowStyle) []Row {
	if left == "" && right == "" {
		return rows
	}
	leftFont := b.faces.Row(style)
	if right != "" && b.measurer.StringWidth(leftFont, left)+RowGap+b.measurer.StringWidth(b.faces.Right(), right) <= width {
		return append(rows, Row{Left: left, Right: right, Style: style})
	}
	for _, line := range Wrap(b.measurer, leftFont, left, width) {
		rows = append(rows, Row{Left: line, Style: style})
	}
	if right != "" {
		rows = append(rows, Row{Right: right, Style: RowDetail})
	}
	return rows
}

// bodyLines emits one BodyLine per line of text. Blank lines inside the text
// become half-height spacer lines.
func (b *builder) bodyLines(region templates.Region, section templates.Section, id, text string) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return
	}
	width := b.width(region)
	lineHeight := b.faces.LineHeight(b.faces.Body())
	for _, line := range strings.Split(text, "\n") {
		block := Block{
			Kind:    KindBodyLine,
			Region:  region,
			Section: section,
			EntryID: id,
		}
		block.Lines = Wrap(b.measurer, b.faces.Body(), line, width)
		if len(block.Lines) == 0 {
			block.Height = lineHeight / 2
		} else {
			block.Height = float64(len(block.Lines)) * lineHeight
		}
		b.add(block)
	}
}
