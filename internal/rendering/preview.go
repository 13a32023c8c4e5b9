package rendering

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/templates"
)

//go:embed preview.html.tmpl
var defaultPreviewTemplate string

// PreviewData is passed to the preview template
type PreviewData struct {
	Title      string
	Stylesheet template.CSS
	Pages      []PageView
}

// PageView is one page of the preview surface
type PageView struct {
	Number int
	Style  template.CSS
	// Sidebar is the style of the sidebar backdrop, empty when there is none.
	Sidebar template.CSS
	Blocks  []BlockView
}

// BlockView is one absolutely positioned block
type BlockView struct {
	Index    int
	Kind     string
	Region   string
	Style    template.CSS
	Text     string
	Contacts []string
	Rows     []RowView
	Lines    []string
	Chips    []string
}

// RowView is an entry header row
type RowView struct {
	Class string
	Left  string
	Right string
}

// PreviewRenderer renders pages as an HTML surface, one positioned
// element per page, using the same geometry as the PDF export.
type PreviewRenderer struct {
	tmpl *template.Template
}

// NewPreviewRenderer returns a renderer using the built-in template.
func NewPreviewRenderer() *PreviewRenderer {
	tmpl, err := newPreviewTemplate(defaultPreviewTemplate)
	if err != nil {
		panic(err)
	}
	return &PreviewRenderer{tmpl: tmpl}
}

// LoadPreviewRenderer reads a custom preview template from templatePath.
func LoadPreviewRenderer(templatePath string) (*PreviewRenderer, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}
	tmpl, err := newPreviewTemplate(string(content))
	if err != nil {
		return nil, err
	}
	return &PreviewRenderer{tmpl: tmpl}, nil
}

func newPreviewTemplate(content string) (*template.Template, error) {
	tmpl, err := template.New("preview").Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

// Render writes the preview document for pages to w.
func (r *PreviewRenderer) Render(w io.Writer, layout templates.Layout, pages []pagination.Page) error {
	data, err := buildPreviewData(layout, pages)
	if err != nil {
		return err
	}
	if err := r.tmpl.Execute(w, data); err != nil {
		return &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return nil
}

// RenderString renders the preview document into a string.
func (r *PreviewRenderer) RenderString(layout templates.Layout, pages []pagination.Page) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, layout, pages); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func pt(v float64) string {
	return fmt.Sprintf("%.2fpt", v)
}

func hex(c templates.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))
}

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return v
	}
}

// stylesheet derives typography and colors from the layout. Every value is
// a number or a color the composer computed, never user text.
func stylesheet(layout templates.Layout) template.CSS {
	f := layout.Fonts
	c := layout.Colors
	family := "Helvetica, Arial, sans-serif"
	if f.Family == "Times" {
		family = "'Times New Roman', Times, serif"
	}
	lh := func(size float64) string { return pt(size * f.LineHeight) }

	var sb strings.Builder
	fmt.Fprintf(&sb, "body{margin:0;background:#e5e7eb;font-family:%s;color:%s}", family, hex(c.Text))
	fmt.Fprintf(&sb, ".page{position:relative;margin:0 auto 24px;background:#fff;overflow:hidden;width:%s;height:%s}", pt(layout.Page.Width), pt(layout.Page.Height))
	sb.WriteString(".block{position:absolute;box-sizing:border-box}")
	sb.WriteString(".sidebar{position:absolute;top:0;bottom:0}")
	fmt.Fprintf(&sb, ".name_header h1{margin:0;font-size:%s;line-height:%s;color:%s}", pt(f.Name), lh(f.Name), hex(c.Accent))
	fmt.Fprintf(&sb, ".contacts{margin:0;font-size:%s;line-height:%s;color:%s}", pt(f.Small), lh(f.Small), hex(c.Muted))
	fmt.Fprintf(&sb, ".name_header{border-bottom:0.75pt solid %s}", hex(c.Rule))
	fmt.Fprintf(&sb, ".section_heading h2{margin:%s 0 0;font-size:%s;line-height:%s;color:%s;border-bottom:0.75pt solid %s}",
		pt(flow.HeadingSpaceBefore), pt(f.Heading), lh(f.Heading), hex(c.Accent), hex(c.Rule))
	fmt.Fprintf(&sb, ".entry_header{padding-top:%s}", pt(flow.EntrySpaceBefore))
	sb.WriteString(".row{display:flex;justify-content:space-between}")
	fmt.Fprintf(&sb, ".row .right{font-style:italic;font-size:%s;color:%s}", pt(f.Small), hex(c.Muted))
	fmt.Fprintf(&sb, ".row-title{font-weight:bold;font-size:%s;line-height:%s}", pt(f.EntryTitle), lh(f.EntryTitle))
	fmt.Fprintf(&sb, ".row-subtitle{font-size:%s;line-height:%s;color:%s}", pt(f.Body), lh(f.Body), hex(c.Muted))
	fmt.Fprintf(&sb, ".row-detail{font-size:%s;line-height:%s;color:%s}", pt(f.Small), lh(f.Small), hex(c.Muted))
	fmt.Fprintf(&sb, ".line{display:block;font-size:%s;line-height:%s;white-space:pre}", pt(f.Body), lh(f.Body))
	fmt.Fprintf(&sb, ".skill_group_heading h3{margin:%s 0 0;font-size:%s;line-height:%s}", pt(flow.GroupSpaceBefore), pt(f.Body), lh(f.Body))
	fmt.Fprintf(&sb, ".chips{margin:0;padding:0;list-style:none;display:flex;flex-wrap:wrap;gap:%s}", pt(flow.ChipGap))
	fmt.Fprintf(&sb, ".chip{padding:%s %s;font-size:%s;line-height:%s;background:%s}",
		pt(flow.ChipPaddingY), pt(flow.ChipPaddingX), pt(f.Small), lh(f.Small), hex(c.ChipFill))
	fmt.Fprintf(&sb, ".sidebar{background:%s}", hex(c.SidebarFill))
	sb.WriteString("@media print{body{background:#fff}.page{margin:0;page-break-after:always}}")
	return template.CSS(sb.String())
}

func buildPreviewData(layout templates.Layout, pages []pagination.Page) (*PreviewData, error) {
	data := &PreviewData{
		Title:      "Resume preview",
		Stylesheet: stylesheet(layout),
		Pages:      make([]PageView, 0, len(pages)),
	}
	for _, page := range pages {
		view := PageView{
			Number: page.Number,
			Style:  template.CSS(fmt.Sprintf("width:%s;height:%s", pt(layout.Page.Width), pt(layout.Page.Height))),
			Blocks: make([]BlockView, 0, len(page.Placements)),
		}
		if layout.HasSidebar() && !layout.ATSSafe {
			view.Sidebar = template.CSS(fmt.Sprintf("left:%s;width:%s", pt(layout.Sidebar.X-6), pt(layout.Sidebar.Width+12)))
		}
		for _, pl := range page.Placements {
			block, err := blockView(layout, pl)
			if err != nil {
				return nil, &RenderError{Page: page.Number, Message: fmt.Sprintf("block %d", pl.Index), Cause: err}
			}
			if block.Kind == flow.KindNameHeader.String() {
				data.Title = block.Text + " - Resume"
			}
			view.Blocks = append(view.Blocks, block)
		}
		data.Pages = append(data.Pages, view)
	}
	return data, nil
}

func blockView(layout templates.Layout, pl pagination.Placement) (BlockView, error) {
	b := pl.Block
	col := layout.Column(b.Region)
	view := BlockView{
		Index:  pl.Index,
		Kind:   b.Kind.String(),
		Region: b.Region.String(),
		Style: template.CSS(fmt.Sprintf("left:%s;top:%s;width:%s;height:%s",
			pt(col.X), pt(layout.Margins.Top+pl.Y), pt(col.Width), pt(b.Height))),
	}

	switch b.Kind {
	case flow.KindNameHeader:
		view.Text = b.Text
		view.Contacts = b.Contacts
	case flow.KindSectionHeading, flow.KindSkillGroupHeading:
		view.Text = b.Text
	case flow.KindEntryHeader:
		for _, row := range b.Rows {
			view.Rows = append(view.Rows, RowView{Class: rowClass(row.Style), Left: row.Left, Right: row.Right})
		}
	case flow.KindBodyLine:
		view.Lines = b.Lines
	case flow.KindSkillChipRow:
		for _, row := range b.ChipRows {
			view.Chips = append(view.Chips, row...)
		}
		if len(view.Chips) == 0 {
			view.Lines = b.Lines
		}
	default:
		return BlockView{}, fmt.Errorf("unknown block kind %d", int(b.Kind))
	}
	return view, nil
}

func rowClass(style flow.RowStyle) string {
	switch style {
	case flow.RowTitle:
		return "row-title"
	case flow.RowSubtitle:
		return "row-subtitle"
	default:
		return "row-detail"
	}
}
