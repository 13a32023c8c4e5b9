package rendering

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/templates"
)

// baseline returns the text baseline for a line box starting at top.
func baseline(top, lineHeight, size float64) float64 {
	return top + (lineHeight-size)/2 + 0.8*size
}

// painter draws blocks for one layout onto a canvas
type painter struct {
	canvas Canvas
	layout templates.Layout
	faces  flow.Faces
}

func newPainter(canvas Canvas, layout templates.Layout) *painter {
	return &painter{canvas: canvas, layout: layout, faces: flow.NewFaces(layout.Fonts)}
}

// drawPages draws every page in order, checking ctx between pages.
func drawPages(ctx context.Context, canvas Canvas, layout templates.Layout, pages []pagination.Page) error {
	p := newPainter(canvas, layout)
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.page(page); err != nil {
			return err
		}
		if err := canvas.Err(); err != nil {
			return &RenderError{Page: page.Number, Message: "canvas failure", Cause: err}
		}
	}
	return nil
}

func (p *painter) page(page pagination.Page) error {
	p.canvas.AddPage()
	if p.layout.HasSidebar() && !p.layout.ATSSafe {
		p.canvas.SetFillColor(p.layout.Colors.SidebarFill)
		side := p.layout.Sidebar
		p.canvas.FillRect(side.X-6, 0, side.Width+12, p.layout.Page.Height)
	}
	for _, pl := range page.Placements {
		if err := p.block(pl); err != nil {
			return &RenderError{Page: page.Number, Message: fmt.Sprintf("block %d", pl.Index), Cause: err}
		}
	}
	return nil
}

func (p *painter) text(font flow.Font, color templates.RGB, x, top float64, s string) {
	p.canvas.SetFont(font)
	p.canvas.SetTextColor(color)
	p.canvas.Text(x, baseline(top, p.faces.LineHeight(font), font.Size), s)
}

func (p *painter) lines(font flow.Font, x, top float64, lines []string) {
	lh := p.faces.LineHeight(font)
	for i, line := range lines {
		p.text(font, p.layout.Colors.Text, x, top+float64(i)*lh, line)
	}
}

func (p *painter) rule(x1, x2, y float64) {
	p.canvas.SetDrawColor(p.layout.Colors.Rule)
	p.canvas.Line(x1, y, x2, y)
}

func (p *painter) block(pl pagination.Placement) error {
	b := pl.Block
	col := p.layout.Column(b.Region)
	top := p.layout.Margins.Top + pl.Y
	colors := p.layout.Colors

	switch b.Kind {
	case flow.KindNameHeader:
		name := p.faces.Name()
		p.text(name, colors.Accent, col.X, top, b.Text)
		y := top + p.faces.LineHeight(name)
		contact := p.faces.Contact()
		for _, line := range b.Lines {
			p.text(contact, colors.Muted, col.X, y, line)
			y += p.faces.LineHeight(contact)
		}
		p.rule(col.X, col.X+col.Width, y+flow.NameSpaceAfter/2)

	case flow.KindSectionHeading:
		heading := p.faces.Heading()
		y := top + flow.HeadingSpaceBefore
		p.text(heading, colors.Accent, col.X, y, b.Text)
		p.rule(col.X, col.X+col.Width, y+p.faces.LineHeight(heading)+1)

	case flow.KindEntryHeader:
		y := top + flow.EntrySpaceBefore
		right := p.faces.Right()
		for _, row := range b.Rows {
			font := p.faces.Row(row.Style)
			color := colors.Text
			if row.Style != flow.RowTitle {
				color = colors.Muted
			}
			p.text(font, color, col.X, y, row.Left)
			if row.Right != "" {
				w := p.canvas.StringWidth(right, row.Right)
				p.text(right, colors.Muted, col.X+col.Width-w, y, row.Right)
			}
			y += p.faces.LineHeight(font)
		}

	case flow.KindBodyLine:
		p.lines(p.faces.Body(), col.X, top, b.Lines)

	case flow.KindSkillGroupHeading:
		p.text(p.faces.Group(), colors.Text, col.X, top+flow.GroupSpaceBefore, b.Text)

	case flow.KindSkillChipRow:
		if len(b.ChipRows) == 0 {
			p.lines(p.faces.Body(), col.X, top, b.Lines)
			return nil
		}
		p.chips(b.ChipRows, col, top)

	default:
		return fmt.Errorf("unknown block kind %d", int(b.Kind))
	}
	return nil
}

func (p *painter) chips(rows [][]string, col templates.Column, top float64) {
	chip := p.faces.Chip()
	h := p.faces.ChipHeight()
	y := top
	for _, row := range rows {
		x := col.X
		for _, label := range row {
			w := p.faces.ChipWidth(p.canvas, label, col.Width)
			p.canvas.SetFillColor(p.layout.Colors.ChipFill)
			p.canvas.FillRect(x, y, w, h)
			p.text(chip, p.layout.Colors.Text, x+flow.ChipPaddingX, y+flow.ChipPaddingY, label)
			x += w + flow.ChipGap
		}
		y += h + flow.ChipGap
	}
}
