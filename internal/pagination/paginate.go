// Package pagination packs measured blocks onto fixed-height pages.
package pagination

import (
	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/templates"
)

// epsilon absorbs floating point error when summing heights.
const epsilon = 1e-6

// Placement is a block positioned on a page
type Placement struct {
	Block flow.Block `json:"block"`
	// Index is the block's position in the input sequence.
	Index int `json:"index"`
	// Y is the offset from the top of the content area, in points.
	Y float64 `json:"y"`
}

// Bottom is the offset just below the block.
func (p Placement) Bottom() float64 {
	return p.Y + p.Block.Height
}

// Page is one physical page of placements in input order
type Page struct {
	Number     int         `json:"number"`
	Placements []Placement `json:"placements"`
}

// Bottom returns the lowest point used by blocks flowing in region.
// Full-width blocks count toward every region.
func (p Page) Bottom(region templates.Region) float64 {
	bottom := 0.0
	for _, pl := range p.Placements {
		if pl.Block.Region != region && pl.Block.Region != templates.RegionFull {
			continue
		}
		if b := pl.Bottom(); b > bottom {
			bottom = b
		}
	}
	return bottom
}

// IsEmpty reports whether nothing is placed on the page.
func (p Page) IsEmpty() bool {
	return len(p.Placements) == 0
}

type cursor struct {
	page int
	y    float64
}

func (c cursor) after(o cursor) bool {
	return c.page > o.page || (c.page == o.page && c.y > o.y)
}

type paginator struct {
	blocks []flow.Block
	height float64
	// next[i] is the index of the next block in the same region, or -1.
	next    []int
	pages   []Page
	cursors map[templates.Region]*cursor
	floor   cursor
	// last is the page of the most recently placed block.
	last int
	// forced holds, per region, the last index of a chain being placed
	// block by block.
	forced map[templates.Region]int
}

// Paginate places blocks onto pages of contentHeight, in order, without
// dropping or reordering anything: reading the pages front to back yields
// the input sequence. Each region flows independently; a full-width block
// starts below everything placed so far and every region resumes below it.
// A region never reaches back to a page before the last placed block.
//
// A block that does not fit in the space left moves whole to the next page.
// A block marked KeepWithNext is only placed when it fits together with the
// blocks it keeps with; otherwise it starts a fresh page. A block taller than
// a page sits alone at the top of its own page. There is always at least
// one page.
func Paginate(blocks []flow.Block, contentHeight float64) []Page {
	p := &paginator{
		blocks:  blocks,
		height:  contentHeight,
		next:    linkRegions(blocks),
		pages:   []Page{{Number: 1}},
		cursors: make(map[templates.Region]*cursor),
		forced:  make(map[templates.Region]int),
	}
	for i := range blocks {
		p.place(i)
	}
	return p.pages
}

func linkRegions(blocks []flow.Block) []int {
	next := make([]int, len(blocks))
	last := make(map[templates.Region]int)
	for i := len(blocks) - 1; i >= 0; i-- {
		region := blocks[i].Region
		if j, ok := last[region]; ok {
			next[i] = j
		} else {
			next[i] = -1
		}
		last[region] = i
	}
	return next
}

// chain returns the height of block i plus every block it keeps with, and
// the index of the last block in that chain.
func (p *paginator) chain(i int) (float64, int) {
	h := p.blocks[i].Height
	j := i
	for p.blocks[j].KeepWithNext && p.next[j] >= 0 {
		j = p.next[j]
		h += p.blocks[j].Height
	}
	return h, j
}

func (p *paginator) cursorFor(region templates.Region) *cursor {
	if region == templates.RegionFull {
		c := p.floor
		for _, rc := range p.cursors {
			if rc.after(c) {
				c = *rc
			}
		}
		return &c
	}
	c, ok := p.cursors[region]
	if !ok {
		start := p.floor
		c = &start
		p.cursors[region] = c
	}
	if c.page < p.last {
		c.page, c.y = p.last, 0
		if p.floor.page == p.last {
			c.y = p.floor.y
		}
	}
	return c
}

func (p *paginator) newPage(c *cursor) {
	c.page++
	c.y = 0
	for len(p.pages) <= c.page {
		p.pages = append(p.pages, Page{Number: len(p.pages) + 1})
	}
}

func (p *paginator) place(i int) {
	block := p.blocks[i]
	c := p.cursorFor(block.Region)

	need, end := p.chain(i)
	// Inside an oversize chain, a later heading still keeps with its own
	// shorter chain when that fits on a page.
	if last, ok := p.forced[block.Region]; ok && i <= last && need > p.height+epsilon {
		need = block.Height
	}
	if c.y > 0 && c.y+need > p.height+epsilon {
		p.newPage(c)
	}
	// A chain taller than a page cannot stay together; its blocks fall back
	// to fitting one at a time.
	if need > p.height+epsilon && end > i {
		p.forced[block.Region] = end
	}
	p.pages[c.page].Placements = append(p.pages[c.page].Placements, Placement{
		Block: block,
		Index: i,
		Y:     c.y,
	})
	// An oversize block leaves y past the page end, so whatever comes next
	// in the region starts a new page.
	c.y += block.Height
	p.last = c.page

	if block.Region == templates.RegionFull {
		p.floor = *c
		for _, rc := range p.cursors {
			*rc = *c
		}
	}
}

// Flatten returns the blocks of region in page order. Full-width blocks are
// included for every region.
func Flatten(pages []Page, region templates.Region) []flow.Block {
	var out []flow.Block
	for _, page := range pages {
		for _, pl := range page.Placements {
			if pl.Block.Region == region || pl.Block.Region == templates.RegionFull {
				out = append(out, pl.Block)
			}
		}
	}
	return out
}

// Blocks returns every placed block in page order.
func Blocks(pages []Page) []flow.Block {
	var out []flow.Block
	for _, page := range pages {
		for _, pl := range page.Placements {
			out = append(out, pl.Block)
		}
	}
	return out
}
