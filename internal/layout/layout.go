package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/xonecas/glyphgrid/internal/font"
	"github.com/xonecas/glyphgrid/internal/grapheme"
)

// BoundsPadding is added on every side of a block's occupied cells.
const BoundsPadding = 1

// Engine lays out text blocks. The zero value is not usable; call New.
type Engine struct {
	Fonts   *font.Registry
	Padding int
}

// New returns an engine using the built-in fonts.
func New() *Engine {
	return &Engine{Fonts: font.Builtin(), Padding: BoundsPadding}
}

// Layout runs one pass with the default engine.
func Layout(blocks []TextBlock, cols, rows int) *Result {
	return New().Layout(blocks, cols, rows)
}

type placedCell struct {
	x, y int
	cell Cell
}

type pass struct {
	e      *Engine
	cols   int
	rows   int
	res    *Result
	placed []placedCell
}

func (p *pass) warn(kind WarningKind, key, detail string) {
	p.res.Warnings = append(p.res.Warnings, Warning{Kind: kind, Key: key, Detail: detail})
}

// Layout resolves blocks against a cols×rows viewport. It never fails: a
// block that cannot be honored degrades to its literal position or is
// skipped, and the problem is recorded in Result.Warnings.
func (e *Engine) Layout(blocks []TextBlock, cols, rows int) *Result {
	res := &Result{
		Bounds:   make(map[string]Bounds, len(blocks)),
		GridCols: max(cols, 0),
	}
	if cols <= 0 || rows <= 0 {
		res.Cells = newCellMap(0, 0, 0)
		return res
	}
	p := &pass{e: e, cols: cols, rows: rows, res: res}

	keys := make([]string, len(blocks))
	byName := make(map[string]int, len(blocks))
	for i, b := range blocks {
		keys[i] = fmt.Sprintf("block-%d", i)
		if b.Name == "" {
			continue
		}
		if _, dup := byName[b.Name]; dup {
			p.warn(WarnDuplicateName, keys[i], b.Name)
			continue
		}
		byName[b.Name] = i
		keys[i] = b.Name
	}

	deps := make([]int, len(blocks))
	for i, b := range blocks {
		deps[i] = -1
		if b.AnchorTo == "" {
			continue
		}
		j, ok := byName[b.AnchorTo]
		if !ok {
			p.warn(WarnUnknownAnchor, keys[i], b.AnchorTo)
			continue
		}
		deps[i] = j
	}

	order, cyclic := resolveOrder(deps)
	for i, c := range cyclic {
		if c {
			p.warn(WarnAnchorCycle, keys[i], blocks[i].AnchorTo)
		}
	}

	for _, i := range order {
		b := blocks[i]
		x, y := literalOrigin(b, cols, rows)
		if d := deps[i]; d >= 0 && !cyclic[i] {
			ab := res.Bounds[keys[d]]
			if ab.Empty {
				p.warn(WarnEmptyAnchor, keys[i], b.AnchorTo)
			} else {
				x, y = AnchorOrigin(b.AnchorPoint, ab, b.AnchorOffset)
			}
		}
		res.Bounds[keys[i]] = p.placeBlock(keys[i], b, x, y)
	}

	p.buildGrid()
	return res
}

func literalOrigin(b TextBlock, cols, rows int) (int, int) {
	if b.Percent {
		return int(math.Floor(float64(cols) * b.X / 100)), int(math.Floor(float64(rows) * b.Y / 100))
	}
	return int(math.Floor(b.X)), int(math.Floor(b.Y))
}

// shape parses, wraps and optionally font-expands a block into rows of
// runs. Link ids in the returned runs index urls, offset by one.
func (p *pass) shape(key string, b TextBlock) ([][]Run, []string) {
	var f *font.Font
	if b.FontName != "" {
		var ok bool
		if f, ok = p.e.Fonts.Lookup(b.FontName); !ok {
			p.warn(WarnUnknownFont, key, b.FontName)
		}
	}

	width := 0
	if b.MaxWidthPercent > 0 {
		width = max(int(float64(p.cols)*b.MaxWidthPercent/100), 1)
		if f != nil {
			per := len(f.Glyph("W")[0]) + f.Spacing
			width = max(width/max(per, 1), 1)
		}
	}

	var (
		rows [][]Run
		urls []string
	)
	for _, line := range strings.Split(grapheme.Clean(b.Text), "\n") {
		runs, lineURLs := ParseMarkup(line)
		if base := len(urls); base > 0 {
			for i := range runs {
				if runs[i].Link > 0 {
					runs[i].Link += base
				}
			}
		}
		urls = append(urls, lineURLs...)
		for _, row := range Wrap(runs, width) {
			if f == nil {
				rows = append(rows, row)
				continue
			}
			rows = append(rows, expandFont(f, row)...)
		}
	}
	return rows, urls
}

func expandFont(f *font.Font, row []Run) [][]Run {
	out := make([][]Run, f.Height)
	for i, r := range row {
		g := f.Glyph(r.Char)
		for h := 0; h < f.Height; h++ {
			for _, c := range g[h] {
				out[h] = append(out[h], Run{Char: c, Style: r.Style, Link: r.Link})
			}
		}
		if i == len(row)-1 {
			continue
		}
		link := 0
		if row[i+1].Link == r.Link {
			link = r.Link
		}
		for h := 0; h < f.Height; h++ {
			for s := 0; s < f.Spacing; s++ {
				out[h] = append(out[h], Run{Char: " ", Link: link})
			}
		}
	}
	return out
}

func alignOffset(a Alignment, blockW, lineW int) int {
	switch a {
	case AlignCenter:
		return (blockW - lineW) / 2
	case AlignRight:
		return blockW - lineW
	default:
		return 0
	}
}

func (p *pass) placeBlock(key string, b TextBlock, x0, y0 int) Bounds {
	rows, urls := p.shape(key, b)

	blockW := 0
	for _, row := range rows {
		blockW = max(blockW, len(row))
	}
	startX := x0
	if b.Centered {
		startX -= blockW / 2
	}

	bounds := Bounds{MinX: math.MaxInt, MinY: math.MaxInt, MaxX: math.MinInt, MaxY: math.MinInt, Fixed: b.Fixed}
	for r, row := range rows {
		y := y0 + r
		if y < -MaxCoord || y > MaxCoord {
			continue
		}
		off := startX + alignOffset(b.Alignment, blockW, len(row))

		runStart, runLink := 0, 0
		emit := func(end int) {
			if runLink > 0 && runLink <= len(urls) {
				p.res.Links = append(p.res.Links, LinkPosition{
					TextKey: key,
					URL:     urls[runLink-1],
					StartX:  off + runStart,
					EndX:    off + end,
					Y:       y,
					Fixed:   b.Fixed,
				})
			}
		}
		for c, run := range row {
			if run.Link != runLink {
				emit(c - 1)
				runStart, runLink = c, run.Link
			}
			x := off + c
			if x < -MaxCoord || x > MaxCoord || grapheme.IsBlank(run.Char) {
				continue
			}
			p.placed = append(p.placed, placedCell{x: x, y: y, cell: Cell{
				Char:   run.Char,
				Fixed:  b.Fixed,
				Bold:   run.Style&StyleBold != 0,
				Italic: run.Style&StyleItalic != 0,
				Red:    run.Style&StyleRed != 0,
				Link:   run.Link > 0,
			}})
			bounds.MinX = min(bounds.MinX, x)
			bounds.MaxX = max(bounds.MaxX, x)
			bounds.MinY = min(bounds.MinY, y)
			bounds.MaxY = max(bounds.MaxY, y)
		}
		emit(len(row) - 1)
	}

	if bounds.MinX > bounds.MaxX {
		return Bounds{Empty: true, Fixed: b.Fixed}
	}
	pad := p.e.Padding
	bounds.MinX = clampCoord(bounds.MinX - pad)
	bounds.MaxX = clampCoord(bounds.MaxX + pad)
	bounds.MinY = clampCoord(bounds.MinY - pad)
	bounds.MaxY = clampCoord(bounds.MaxY + pad)
	return bounds
}

func clampCoord(v int) int {
	return min(max(v, -MaxCoord), MaxCoord)
}

// buildGrid sizes the dense grid to the union of all bounds and fills it.
func (p *pass) buildGrid() {
	minY, maxY := math.MaxInt, math.MinInt
	content := 0
	for _, b := range p.res.Bounds {
		if b.Empty {
			continue
		}
		minY = min(minY, b.MinY)
		maxY = max(maxY, b.MaxY)
		if !b.Fixed {
			content = max(content, b.MaxY+1)
		}
	}
	if minY > maxY {
		p.res.Cells = newCellMap(p.cols, 0, 0)
		return
	}
	m := newCellMap(p.cols, minY, maxY-minY+1)
	for _, pc := range p.placed {
		m.set(pc.x, pc.y, pc.cell)
	}
	m.collectPoints()
	p.res.Cells = m
	p.res.GridOffsetY = minY
	p.res.ContentRows = content
}
