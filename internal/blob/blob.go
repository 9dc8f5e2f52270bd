// Package blob rasterizes the felt-marker mask around text: every cell near
// a glyph is classified as interior, border or background.
//
// The mask covers the viewport columns and a band of rows around the
// current scroll position. It is built in two steps: text points are
// bucketed into a uniform grid stored as flat arrays, then each output tile
// is classified against only the buckets that can reach it. Tiles that come
// out all background are not stored.
package blob

import (
	"math"

	"github.com/xonecas/glyphgrid/internal/layout"
)

// Class is the mask value of one cell.
type Class uint8

const (
	Background Class = iota
	Interior
	Border
)

func (c Class) String() string {
	switch c {
	case Interior:
		return "interior"
	case Border:
		return "border"
	default:
		return "background"
	}
}

// Source yields the occupied text cells. *layout.CellMap implements it.
type Source interface {
	Points() []layout.Point
}

// Mask is a built classification grid in two layers: scrolling text in
// content space, covering a band of rows around the scroll position, and
// fixed text in screen space, covering the viewport.
type Mask struct {
	grid // scrolling layer; X0, Y0, W, H are its content rows
	ScrollRow int

	fixed  grid
	points int
}

// grid is one tiled classification layer.
type grid struct {
	X0, Y0 int
	W, H   int

	tile   int
	tilesX int
	tilesY int
	index  []int32 // tile coordinate -> arena slot, -1 when all background
	arena  []Class
}

func newGrid(x0, y0, w, h, tile int) grid {
	g := grid{X0: x0, Y0: y0, W: w, H: h, tile: tile}
	g.tilesX = (w + tile - 1) / tile
	g.tilesY = (h + tile - 1) / tile
	g.index = make([]int32, g.tilesX*g.tilesY)
	for i := range g.index {
		g.index[i] = -1
	}
	return g
}

// class returns the class of cell (x, y) in the layer's own space.
func (g *grid) class(x, y int) Class {
	lx, ly := x-g.X0, y-g.Y0
	if lx < 0 || ly < 0 || lx >= g.W || ly >= g.H {
		return Background
	}
	slot := g.index[(ly/g.tile)*g.tilesX+lx/g.tile]
	if slot < 0 {
		return Background
	}
	return g.arena[int(slot)*g.tile*g.tile+(ly%g.tile)*g.tile+lx%g.tile]
}

func (g *grid) tiles() int {
	if g.tile == 0 {
		return 0
	}
	return len(g.arena) / (g.tile * g.tile)
}

// At returns the class of screen cell (x, y) with the viewport scrolled to
// scrollRow. Fixed text is matched at (x, y), scrolling text at
// (x, y+scrollRow); the stronger class wins. Anything outside the covered
// area is Background.
func (m *Mask) At(x, y, scrollRow int) Class {
	if m == nil {
		return Background
	}
	c := m.grid.class(x, y+scrollRow)
	if c == Interior {
		return c
	}
	switch m.fixed.class(x, y) {
	case Interior:
		return Interior
	case Border:
		return Border
	}
	return c
}

// Covers reports whether content rows [y0, y1) lie inside the scrolling
// layer.
func (m *Mask) Covers(y0, y1 int) bool {
	return m != nil && y0 >= m.Y0 && y1 <= m.Y0+m.H
}

// Tiles returns the number of stored (non-background) tiles.
func (m *Mask) Tiles() int {
	if m == nil {
		return 0
	}
	return m.grid.tiles() + m.fixed.tiles()
}

// Points returns how many text points fed the build.
func (m *Mask) Points() int {
	if m == nil {
		return 0
	}
	return m.points
}

type point struct {
	x, y int32
}

// buckets is a uniform spatial hash laid out by counting sort: the points
// of bucket b are points[start[b]:start[b+1]].
type buckets struct {
	size   int
	bx0    int
	by0    int
	nx, ny int
	start  []int32
	points []point
}

func newBuckets(pts []point, size, x0, y0, x1, y1 int) *buckets {
	b := &buckets{size: size, bx0: floorDiv(x0, size), by0: floorDiv(y0, size)}
	b.nx = floorDiv(x1-1, size) - b.bx0 + 1
	b.ny = floorDiv(y1-1, size) - b.by0 + 1
	b.start = make([]int32, b.nx*b.ny+1)

	slot := make([]int32, len(pts))
	for i, p := range pts {
		s := int32(b.slot(int(p.x), int(p.y)))
		slot[i] = s
		b.start[s+1]++
	}
	for i := 1; i < len(b.start); i++ {
		b.start[i] += b.start[i-1]
	}
	b.points = make([]point, len(pts))
	fill := append([]int32(nil), b.start[:len(b.start)-1]...)
	for i, p := range pts {
		s := slot[i]
		b.points[fill[s]] = p
		fill[s]++
	}
	return b
}

func (b *buckets) slot(x, y int) int {
	return (floorDiv(y, b.size)-b.by0)*b.nx + floorDiv(x, b.size) - b.bx0
}

// gather appends every point in buckets overlapping [x0,x1]×[y0,y1].
func (b *buckets) gather(dst []point, x0, y0, x1, y1 int) []point {
	bx0 := max(floorDiv(x0, b.size)-b.bx0, 0)
	bx1 := min(floorDiv(x1, b.size)-b.bx0, b.nx-1)
	by0 := max(floorDiv(y0, b.size)-b.by0, 0)
	by1 := min(floorDiv(y1, b.size)-b.by0, b.ny-1)
	for by := by0; by <= by1; by++ {
		for bx := bx0; bx <= bx1; bx++ {
			s := by*b.nx + bx
			dst = append(dst, b.points[b.start[s]:b.start[s+1]]...)
		}
	}
	return dst
}

// Build classifies the mask for a cols×rows viewport scrolled to scrollRow.
func Build(src Source, scrollRow, cols, rows int, opts Options) *Mask {
	o := opts.normalized()
	m := &Mask{ScrollRow: scrollRow}
	m.grid.tile, m.fixed.tile = o.TileSize, o.TileSize
	if src == nil || cols <= 0 || rows <= 0 {
		return m
	}
	m.grid = newGrid(0, scrollRow-rows*o.LookaheadAbove, cols, rows*(1+o.LookaheadAbove+o.LookaheadBelow), o.TileSize)
	m.fixed = newGrid(0, 0, cols, rows, o.TileSize)

	var scrolling, fixed []point
	for _, p := range src.Points() {
		if p.Fixed {
			if m.fixed.reaches(p.X, p.Y, o) {
				fixed = append(fixed, point{int32(p.X), int32(p.Y)})
			}
		} else if m.grid.reaches(p.X, p.Y, o) {
			scrolling = append(scrolling, point{int32(p.X), int32(p.Y)})
		}
	}
	m.points = len(scrolling) + len(fixed)
	m.grid.classify(scrolling, o)
	m.fixed.classify(fixed, o)
	return m
}

// reaches reports whether a text point at (x, y) can touch the layer.
func (g *grid) reaches(x, y int, o Options) bool {
	rx, ry := o.reach(), o.reachY()
	return x >= g.X0-rx && x < g.X0+g.W+rx && y >= g.Y0-ry && y < g.Y0+g.H+ry
}

// classify fills the layer's tiles from pts.
func (g *grid) classify(pts []point, o Options) {
	if len(pts) == 0 {
		return
	}
	reachX, reachY := o.reach(), o.reachY()
	size := max(int(math.Ceil(o.Radius*o.BucketScale)), 1)
	bk := newBuckets(pts, size, g.X0-reachX, g.Y0-reachY, g.X0+g.W+reachX, g.Y0+g.H+reachY)

	area := g.tile * g.tile
	scratch := make([]Class, area)
	var near []point
	for ty := 0; ty < g.tilesY; ty++ {
		for tx := 0; tx < g.tilesX; tx++ {
			cx0 := g.X0 + tx*g.tile
			cy0 := g.Y0 + ty*g.tile
			cx1 := min(cx0+g.tile, g.X0+g.W)
			cy1 := min(cy0+g.tile, g.Y0+g.H)

			near = bk.gather(near[:0], cx0-reachX, cy0-reachY, cx1-1+reachX, cy1-1+reachY)
			if len(near) == 0 {
				continue
			}
			if !classifyTile(scratch, near, cx0, cy0, cx1, cy1, g.tile, o) {
				continue
			}
			g.index[ty*g.tilesX+tx] = int32(len(g.arena) / area)
			g.arena = append(g.arena, scratch...)
		}
	}
}

// classifyTile fills out for the cells of one tile and reports whether any
// cell is not background.
func classifyTile(out []Class, near []point, cx0, cy0, cx1, cy1, tile int, o Options) bool {
	clear(out)
	inner := sq(o.Radius - o.Epsilon)
	outer := sq(o.Radius)
	hit := false
	for y := cy0; y < cy1; y++ {
		for x := cx0; x < cx1; x++ {
			class := Background
			for _, p := range near {
				d2 := sq(float64(x-int(p.x))) + sq(float64(y-int(p.y))*o.VerticalWeight)
				if d2 < inner {
					class = Interior
					break
				}
				if d2 < outer {
					class = Border
				}
			}
			if class != Background {
				out[(y-cy0)*tile+x-cx0] = class
				hit = true
			}
		}
	}
	return hit
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
