package engine

import (
	"strings"

	"github.com/xonecas/glyphgrid/internal/links"
	"github.com/xonecas/glyphgrid/internal/scheduler"
	"github.com/xonecas/glyphgrid/internal/synth"
)

// Frame is one synthesized surface. The engine reuses a single Frame
// between calls; hosts must finish with it before asking for the next.
type Frame struct {
	Cols, Rows int
	Cells      []synth.Glyph // row-major, index y*Cols + x
	Links      []links.Rect
	Tier       scheduler.Tier
	ScrollRow  int
	Seq        uint64
}

// resize reuses the backing array when it is large enough.
func (f *Frame) resize(cols, rows int) {
	n := cols * rows
	if cap(f.Cells) < n {
		f.Cells = make([]synth.Glyph, n)
	}
	f.Cells = f.Cells[:n]
	f.Cols, f.Rows = cols, rows
	f.Links = f.Links[:0]
}

// Row returns row y, or nil when out of range.
func (f *Frame) Row(y int) []synth.Glyph {
	if y < 0 || y >= f.Rows {
		return nil
	}
	return f.Cells[y*f.Cols : (y+1)*f.Cols]
}

// At returns the glyph at (x, y); out of range is blank.
func (f *Frame) At(x, y int) synth.Glyph {
	if x < 0 || y < 0 || x >= f.Cols || y >= f.Rows {
		return synth.Blank
	}
	return f.Cells[y*f.Cols+x]
}

// String renders the frame as plain text, one line per row with trailing
// blanks trimmed.
func (f *Frame) String() string {
	var b strings.Builder
	for y := 0; y < f.Rows; y++ {
		var line strings.Builder
		for _, g := range f.Row(y) {
			line.WriteString(g.Char)
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
