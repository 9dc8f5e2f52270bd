// Package synth computes the glyph of one grid cell for one frame.
//
// Evaluation is a pure function of the cell coordinate and an Env. Layers
// are tried in priority order and the first that claims the cell wins:
// transition overlay, fixed text, scrolling text, gutter, blob mask, and
// finally the procedural field.
package synth

import (
	"github.com/xonecas/glyphgrid/internal/blob"
	"github.com/xonecas/glyphgrid/internal/layout"
)

// Style is a set of per-cell style flags passed through to the host.
type Style uint8

const (
	Bold Style = 1 << iota
	Italic
	Link
	Red
)

// Layer records which rule produced a glyph.
type Layer uint8

const (
	LayerBlank Layer = iota
	LayerText
	LayerBlob
	LayerField
)

// Glyph is one synthesized cell.
type Glyph struct {
	Char  string
	Style Style
	Layer Layer
}

// Blank is the empty cell.
var Blank = Glyph{Char: " "}

// TextSource looks up laid-out text. *layout.CellMap implements it.
type TextSource interface {
	At(x, y int) (layout.Cell, bool)
}

// MaskSource looks up the blob class of screen cell (x, y) with the view
// scrolled to scrollRow. *blob.Mask implements it.
type MaskSource interface {
	At(x, y, scrollRow int) blob.Class
}

// Env is everything a cell evaluation reads besides its coordinate.
type Env struct {
	Cols, Rows int
	// Aspect is cell height over cell width.
	Aspect float64
	// Time is seconds since the engine started.
	Time      float64
	ScrollRow int
	FrameSeed uint32

	Cursor *CursorState
	Text   TextSource
	Mask   MaskSource
}

func styleOf(c layout.Cell) Style {
	var s Style
	if c.Bold {
		s |= Bold
	}
	if c.Italic {
		s |= Italic
	}
	if c.Link {
		s |= Link
	}
	if c.Red {
		s |= Red
	}
	return s
}
