// Package layout resolves declarative text blocks into absolute grid cells.
//
// A layout pass turns an ordered list of TextBlocks into a dense cell map,
// a padded bounding box per block and the clickable link runs. Blocks may be
// anchored to the bounds of other blocks; anchors are resolved in dependency
// order and degrade to the literal position when they cannot be honored.
package layout

import "fmt"

// Alignment controls per-line horizontal placement inside a block.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// AnchorPoint names a corner or midpoint of an anchor's bounds.
type AnchorPoint string

const (
	TopLeft      AnchorPoint = "topLeft"
	TopCenter    AnchorPoint = "topCenter"
	TopRight     AnchorPoint = "topRight"
	MiddleLeft   AnchorPoint = "middleLeft"
	Center       AnchorPoint = "center"
	MiddleRight  AnchorPoint = "middleRight"
	BottomLeft   AnchorPoint = "bottomLeft"
	BottomCenter AnchorPoint = "bottomCenter"
	BottomRight  AnchorPoint = "bottomRight"
)

// Offset is a displacement in grid cells.
type Offset struct {
	X int `toml:"x"`
	Y int `toml:"y"`
}

// TextBlock is one declared unit of text. It is immutable within a pass.
type TextBlock struct {
	Text string `toml:"text"`

	// X and Y are cells, or percent of the viewport when Percent is set.
	X       float64 `toml:"x"`
	Y       float64 `toml:"y"`
	Percent bool    `toml:"percent"`

	Name         string      `toml:"name,omitempty"`
	AnchorTo     string      `toml:"anchor_to,omitempty"`
	AnchorPoint  AnchorPoint `toml:"anchor_point,omitempty"`
	AnchorOffset Offset      `toml:"anchor_offset,omitempty"`

	MaxWidthPercent float64   `toml:"max_width_percent,omitempty"`
	Alignment       Alignment `toml:"alignment,omitempty"`
	Centered        bool      `toml:"centered,omitempty"`
	Fixed           bool      `toml:"fixed,omitempty"`
	FontName        string    `toml:"font,omitempty"`
}

// Bounds is a block's padded bounding box in grid cells.
type Bounds struct {
	MinX, MaxX int
	MinY, MaxY int
	Fixed      bool

	// Empty is set when the block placed no glyphs. The coordinates are
	// meaningless in that case.
	Empty bool
}

// Width returns the horizontal extent, zero for an empty box.
func (b Bounds) Width() int {
	if b.Empty {
		return 0
	}
	return b.MaxX - b.MinX + 1
}

// Height returns the vertical extent, zero for an empty box.
func (b Bounds) Height() int {
	if b.Empty {
		return 0
	}
	return b.MaxY - b.MinY + 1
}

// Cell is one placed glyph.
type Cell struct {
	Char   string
	Fixed  bool
	Bold   bool
	Italic bool
	Red    bool
	Link   bool
}

// LinkPosition is one contiguous clickable run on one grid row.
type LinkPosition struct {
	TextKey string
	URL     string
	StartX  int
	EndX    int
	Y       int
	Fixed   bool
}

// WarningKind classifies a recoverable layout problem.
type WarningKind int

const (
	WarnUnknownAnchor WarningKind = iota
	WarnAnchorCycle
	WarnDuplicateName
	WarnUnknownFont
	WarnEmptyAnchor
)

func (k WarningKind) String() string {
	switch k {
	case WarnUnknownAnchor:
		return "unknown anchor"
	case WarnAnchorCycle:
		return "anchor cycle"
	case WarnDuplicateName:
		return "duplicate name"
	case WarnUnknownFont:
		return "unknown font"
	case WarnEmptyAnchor:
		return "empty anchor"
	default:
		return fmt.Sprintf("warning(%d)", int(k))
	}
}

// Warning is a problem the layout pass recovered from.
type Warning struct {
	Kind   WarningKind
	Key    string
	Detail string
}

func (w Warning) String() string {
	if w.Detail == "" {
		return fmt.Sprintf("%s: %s", w.Key, w.Kind)
	}
	return fmt.Sprintf("%s: %s (%s)", w.Key, w.Kind, w.Detail)
}

// Result is the output of one layout pass.
type Result struct {
	Cells       *CellMap
	Bounds      map[string]Bounds
	Links       []LinkPosition
	GridCols    int
	GridOffsetY int

	// ContentRows is one past the lowest scrolling row, the height the
	// scroll range is computed from.
	ContentRows int

	Warnings []Warning
}
