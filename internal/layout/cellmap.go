package layout

import "strings"

// MaxCoord bounds every placed coordinate. Degenerate input (huge offsets,
// runaway anchor chains) is clipped here instead of allocating without
// limit.
const MaxCoord = 16384

// maxGridRows caps the dense grid's height.
const maxGridRows = 8192

// Point is an occupied, non-blank cell.
type Point struct {
	X, Y  int
	Fixed bool
}

// CellMap is the dense text grid of one layout pass. Rows span the union of
// all block bounds so scrolling and fixed content share one address space.
// Index formula: (y-OffsetY)*Cols + x.
type CellMap struct {
	Cols    int
	Rows    int
	OffsetY int

	cells  []Cell
	filled []bool
	points []Point
}

func newCellMap(cols, offsetY, rows int) *CellMap {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	if rows > maxGridRows {
		rows = maxGridRows
	}
	return &CellMap{
		Cols:    cols,
		Rows:    rows,
		OffsetY: offsetY,
		cells:   make([]Cell, cols*rows),
		filled:  make([]bool, cols*rows),
	}
}

func (m *CellMap) index(x, y int) int {
	if m == nil || x < 0 || x >= m.Cols {
		return -1
	}
	row := y - m.OffsetY
	if row < 0 || row >= m.Rows {
		return -1
	}
	return row*m.Cols + x
}

// At returns the cell at grid coordinate (x, y). Any coordinate outside the
// grid is "no data", never an error.
func (m *CellMap) At(x, y int) (Cell, bool) {
	i := m.index(x, y)
	if i < 0 || !m.filled[i] {
		return Cell{}, false
	}
	return m.cells[i], true
}

func (m *CellMap) set(x, y int, c Cell) {
	i := m.index(x, y)
	if i < 0 {
		return
	}
	m.cells[i] = c
	m.filled[i] = true
}

// Points lists every occupied cell in row-major order.
func (m *CellMap) Points() []Point {
	if m == nil {
		return nil
	}
	return m.points
}

// Len returns the number of occupied cells.
func (m *CellMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.points)
}

func (m *CellMap) collectPoints() {
	m.points = m.points[:0]
	for row := 0; row < m.Rows; row++ {
		for x := 0; x < m.Cols; x++ {
			i := row*m.Cols + x
			if m.filled[i] {
				m.points = append(m.points, Point{X: x, Y: row + m.OffsetY, Fixed: m.cells[i].Fixed})
			}
		}
	}
}

// String dumps the grid as text, one line per row, trailing blanks trimmed.
func (m *CellMap) String() string {
	if m == nil {
		return ""
	}
	var b strings.Builder
	for row := 0; row < m.Rows; row++ {
		var line strings.Builder
		for x := 0; x < m.Cols; x++ {
			i := row*m.Cols + x
			if m.filled[i] {
				line.WriteString(m.cells[i].Char)
			} else {
				line.WriteByte(' ')
			}
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
