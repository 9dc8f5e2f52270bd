package blob

import (
	"math"
	"testing"

	"github.com/xonecas/glyphgrid/internal/layout"
)

type pointSource []layout.Point

func (s pointSource) Points() []layout.Point { return s }

func expected(dx, dy int, o Options) Class {
	d2 := math.Pow(float64(dx), 2) + math.Pow(float64(dy)*o.VerticalWeight, 2)
	switch {
	case d2 < math.Pow(o.Radius-o.Epsilon, 2):
		return Interior
	case d2 < o.Radius*o.Radius:
		return Border
	default:
		return Background
	}
}

func TestSinglePointMonotonic(t *testing.T) {
	o := DefaultOptions()
	const px, py = 20, 10
	m := Build(pointSource{{X: px, Y: py}}, 0, 40, 20, o)

	for y := py - 8; y <= py+8; y++ {
		for x := px - 8; x <= px+8; x++ {
			want := expected(x-px, y-py, o)
			if got := m.At(x, y, 0); got != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if m.At(px, py, 0) != Interior {
		t.Fatal("text cell should be interior")
	}
}

func TestVerticalWeightFlattens(t *testing.T) {
	o := DefaultOptions()
	// Three cells away: horizontally still border, vertically 4.5 is out.
	if got := Classify(3, 0, o); got != Border {
		t.Errorf("horizontal 3 = %v", got)
	}
	if got := Classify(0, 3, o); got != Background {
		t.Errorf("vertical 3 = %v", got)
	}
	if got := Classify(0, 1, o); got != Interior {
		t.Errorf("vertical 1 = %v", got)
	}
}

func TestClassifyBands(t *testing.T) {
	o := Options{Radius: 5, Epsilon: 1.5, VerticalWeight: 1}
	tests := []struct {
		dx   float64
		want Class
	}{
		{0, Interior},
		{3.49, Interior},
		{3.5, Border},
		{4.99, Border},
		{5, Background},
		{9, Background},
	}
	for _, tt := range tests {
		if got := Classify(tt.dx, 0, o); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.dx, got, tt.want)
		}
	}
}

// nearest combines the classes of every point: interior beats border.
func nearest(x, y int, pts []layout.Point, o Options) Class {
	want := Background
	for _, p := range pts {
		switch expected(x-p.X, y-p.Y, o) {
		case Interior:
			return Interior
		case Border:
			want = Border
		}
	}
	return want
}

func TestTilesMatchBruteForce(t *testing.T) {
	o := DefaultOptions()
	o.TileSize = 5
	scrolling := []layout.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
		{X: 30, Y: 12}, {X: 31, Y: 13},
		{X: 39, Y: 40},
	}
	fixed := []layout.Point{{X: 5, Y: 2, Fixed: true}}
	const buildRow, cols, rows = 6, 40, 10
	m := Build(append(pointSource{}, append(scrolling, fixed...)...), buildRow, cols, rows, o)

	// One mask serves every scroll row inside its band.
	for _, scrollRow := range []int{buildRow, buildRow + 3, buildRow - 2} {
		for y := -2; y < rows+2; y++ {
			for x := -2; x < cols+2; x++ {
				want := Background
				if x >= 0 && x < cols {
					if cy := y + scrollRow; cy >= m.Y0 && cy < m.Y0+m.H {
						want = nearest(x, cy, scrolling, o)
					}
					if want != Interior && y >= 0 && y < rows {
						if c := nearest(x, y, fixed, o); c != Background {
							want = c
						}
					}
				}
				if got := m.At(x, y, scrollRow); got != want {
					t.Fatalf("scroll %d (%d,%d) = %v, want %v", scrollRow, x, y, got, want)
				}
			}
		}
	}
}

func TestFixedPointsStayOnScreen(t *testing.T) {
	pts := pointSource{{X: 10, Y: 3, Fixed: true}}
	m := Build(pts, 0, 20, 10, DefaultOptions())
	for _, scrollRow := range []int{0, 1, 3} {
		if got := m.At(10, 3, scrollRow); got != Interior {
			t.Errorf("scroll %d: fixed cell = %v, want interior", scrollRow, got)
		}
		if got := m.At(10, 0, scrollRow); got != Background {
			t.Errorf("scroll %d: three rows above = %v, want background", scrollRow, got)
		}
	}
	far := Build(pts, 50, 20, 10, DefaultOptions())
	if far.At(10, 3, 50) != Interior {
		t.Fatal("fixed point should not depend on the build scroll row")
	}
}

func TestScrollingPointsFollowScroll(t *testing.T) {
	pts := pointSource{{X: 10, Y: 8}}
	m := Build(pts, 0, 20, 10, DefaultOptions())
	if m.At(10, 8, 0) != Interior || m.At(10, 5, 3) != Interior {
		t.Fatal("scrolling point should move up with the scroll row")
	}
	if m.At(10, 8, 3) == Interior {
		t.Fatal("scrolling point stuck to its screen row")
	}
}

func TestCoverage(t *testing.T) {
	m := Build(pointSource{{X: 1, Y: 1}}, 20, 10, 10, DefaultOptions())
	if m.Y0 != 10 || m.H != 40 {
		t.Fatalf("covered rows %d+%d", m.Y0, m.H)
	}
	if !m.Covers(20, 30) || !m.Covers(10, 50) || m.Covers(5, 15) {
		t.Fatal("Covers mismatch")
	}
	if m.Points() != 0 || m.Tiles() != 0 {
		t.Fatalf("point far above the band should be dropped: %d points, %d tiles", m.Points(), m.Tiles())
	}
}

func TestEmptyAndNil(t *testing.T) {
	var m *Mask
	if m.At(0, 0, 0) != Background || m.Covers(0, 1) {
		t.Fatal("nil mask")
	}
	m = Build(nil, 0, 10, 10, DefaultOptions())
	if m.At(3, 3, 0) != Background {
		t.Fatal("nil source")
	}
	m = Build(pointSource{{X: 1, Y: 1}}, 0, 0, 0, DefaultOptions())
	if m.At(1, 1, 0) != Background {
		t.Fatal("zero viewport")
	}
}

func TestOptionsNormalized(t *testing.T) {
	o := Options{Radius: -1, Epsilon: 99, TileSize: -4}.normalized()
	d := DefaultOptions()
	if o.Radius != d.Radius || o.Epsilon != d.Epsilon || o.TileSize != d.TileSize || o.VerticalWeight != d.VerticalWeight {
		t.Fatalf("normalized = %+v", o)
	}
}
