package synth

import (
	"strings"
	"testing"

	"github.com/xonecas/glyphgrid/internal/blob"
	"github.com/xonecas/glyphgrid/internal/layout"
)

type textMap map[[2]int]layout.Cell

func (m textMap) At(x, y int) (layout.Cell, bool) {
	c, ok := m[[2]int{x, y}]
	return c, ok
}

type maskMap map[[2]int]blob.Class

func (m maskMap) At(x, y, scrollRow int) blob.Class { return m[[2]int{x, y + scrollRow}] }

func baseEnv() *Env {
	return &Env{Cols: 40, Rows: 12, Aspect: 2, Time: 1.25, Cursor: NewCursorState(DefaultMaxRipples)}
}

func TestGlyphDeterministic(t *testing.T) {
	s := New(DefaultOptions())
	env := baseEnv()
	env.Cursor.Move(10, 4, env.Cols, env.Rows)
	for y := 0; y < env.Rows; y++ {
		for x := 0; x < env.Cols; x++ {
			a := s.Glyph(x, y, env)
			b := s.Glyph(x, y, env)
			if a != b {
				t.Fatalf("(%d,%d): %+v != %+v", x, y, a, b)
			}
		}
	}
}

func TestFixedTextWinsRegardlessOfTimeAndCursor(t *testing.T) {
	res := layout.Layout([]layout.TextBlock{{Text: "HI", Fixed: true}}, 10, 5)
	s := New(DefaultOptions())
	for _, tm := range []float64{0, 0.5, 17, 1e4} {
		env := &Env{Cols: 10, Rows: 5, Aspect: 2, Time: tm, ScrollRow: 3, Cursor: NewCursorState(4), Text: res.Cells}
		env.Cursor.Move(0, 0, 10, 5)
		env.Cursor.Active = true
		env.Cursor.Ripples.Add(ClickRipple{Born: tm, Lifespan: 1, Intensity: 2, SpeedFactor: 1})
		if g := s.Glyph(0, 0, env); g.Char != "H" || g.Layer != LayerText {
			t.Fatalf("t=%v: got %+v", tm, g)
		}
		if g := s.Glyph(1, 0, env); g.Char != "I" {
			t.Fatalf("t=%v: got %+v", tm, g)
		}
	}
}

func TestScrollingTextFollowsScrollRow(t *testing.T) {
	s := New(DefaultOptions())
	env := baseEnv()
	env.Text = textMap{{5, 9}: {Char: "A", Bold: true, Link: true}}
	env.ScrollRow = 6
	g := s.Glyph(5, 3, env)
	if g.Char != "A" || g.Style != Bold|Link {
		t.Fatalf("got %+v", g)
	}
	env.ScrollRow = 0
	if g := s.Glyph(5, 3, env); g.Layer == LayerText {
		t.Fatal("scrolling text must not appear at its unscrolled row")
	}
}

func TestFixedCellIgnoredAtScrolledRow(t *testing.T) {
	s := New(DefaultOptions())
	env := baseEnv()
	env.Text = textMap{{5, 9}: {Char: "F", Fixed: true}}
	env.ScrollRow = 6
	if g := s.Glyph(5, 3, env); g.Layer == LayerText {
		t.Fatalf("fixed cell leaked through scroll lookup: %+v", g)
	}
}

func TestGutterIsBlank(t *testing.T) {
	s := New(DefaultOptions())
	env := baseEnv()
	for y := 0; y < env.Rows; y++ {
		for _, x := range []int{0, 1, env.Cols - 2, env.Cols - 1} {
			if g := s.Glyph(x, y, env); g != Blank {
				t.Fatalf("(%d,%d) = %+v", x, y, g)
			}
		}
	}
}

func TestGutterDoesNotHideText(t *testing.T) {
	s := New(DefaultOptions())
	env := baseEnv()
	env.Text = textMap{{0, 0}: {Char: "x", Fixed: true}}
	if g := s.Glyph(0, 0, env); g.Char != "x" {
		t.Fatalf("got %+v", g)
	}
}

func TestBlobLayers(t *testing.T) {
	s := New(DefaultOptions())
	env := baseEnv()
	env.ScrollRow = 2
	env.Mask = maskMap{{10, 7}: blob.Interior, {11, 7}: blob.Border}
	if g := s.Glyph(10, 5, env); g.Char != " " || g.Layer != LayerBlob {
		t.Fatalf("interior = %+v", g)
	}
	if g := s.Glyph(11, 5, env); g.Layer != LayerBlob {
		t.Fatalf("border = %+v", g)
	}
	if g := s.Glyph(12, 5, env); g.Layer != LayerField {
		t.Fatalf("background = %+v", g)
	}
}

func TestOutlineMostlyBlank(t *testing.T) {
	s := New(DefaultOptions())
	blank := 0
	total := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 80; x++ {
			total++
			if s.outline(x, y, 0.7).Char == " " {
				blank++
			}
		}
	}
	if blank*2 < total {
		t.Fatalf("outline drew %d of %d cells", total-blank, total)
	}
	if blank == total {
		t.Fatal("outline drew nothing")
	}
}

func TestFieldStaysInRange(t *testing.T) {
	s := New(DefaultOptions())
	env := baseEnv()
	env.Cols, env.Rows = 120, 40
	for y := 0; y < env.Rows; y++ {
		for x := 0; x < env.Cols; x++ {
			v := s.Field(x, y, env)
			if v < 0 || v > 1 {
				t.Fatalf("field(%d,%d) = %v", x, y, v)
			}
			g := s.Glyph(x, y, env)
			if !strings.Contains(DefaultRamp, g.Char) {
				t.Fatalf("glyph %q not in ramp", g.Char)
			}
		}
	}
}

func TestClickRippleChangesField(t *testing.T) {
	s := New(DefaultOptions())
	env := baseEnv()
	env.Cursor.InWindow = false
	before := s.Field(20, 6, env)
	env.Cursor.Ripples.Add(ClickRipple{X: 20, Y: 6, Born: env.Time, Lifespan: 1, Intensity: 1, SpeedFactor: 1})
	after := s.Field(20, 6, env)
	if after <= before && before < 1 {
		t.Fatalf("ripple at its centre should raise the field: %v -> %v", before, after)
	}
	env.Time += 2
	expired := s.Field(20, 6, env)
	env.Cursor.Ripples.Clear()
	if plain := s.Field(20, 6, env); plain != expired {
		t.Fatalf("expired ripple still contributes: %v vs %v", expired, plain)
	}
}

func TestWhiteOverlayBlanksEverything(t *testing.T) {
	s := New(DefaultOptions())
	env := baseEnv()
	env.Text = textMap{{5, 5}: {Char: "T", Fixed: true}}
	env.Cursor.WhiteOverlay = true
	for y := 0; y < env.Rows; y++ {
		for x := 0; x < env.Cols; x++ {
			if g := s.Glyph(x, y, env); g != Blank {
				t.Fatalf("(%d,%d) = %+v", x, y, g)
			}
		}
	}
}

func TestWhiteOutGrowsFromOrigin(t *testing.T) {
	s := New(DefaultOptions())
	env := baseEnv()
	env.Text = textMap{
		{20, 6}: {Char: "c", Fixed: true},
		{39, 0}: {Char: "k", Fixed: true, Link: true},
	}
	nx, ny := Normalize(20, 6, env.Cols, env.Rows)
	env.Cursor.Transition = &Transition{Kind: WhiteOut, Start: 1, Duration: 1, CX: nx, CY: ny}

	env.Time = 1.5
	if g := s.Glyph(20, 6, env); g != Blank {
		t.Fatalf("centre should be blank mid-whiteout: %+v", g)
	}
	g := s.Glyph(39, 0, env)
	if g.Char != "k" {
		t.Fatalf("corner should still be drawn: %+v", g)
	}
	if g.Style&Link != 0 {
		t.Fatal("link style should be suppressed during a transition")
	}

	env.Time = 2.5
	if g := s.Glyph(39, 0, env); g.Style&Link == 0 {
		t.Fatal("link style should return once the transition is done")
	}
}

func TestWhiteInShrinks(t *testing.T) {
	s := New(DefaultOptions())
	env := baseEnv()
	env.Text = textMap{{20, 6}: {Char: "c", Fixed: true}}
	env.Cursor.Transition = &Transition{Kind: WhiteIn, Start: 0, Duration: 1}
	env.Time = 0
	if g := s.Glyph(20, 6, env); g != Blank {
		t.Fatalf("start of white-in is fully blank: %+v", g)
	}
	env.Time = 0.999
	if g := s.Glyph(5, 0, env); g.Layer != LayerField {
		t.Fatalf("edge should be drawn near the end of a white-in: %+v", g)
	}
}

func TestDissolveIsSeeded(t *testing.T) {
	s := New(DefaultOptions())
	env := baseEnv()
	env.Cursor.Transition = &Transition{Kind: WhiteOut, Start: 0, Duration: 4}
	env.Time = 1.3
	env.FrameSeed = 99
	first := make([]Glyph, 0, env.Cols*env.Rows)
	for y := 0; y < env.Rows; y++ {
		for x := 0; x < env.Cols; x++ {
			first = append(first, s.Glyph(x, y, env))
		}
	}
	i := 0
	for y := 0; y < env.Rows; y++ {
		for x := 0; x < env.Cols; x++ {
			if g := s.Glyph(x, y, env); g != first[i] {
				t.Fatalf("(%d,%d) not reproducible", x, y)
			}
			i++
		}
	}
}

func TestCustomRamp(t *testing.T) {
	s := New(Options{Ramp: " █"})
	if got := s.Ramp(); len(got) != 2 || got[1] != "█" {
		t.Fatalf("ramp = %q", got)
	}
	if got := New(Options{Ramp: "x"}).Ramp(); len(got) != len(DefaultRamp) {
		t.Fatalf("short ramp should fall back, got %q", got)
	}
}

func TestCachedMatchesDirect(t *testing.T) {
	s := New(DefaultOptions())
	env := baseEnv()
	c := NewFrameCache(64)
	for i := 0; i < 2; i++ {
		for x := 0; x < 20; x++ {
			if got, want := s.Cached(c, x, 3, env), s.Glyph(x, 3, env); got != want {
				t.Fatalf("cached (%d,3) = %+v, want %+v", x, got, want)
			}
		}
	}
	hits, misses := c.Stats()
	if hits != 20 || misses != 20 {
		t.Fatalf("hits=%d misses=%d", hits, misses)
	}
}
