package synth

import (
	"math"

	"github.com/xonecas/glyphgrid/internal/blob"
	"github.com/xonecas/glyphgrid/internal/grapheme"
)

// DefaultRamp orders glyphs from sparse to dense.
const DefaultRamp = " .,:;~-+=*!?%#&@"

// Options configures a Synthesizer.
type Options struct {
	Ramp   string
	Gutter int
	Ripple RippleShape
	// OutlineThreshold is the wave level above which a blob border cell
	// draws a glyph. Higher values thin the outline.
	OutlineThreshold float64
	// DissolveBand is the width of the noisy transition edge in
	// normalized units.
	DissolveBand float64
}

// DefaultOptions returns the stock synthesizer settings.
func DefaultOptions() Options {
	return Options{
		Ramp:             DefaultRamp,
		Gutter:           2,
		Ripple:           DefaultRippleShape(),
		OutlineThreshold: 0.62,
		DissolveBand:     0.18,
	}
}

// Synthesizer evaluates cells. It holds only configuration and is safe to
// share; all per-frame state arrives through Env.
type Synthesizer struct {
	ramp []string
	opts Options
}

// New returns a synthesizer. An empty or one-glyph ramp falls back to
// DefaultRamp.
func New(opts Options) *Synthesizer {
	d := DefaultOptions()
	ramp := grapheme.Segment(opts.Ramp)
	if len(ramp) < 2 {
		ramp = grapheme.Segment(DefaultRamp)
	}
	if opts.Gutter < 0 {
		opts.Gutter = 0
	}
	if opts.Ripple.Speed <= 0 {
		opts.Ripple.Speed = d.Ripple.Speed
	}
	if opts.Ripple.Width <= 0 {
		opts.Ripple.Width = d.Ripple.Width
	}
	if opts.OutlineThreshold <= 0 || opts.OutlineThreshold >= 1 {
		opts.OutlineThreshold = d.OutlineThreshold
	}
	if opts.DissolveBand <= 0 {
		opts.DissolveBand = d.DissolveBand
	}
	return &Synthesizer{ramp: ramp, opts: opts}
}

// Ramp returns the segmented glyph ramp.
func (s *Synthesizer) Ramp() []string { return s.ramp }

// Glyph returns the glyph of screen cell (x, y).
func (s *Synthesizer) Glyph(x, y int, env *Env) Glyph {
	cur := env.Cursor
	transitioning := false
	if cur != nil {
		if cur.WhiteOverlay {
			return Blank
		}
		if tr := cur.Transition; tr != nil && !tr.Done(env.Time) {
			transitioning = true
			if s.dissolved(x, y, tr, env) {
				return Blank
			}
		}
	}

	if env.Text != nil {
		if c, ok := env.Text.At(x, y); ok && c.Fixed {
			return s.textGlyph(c.Char, styleOf(c), transitioning)
		}
		if c, ok := env.Text.At(x, y+env.ScrollRow); ok && !c.Fixed {
			return s.textGlyph(c.Char, styleOf(c), transitioning)
		}
	}

	if g := s.opts.Gutter; x < g || x >= env.Cols-g {
		return Blank
	}

	cy := y + env.ScrollRow
	if env.Mask != nil {
		switch env.Mask.At(x, y, env.ScrollRow) {
		case blob.Interior:
			return Glyph{Char: " ", Layer: LayerBlob}
		case blob.Border:
			return s.outline(x, cy, env.Time)
		}
	}

	return Glyph{Char: s.ramp[s.rampIndex(s.Field(x, y, env), x, y)], Layer: LayerField}
}

func (s *Synthesizer) textGlyph(char string, style Style, transitioning bool) Glyph {
	if transitioning {
		style &^= Link
	}
	return Glyph{Char: char, Style: style, Layer: LayerText}
}

// dissolved reports whether the transition disc blanks (x, y). Cells in
// the edge band are blanked by seeded noise with a probability that falls
// off toward the outside of the band.
func (s *Synthesizer) dissolved(x, y int, tr *Transition, env *Env) bool {
	nx, ny := Normalize(x, y, env.Cols, env.Rows)
	d := math.Hypot(nx-tr.CX, ny-tr.CY)
	r := tr.radius(env.Time)
	band := s.opts.DissolveBand
	switch {
	case d < r-band:
		return true
	case d >= r:
		return false
	}
	return unit(x, y, env.FrameSeed) < (r-d)/band
}

// outline draws the thin animated border: two crossing waves, mostly
// resolving to blank.
func (s *Synthesizer) outline(x, y int, t float64) Glyph {
	fx, fy := float64(x), float64(y)
	w := 0.5 + 0.5*fastSin(fx*0.31+t*1.3)*fastCos(fy*0.47-t*0.9)
	if w < s.opts.OutlineThreshold {
		return Glyph{Char: " ", Layer: LayerBlob}
	}
	span := (w - s.opts.OutlineThreshold) / (1 - s.opts.OutlineThreshold)
	lo := len(s.ramp) / 4
	i := lo + int(span*float64(len(s.ramp)/2))
	return Glyph{Char: s.ramp[min(i, len(s.ramp)-1)], Layer: LayerBlob}
}

// transform maps a screen cell into the aspect-corrected field space:
// roughly [-1,1] on the shorter axis, centred on the viewport, with rows
// following the scroll position.
func transform(x, y int, env *Env) (u, v float64) {
	aspect := env.Aspect
	if aspect <= 0 {
		aspect = 2
	}
	w := float64(env.Cols)
	h := float64(env.Rows) * aspect
	scale := math.Max(math.Min(w, h)/2, 1)
	u = (float64(x) - w/2) / scale
	v = ((float64(y)+float64(env.ScrollRow))*aspect - h/2) / scale
	return u, v
}

// Field returns the procedural background level of (x, y) in [0,1].
func (s *Synthesizer) Field(x, y int, env *Env) float64 {
	t := env.Time
	u, v := transform(x, y, env)

	waveA := fastSin(u*3.1 + t*0.7 + fastSin(v*1.7+t*0.3))
	waveB := fastCos(v*2.3 - t*0.5 + u*0.8)
	r := math.Hypot(u, v)
	spiral := fastSin(r*6 - t*1.2 + math.Atan2(v, u)*2)

	val := 0.5 + (waveA+waveB+spiral)/6

	if cur := env.Cursor; cur != nil {
		if cur.InWindow {
			val += s.cursorRipple(x, y, cur, env)
		}
		val += s.clickRipples(x, y, cur, env)
	}
	return math.Min(math.Max(val, 0), 1)
}

func (s *Synthesizer) cursorRipple(x, y int, cur *CursorState, env *Env) float64 {
	aspect := max(env.Aspect, 1)
	d := math.Hypot(float64(x-cur.X), float64(y-cur.Y)*aspect)
	if d > 18 {
		return 0
	}
	falloff := 1 - d/18
	amp := 0.22
	if cur.Active {
		amp = 0.35
	}
	return amp * falloff * fastSin(d*0.9-env.Time*6)
}

func (s *Synthesizer) clickRipples(x, y int, cur *CursorState, env *Env) float64 {
	rs := cur.Ripples
	if rs.Len() == 0 {
		return 0
	}
	aspect := max(env.Aspect, 1)
	sum := 0.0
	for i := 0; i < rs.Len(); i++ {
		r := rs.At(i)
		sum += r.contribution(float64(x-r.X), float64(y-r.Y)*aspect, env.Time, s.opts.Ripple)
	}
	return sum * 0.45
}

// rampIndex quantizes a field level with a small checkerboard jitter that
// breaks up flat bands.
func (s *Synthesizer) rampIndex(val float64, x, y int) int {
	if (x+y)&1 == 1 {
		val += 0.02
	} else {
		val -= 0.02
	}
	n := len(s.ramp)
	i := int(val*float64(n-1) + 0.5)
	return min(max(i, 0), n-1)
}

// Cached evaluates through a frame cache.
func (s *Synthesizer) Cached(c *FrameCache, x, y int, env *Env) Glyph {
	if c == nil {
		return s.Glyph(x, y, env)
	}
	key := CacheKey(x, y, env.ScrollRow)
	if g, ok := c.Get(key); ok {
		return g
	}
	g := s.Glyph(x, y, env)
	c.Put(key, g)
	return g
}
