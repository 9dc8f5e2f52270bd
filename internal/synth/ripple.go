package synth

import "math"

// DefaultMaxRipples caps live click ripples.
const DefaultMaxRipples = 12

// ClickRipple is an expanding ring seeded by a press, release or touch.
// X and Y are screen cells; times are engine seconds.
type ClickRipple struct {
	X, Y        int
	Born        float64
	Lifespan    float64
	Intensity   float64
	SpeedFactor float64
}

// Expired reports whether the ripple has outlived its lifespan.
func (r ClickRipple) Expired(now float64) bool {
	return now-r.Born >= r.Lifespan
}

// RippleShape holds the ring geometry shared by all ripples.
type RippleShape struct {
	// Speed is the ring's growth in cells per second.
	Speed float64
	// Width is the ring half-width at birth, in cells.
	Width float64
}

// DefaultRippleShape returns the stock ring geometry.
func DefaultRippleShape() RippleShape {
	return RippleShape{Speed: 22, Width: 1.5}
}

// contribution is the ring's signal at a cell displaced (dx, dy) from the
// ripple centre, with dy already scaled to column units.
func (r ClickRipple) contribution(dx, dy, now float64, shape RippleShape) float64 {
	age := now - r.Born
	if age < 0 || r.Lifespan <= 0 || age >= r.Lifespan {
		return 0
	}
	progress := age / r.Lifespan
	radius := age * shape.Speed * r.SpeedFactor
	width := shape.Width * (1 + 2*progress)
	amp := r.Intensity * (1 - progress)
	d := math.Hypot(dx, dy)

	v := amp * ring(d, radius, width)
	if r.Intensity > 1.2 {
		v += amp * 0.5 * ring(d, radius*0.6, width)
	}
	return v
}

func ring(d, radius, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return math.Max(0, 1-math.Abs(d-radius)/width)
}

// Ripples is a fixed-capacity ring buffer of click ripples. Adding beyond
// capacity drops the oldest.
type Ripples struct {
	buf   []ClickRipple
	head  int
	count int
}

// NewRipples returns an empty buffer holding at most n ripples.
func NewRipples(n int) *Ripples {
	if n <= 0 {
		n = DefaultMaxRipples
	}
	return &Ripples{buf: make([]ClickRipple, n)}
}

// Add appends r, evicting the oldest ripple when full.
func (rs *Ripples) Add(r ClickRipple) {
	if rs.count == len(rs.buf) {
		rs.buf[rs.head] = r
		rs.head = (rs.head + 1) % len(rs.buf)
		return
	}
	rs.buf[(rs.head+rs.count)%len(rs.buf)] = r
	rs.count++
}

// Len returns the number of held ripples.
func (rs *Ripples) Len() int {
	if rs == nil {
		return 0
	}
	return rs.count
}

// Cap returns the buffer capacity.
func (rs *Ripples) Cap() int {
	return len(rs.buf)
}

// At returns the i-th ripple, oldest first.
func (rs *Ripples) At(i int) ClickRipple {
	return rs.buf[(rs.head+i)%len(rs.buf)]
}

// Prune drops expired ripples, keeping the rest in order. It returns the
// number removed.
func (rs *Ripples) Prune(now float64) int {
	if rs == nil {
		return 0
	}
	kept := 0
	for i := 0; i < rs.count; i++ {
		r := rs.At(i)
		if r.Expired(now) {
			continue
		}
		rs.buf[(rs.head+kept)%len(rs.buf)] = r
		kept++
	}
	removed := rs.count - kept
	rs.count = kept
	return removed
}

// Clear drops every ripple.
func (rs *Ripples) Clear() {
	rs.head, rs.count = 0, 0
}
