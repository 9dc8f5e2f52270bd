// Package scroll owns the scroll offset and its momentum.
package scroll

import (
	"math"
	"time"
)

// Options tunes scroll physics. Offsets are in grid rows.
type Options struct {
	// Friction is the velocity multiplier per 1/60 s of free motion.
	Friction float64
	// WheelGain converts a wheel delta into fling velocity (rows/s per row).
	WheelGain float64
	// MinVelocity is the speed below which motion stops, in rows/s.
	MinVelocity float64
	// InputGrace holds momentum back while input is still arriving.
	InputGrace time.Duration
	// ChunkRows is the scroll chunk size.
	ChunkRows int
}

// DefaultOptions returns the stock physics.
func DefaultOptions() Options {
	return Options{
		Friction:    0.92,
		WheelGain:   8,
		MinVelocity: 0.5,
		InputGrace:  50 * time.Millisecond,
		ChunkRows:   4,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Friction <= 0 || o.Friction >= 1 {
		o.Friction = d.Friction
	}
	if o.WheelGain < 0 {
		o.WheelGain = d.WheelGain
	}
	if o.MinVelocity <= 0 {
		o.MinVelocity = d.MinVelocity
	}
	if o.InputGrace < 0 {
		o.InputGrace = d.InputGrace
	}
	if o.ChunkRows <= 0 {
		o.ChunkRows = d.ChunkRows
	}
	return o
}

// touchRest is how long a finger may rest before lift-off cancels the fling.
const touchRest = 100 * time.Millisecond

// Controller is the scroll state machine. It is not safe for concurrent use.
type Controller struct {
	opts Options

	offset    float64
	velocity  float64
	maxScroll float64

	lastInput time.Time
	lastTick  time.Time

	touching bool
	touchY   float64
	touchAt  time.Time

	chunk int
	// OnChunk is called after the scroll chunk changes.
	OnChunk func(prev, next int)
}

// New returns a controller at offset zero with an empty range.
func New(opts Options) *Controller {
	return &Controller{opts: opts.normalized()}
}

// SetRange sets the scrollable extent from content and viewport heights.
func (c *Controller) SetRange(contentRows, viewRows int) {
	c.maxScroll = float64(max(contentRows-viewRows, 0))
	c.clamp()
	c.notify()
}

// SetOffset jumps to offset and stops any motion.
func (c *Controller) SetOffset(offset float64) {
	c.offset = offset
	c.velocity = 0
	c.clamp()
	c.notify()
}

// Wheel applies a wheel delta in rows and seeds a fling from it.
func (c *Controller) Wheel(delta float64, now time.Time) {
	c.offset += delta
	c.velocity = delta * c.opts.WheelGain
	c.lastInput = now
	c.clamp()
	c.notify()
}

// TouchStart begins a drag at screen row y.
func (c *Controller) TouchStart(y float64, now time.Time) {
	c.touching = true
	c.velocity = 0
	c.touchY = y
	c.touchAt = now
	c.lastInput = now
}

// TouchMove drags the content with the finger.
func (c *Controller) TouchMove(y float64, now time.Time) {
	if !c.touching {
		c.TouchStart(y, now)
		return
	}
	d := c.touchY - y
	c.offset += d
	if dt := now.Sub(c.touchAt).Seconds(); dt > 0 {
		c.velocity = d / dt
	}
	c.touchY = y
	c.touchAt = now
	c.lastInput = now
	c.clamp()
	c.notify()
}

// TouchEnd releases the drag; the last drag velocity carries on as a fling
// unless the finger had come to rest.
func (c *Controller) TouchEnd(now time.Time) {
	if !c.touching {
		return
	}
	c.touching = false
	if now.Sub(c.touchAt) > touchRest {
		c.velocity = 0
	}
	c.lastInput = now
}

// Tick advances momentum to now and reports whether the offset moved.
func (c *Controller) Tick(now time.Time) bool {
	prev := c.lastTick
	c.lastTick = now
	if prev.IsZero() || c.touching || c.velocity == 0 {
		return false
	}
	if now.Sub(c.lastInput) < c.opts.InputGrace {
		return false
	}
	dt := now.Sub(prev).Seconds()
	if dt <= 0 {
		return false
	}

	before := c.offset
	c.offset += c.velocity * dt
	c.velocity *= math.Pow(c.opts.Friction, dt*60)
	if math.Abs(c.velocity) < c.opts.MinVelocity {
		c.velocity = 0
	}
	c.clamp()
	c.notify()
	return c.offset != before
}

// clamp keeps the offset in range and kills velocity pushing past a bound.
func (c *Controller) clamp() {
	switch {
	case c.offset <= 0:
		c.offset = 0
		if c.velocity < 0 {
			c.velocity = 0
		}
	case c.offset >= c.maxScroll:
		c.offset = c.maxScroll
		if c.velocity > 0 {
			c.velocity = 0
		}
	}
	if c.maxScroll == 0 {
		c.velocity = 0
	}
}

func (c *Controller) notify() {
	chunk := c.Chunk()
	if chunk == c.chunk {
		return
	}
	old := c.chunk
	c.chunk = chunk
	if c.OnChunk != nil {
		c.OnChunk(old, chunk)
	}
}

// Offset returns the exact offset in rows.
func (c *Controller) Offset() float64 { return c.offset }

// Velocity returns the current velocity in rows/s.
func (c *Controller) Velocity() float64 { return c.velocity }

// MaxScroll returns the largest reachable offset.
func (c *Controller) MaxScroll() float64 { return c.maxScroll }

// Row returns the first content row in view.
func (c *Controller) Row() int { return int(math.Floor(c.offset)) }

// Chunk returns the offset quantized to ChunkRows.
func (c *Controller) Chunk() int { return c.Row() / c.opts.ChunkRows }

// Moving reports whether momentum or a drag is active.
func (c *Controller) Moving() bool { return c.velocity != 0 || c.touching }
