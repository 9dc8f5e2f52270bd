package blob

import "math"

// Options tunes the mask geometry.
type Options struct {
	// Radius is the blob radius in cells.
	Radius float64
	// Epsilon is the border band width inside Radius.
	Epsilon float64
	// VerticalWeight scales row distance; values above 1 flatten the blob.
	VerticalWeight float64
	// BucketScale sets the spatial hash bucket size as a multiple of Radius.
	BucketScale float64
	// TileSize is the side of one classification tile.
	TileSize int
	// LookaheadBelow and LookaheadAbove extend the covered rows past the
	// viewport, in viewport heights, so small scrolls reuse the mask.
	LookaheadBelow int
	LookaheadAbove int
}

// DefaultOptions returns the stock geometry.
func DefaultOptions() Options {
	return Options{
		Radius:         4,
		Epsilon:        1.5,
		VerticalWeight: 1.5,
		BucketScale:    2,
		TileSize:       16,
		LookaheadBelow: 2,
		LookaheadAbove: 1,
	}
}

// normalized fills zero or invalid fields from the defaults.
func (o Options) normalized() Options {
	d := DefaultOptions()
	if !(o.Radius > 0) || math.IsInf(o.Radius, 0) {
		o.Radius = d.Radius
	}
	if !(o.Epsilon >= 0) || o.Epsilon > o.Radius {
		o.Epsilon = min(d.Epsilon, o.Radius)
	}
	if !(o.VerticalWeight > 0) {
		o.VerticalWeight = d.VerticalWeight
	}
	if !(o.BucketScale >= 1) {
		o.BucketScale = d.BucketScale
	}
	if o.TileSize <= 0 {
		o.TileSize = d.TileSize
	}
	if o.LookaheadBelow < 0 {
		o.LookaheadBelow = 0
	}
	if o.LookaheadAbove < 0 {
		o.LookaheadAbove = 0
	}
	return o
}

// reach is the widest integer cell distance a point can influence.
func (o Options) reach() int {
	return int(math.Ceil(o.Radius))
}

// reachY is the widest row distance a point can influence.
func (o Options) reachY() int {
	return int(math.Ceil(o.Radius / o.VerticalWeight))
}

// Classify applies the distance rule to one displacement from a text point.
func Classify(dx, dy float64, opts Options) Class {
	opts = opts.normalized()
	return classify(dx*dx+sq(dy*opts.VerticalWeight), opts)
}

func classify(d2 float64, o Options) Class {
	inner := o.Radius - o.Epsilon
	switch {
	case d2 < inner*inner:
		return Interior
	case d2 < o.Radius*o.Radius:
		return Border
	default:
		return Background
	}
}

func sq(v float64) float64 { return v * v }
