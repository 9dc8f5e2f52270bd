package synth

import "math"

// TransitionKind selects the direction of a whole-surface dissolve.
type TransitionKind uint8

const (
	// WhiteOut grows a blank disc until the surface is empty.
	WhiteOut TransitionKind = iota + 1
	// WhiteIn shrinks a blank disc until the surface is fully drawn.
	WhiteIn
)

func (k TransitionKind) String() string {
	switch k {
	case WhiteOut:
		return "whiteout"
	case WhiteIn:
		return "whitein"
	default:
		return "none"
	}
}

// Transition is a timed dissolve centred on a normalized point.
type Transition struct {
	Kind     TransitionKind
	Start    float64
	Duration float64
	// CX and CY are the origin in normalized [-1,1] coordinates.
	CX, CY float64
}

// Progress returns elapsed fraction in [0,1].
func (t *Transition) Progress(now float64) float64 {
	if t == nil || t.Duration <= 0 {
		return 1
	}
	return math.Min(math.Max((now-t.Start)/t.Duration, 0), 1)
}

// Done reports whether the transition has run its course.
func (t *Transition) Done(now float64) bool {
	return t == nil || now-t.Start >= t.Duration
}

// radius is the blank disc radius at now. The disc reaches the corner
// farthest from the origin so a whiteout always covers everything.
func (t *Transition) radius(now float64) float64 {
	reach := math.Hypot(1+math.Abs(t.CX), 1+math.Abs(t.CY))
	p := t.Progress(now)
	if t.Kind == WhiteIn {
		p = 1 - p
	}
	return p * reach
}

// CursorState is the pointer and transition state read by every cell.
type CursorState struct {
	// X and Y are the pointer's grid cell.
	X, Y int
	// NX and NY are the pointer in normalized [-1,1] surface coordinates.
	NX, NY float64

	InWindow bool
	// Active is set while a button or touch is held.
	Active bool

	Ripples *Ripples

	Transition *Transition
	// WhiteOverlay blanks the whole surface; it is held after a whiteout
	// completes until a white-in starts.
	WhiteOverlay bool
}

// NewCursorState returns a cursor outside the surface with a ripple buffer
// of the given capacity.
func NewCursorState(maxRipples int) *CursorState {
	return &CursorState{Ripples: NewRipples(maxRipples)}
}

// Move places the pointer at grid cell (x, y) of a cols×rows surface.
func (c *CursorState) Move(x, y, cols, rows int) {
	c.X, c.Y = x, y
	c.NX, c.NY = Normalize(x, y, cols, rows)
	c.InWindow = x >= 0 && y >= 0 && x < cols && y < rows
}

// Leave marks the pointer as outside the surface.
func (c *CursorState) Leave() {
	c.InWindow = false
	c.Active = false
}

// Normalize maps a grid cell to [-1,1] on both axes.
func Normalize(x, y, cols, rows int) (float64, float64) {
	nx, ny := 0.0, 0.0
	if cols > 1 {
		nx = 2*float64(x)/float64(cols-1) - 1
	}
	if rows > 1 {
		ny = 2*float64(y)/float64(rows-1) - 1
	}
	return nx, ny
}
