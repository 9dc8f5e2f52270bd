// Package scheduler paces frame synthesis and debounces expensive rebuilds.
//
// The scheduler never runs anything itself: the host calls Due on every
// repaint opportunity and renders only when it returns true, and polls for
// settled rebuilds the same way. All calls come from the host's UI loop.
package scheduler

import (
	"math"
	"time"
)

// DefaultFPS is the target frame rate when none is configured.
const DefaultFPS = 30

// DefaultSettle is the quiet period before a debounced rebuild runs.
const DefaultSettle = 100 * time.Millisecond

// Tier is a scroll-speed quality level.
type Tier uint8

const (
	Still Tier = iota
	Moderate
	Fast
)

// Velocity thresholds in rows per second.
const (
	ModerateVelocity = 6
	FastVelocity     = 24
)

// TierFor classifies a scroll velocity.
func TierFor(velocity float64) Tier {
	v := math.Abs(velocity)
	switch {
	case v < ModerateVelocity:
		return Still
	case v < FastVelocity:
		return Moderate
	default:
		return Fast
	}
}

// Skip is the column stride: only every Skip-th column is synthesized.
func (t Tier) Skip() int {
	switch t {
	case Moderate:
		return 2
	case Fast:
		return 3
	default:
		return 1
	}
}

// RowChunk is how many rows share one synthesized row of background.
func (t Tier) RowChunk() int {
	switch t {
	case Moderate:
		return 2
	case Fast:
		return 4
	default:
		return 1
	}
}

func (t Tier) String() string {
	switch t {
	case Moderate:
		return "moderate"
	case Fast:
		return "fast"
	default:
		return "still"
	}
}

// Scheduler gates frames to a fixed interval and debounces rebuilds.
type Scheduler struct {
	interval time.Duration
	next     time.Time
	frames   uint64
	stopped  bool

	settle  time.Duration
	pending bool
	due     time.Time
}

// New returns a scheduler targeting fps frames per second. Non-positive
// values use the defaults.
func New(fps int, settle time.Duration) *Scheduler {
	s := &Scheduler{}
	s.SetFPS(fps)
	if settle <= 0 {
		settle = DefaultSettle
	}
	s.settle = settle
	return s
}

// SetFPS changes the target rate. The next frame is due immediately.
func (s *Scheduler) SetFPS(fps int) {
	if fps <= 0 {
		fps = DefaultFPS
	}
	s.interval = time.Second / time.Duration(fps)
	s.next = time.Time{}
}

// Interval returns the target frame interval.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Due reports whether a frame should be rendered at now. Deadlines advance
// by whole intervals so rounding in the host's timer does not drift the
// cadence; a scheduler that falls more than two intervals behind
// resynchronizes instead of bursting.
func (s *Scheduler) Due(now time.Time) bool {
	if s.stopped {
		return false
	}
	if s.next.IsZero() {
		s.next = now.Add(s.interval)
		s.frames++
		return true
	}
	if now.Before(s.next) {
		return false
	}
	s.next = s.next.Add(s.interval)
	if now.Sub(s.next) > 2*s.interval {
		s.next = now.Add(s.interval)
	}
	s.frames++
	return true
}

// Frames returns how many frames Due has admitted.
func (s *Scheduler) Frames() uint64 { return s.frames }

// Stop makes Due return false until Start is called.
func (s *Scheduler) Stop() {
	s.stopped = true
	s.pending = false
}

// Start resumes after Stop.
func (s *Scheduler) Start() {
	s.stopped = false
	s.next = time.Time{}
}

// Stopped reports whether the scheduler is stopped.
func (s *Scheduler) Stopped() bool { return s.stopped }

// Invalidate requests a rebuild once input settles. Repeated calls push the
// deadline back, so at most one rebuild runs per settle window.
func (s *Scheduler) Invalidate(now time.Time) {
	if s.stopped {
		return
	}
	s.pending = true
	s.due = now.Add(s.settle)
}

// Poll reports, exactly once per settled invalidation, that the rebuild
// should run now.
func (s *Scheduler) Poll(now time.Time) bool {
	if !s.pending || now.Before(s.due) {
		return false
	}
	s.pending = false
	return true
}

// Pending reports whether a rebuild is waiting to settle.
func (s *Scheduler) Pending() bool { return s.pending }

// Cancel drops a pending rebuild.
func (s *Scheduler) Cancel() { s.pending = false }
