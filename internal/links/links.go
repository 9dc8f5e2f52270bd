// Package links indexes the clickable runs produced by a layout pass and
// answers screen-space hit tests against them.
package links

import (
	"sort"

	"github.com/xonecas/glyphgrid/internal/layout"
)

// Rect is a link run in screen coordinates.
type Rect struct {
	URL     string
	TextKey string
	StartX  int
	EndX    int
	Y       int
	Fixed   bool
}

// Contains reports whether screen cell (x, y) is inside the run.
func (r Rect) Contains(x, y int) bool {
	return y == r.Y && x >= r.StartX && x <= r.EndX
}

// Registry holds one layout pass's links split by scroll behaviour.
// Scrolling links are kept sorted by row for range queries.
type Registry struct {
	fixed     []layout.LinkPosition
	scrolling []layout.LinkPosition
	byKey     map[string][]int
	all       []layout.LinkPosition
}

// New builds a registry. The input slice is not retained.
func New(positions []layout.LinkPosition) *Registry {
	r := &Registry{
		all:   append([]layout.LinkPosition(nil), positions...),
		byKey: make(map[string][]int),
	}
	for i, p := range r.all {
		r.byKey[p.TextKey] = append(r.byKey[p.TextKey], i)
		if p.Fixed {
			r.fixed = append(r.fixed, p)
		} else {
			r.scrolling = append(r.scrolling, p)
		}
	}
	sort.SliceStable(r.scrolling, func(i, j int) bool {
		return r.scrolling[i].Y < r.scrolling[j].Y
	})
	return r
}

// Len returns the number of link runs.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.all)
}

// Fixed returns the viewport-locked runs.
func (r *Registry) Fixed() []layout.LinkPosition {
	if r == nil {
		return nil
	}
	return r.fixed
}

// Scrolling returns the scroll-following runs, ordered by row.
func (r *Registry) Scrolling() []layout.LinkPosition {
	if r == nil {
		return nil
	}
	return r.scrolling
}

// ByKey lists the runs belonging to one text block, in layout order.
func (r *Registry) ByKey(textKey string) []layout.LinkPosition {
	if r == nil {
		return nil
	}
	idx := r.byKey[textKey]
	out := make([]layout.LinkPosition, 0, len(idx))
	for _, i := range idx {
		out = append(out, r.all[i])
	}
	return out
}

// Rects returns the runs visible in a viewport of the given height scrolled
// to scrollRow. Fixed runs come first.
func (r *Registry) Rects(scrollRow, rows int) []Rect {
	if r == nil || rows <= 0 {
		return nil
	}
	var out []Rect
	for _, p := range r.fixed {
		if p.Y >= 0 && p.Y < rows {
			out = append(out, toRect(p, 0))
		}
	}
	lo := sort.Search(len(r.scrolling), func(i int) bool {
		return r.scrolling[i].Y >= scrollRow
	})
	for _, p := range r.scrolling[lo:] {
		if p.Y >= scrollRow+rows {
			break
		}
		out = append(out, toRect(p, scrollRow))
	}
	return out
}

// HitTest returns the link under screen cell (x, y). Fixed runs win over
// scrolling runs that share the cell.
func (r *Registry) HitTest(x, y, scrollRow int) (Rect, bool) {
	if r == nil {
		return Rect{}, false
	}
	for _, p := range r.fixed {
		if rect := toRect(p, 0); rect.Contains(x, y) {
			return rect, true
		}
	}
	row := y + scrollRow
	lo := sort.Search(len(r.scrolling), func(i int) bool {
		return r.scrolling[i].Y >= row
	})
	for _, p := range r.scrolling[lo:] {
		if p.Y != row {
			break
		}
		if rect := toRect(p, scrollRow); rect.Contains(x, y) {
			return rect, true
		}
	}
	return Rect{}, false
}

func toRect(p layout.LinkPosition, scrollRow int) Rect {
	return Rect{
		URL:     p.URL,
		TextKey: p.TextKey,
		StartX:  p.StartX,
		EndX:    p.EndX,
		Y:       p.Y - scrollRow,
		Fixed:   p.Fixed,
	}
}
