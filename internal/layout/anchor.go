package layout

// AnchorOrigin returns the grid origin of a block anchored at point of the
// bounds b, displaced by off. Midpoints use integer floor division.
// Unknown points resolve as TopLeft.
func AnchorOrigin(point AnchorPoint, b Bounds, off Offset) (int, int) {
	midX := floorDiv(b.MinX+b.MaxX, 2)
	midY := floorDiv(b.MinY+b.MaxY, 2)

	var x, y int
	switch point {
	case TopCenter:
		x, y = midX, b.MinY
	case TopRight:
		x, y = b.MaxX, b.MinY
	case MiddleLeft:
		x, y = b.MinX, midY
	case Center:
		x, y = midX, midY
	case MiddleRight:
		x, y = b.MaxX, midY
	case BottomLeft:
		x, y = b.MinX, b.MaxY
	case BottomCenter:
		x, y = midX, b.MaxY
	case BottomRight:
		x, y = b.MaxX, b.MaxY
	default:
		x, y = b.MinX, b.MinY
	}
	return x + off.X, y + off.Y
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// resolveOrder returns block indices in dependency order together with
// the set of blocks that sit on an anchor cycle. deps[i] is the index of
// the block i is anchored to, or -1.
//
// Each block depends on at most one other, so the dependency graph is a
// functional graph: cycles are found by walking the chain from every node.
// Cycle members lose their dependency and are placed literally; blocks
// hanging off a cycle are still resolved after it.
func resolveOrder(deps []int) (order []int, cyclic []bool) {
	n := len(deps)
	cyclic = make([]bool, n)

	const (
		unvisited = iota
		onPath
		done
	)
	color := make([]int, n)
	for start := 0; start < n; start++ {
		if color[start] != unvisited {
			continue
		}
		var path []int
		v := start
		for v >= 0 && color[v] == unvisited {
			color[v] = onPath
			path = append(path, v)
			v = deps[v]
		}
		if v >= 0 && color[v] == onPath {
			// Everything from v to the end of path is the cycle.
			for i := len(path) - 1; i >= 0; i-- {
				cyclic[path[i]] = true
				if path[i] == v {
					break
				}
			}
		}
		for _, p := range path {
			color[p] = done
		}
	}

	// Kahn's algorithm, always taking the lowest ready index so that
	// independent blocks keep their declaration order.
	indeg := make([]int, n)
	children := make([][]int, n)
	for i, d := range deps {
		if d >= 0 && !cyclic[i] {
			indeg[i]++
			children[d] = append(children[d], i)
		}
	}
	ready := make([]bool, n)
	for i := range indeg {
		ready[i] = indeg[i] == 0
	}
	order = make([]int, 0, n)
	emitted := make([]bool, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if ready[i] && !emitted[i] {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}
		emitted[next] = true
		order = append(order, next)
		for _, c := range children[next] {
			indeg[c]--
			if indeg[c] == 0 {
				ready[c] = true
			}
		}
	}
	return order, cyclic
}
