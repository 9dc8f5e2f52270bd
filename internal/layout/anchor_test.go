package layout

import (
	"reflect"
	"testing"
)

func TestAnchorOrigin(t *testing.T) {
	b := Bounds{MinX: 10, MaxX: 20, MinY: 5, MaxY: 5}
	tests := []struct {
		point  AnchorPoint
		off    Offset
		wx, wy int
	}{
		{BottomCenter, Offset{0, 2}, 15, 7},
		{TopLeft, Offset{}, 10, 5},
		{TopRight, Offset{1, -1}, 21, 4},
		{Center, Offset{}, 15, 5},
		{MiddleRight, Offset{}, 20, 5},
		{BottomLeft, Offset{}, 10, 5},
		{"bogus", Offset{3, 3}, 13, 8},
	}
	for _, tt := range tests {
		t.Run(string(tt.point), func(t *testing.T) {
			x, y := AnchorOrigin(tt.point, b, tt.off)
			if x != tt.wx || y != tt.wy {
				t.Errorf("got (%d,%d), want (%d,%d)", x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestAnchorOriginFloorsNegativeMidpoints(t *testing.T) {
	x, y := AnchorOrigin(Center, Bounds{MinX: -3, MaxX: 0, MinY: -1, MaxY: 0}, Offset{})
	if x != -2 || y != -1 {
		t.Fatalf("got (%d,%d)", x, y)
	}
}

func TestResolveOrder(t *testing.T) {
	tests := []struct {
		name   string
		deps   []int
		order  []int
		cyclic []bool
	}{
		{"independent", []int{-1, -1, -1}, []int{0, 1, 2}, []bool{false, false, false}},
		{"forward reference", []int{1, -1}, []int{1, 0}, []bool{false, false}},
		{"chain", []int{-1, 0, 1}, []int{0, 1, 2}, []bool{false, false, false}},
		{"two cycle", []int{1, 0, -1}, []int{0, 1, 2}, []bool{true, true, false}},
		{"tail into cycle", []int{1, 2, 1}, []int{1, 0, 2}, []bool{false, true, true}},
		{"self", []int{0}, []int{0}, []bool{true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, cyclic := resolveOrder(tt.deps)
			if !reflect.DeepEqual(order, tt.order) {
				t.Errorf("order = %v, want %v", order, tt.order)
			}
			if !reflect.DeepEqual(cyclic, tt.cyclic) {
				t.Errorf("cyclic = %v, want %v", cyclic, tt.cyclic)
			}
		})
	}
}
