package synth

import "testing"

func TestRipplesCapDropsOldest(t *testing.T) {
	rs := NewRipples(3)
	for i := 0; i < 5; i++ {
		rs.Add(ClickRipple{X: i, Lifespan: 1})
	}
	if rs.Len() != 3 {
		t.Fatalf("len = %d", rs.Len())
	}
	for i, want := range []int{2, 3, 4} {
		if got := rs.At(i).X; got != want {
			t.Errorf("At(%d).X = %d, want %d", i, got, want)
		}
	}
}

func TestRipplesDefaultCap(t *testing.T) {
	rs := NewRipples(0)
	for i := 0; i < 50; i++ {
		rs.Add(ClickRipple{X: i})
	}
	if rs.Len() != DefaultMaxRipples || rs.Cap() != DefaultMaxRipples {
		t.Fatalf("len=%d cap=%d", rs.Len(), rs.Cap())
	}
}

func TestRipplesPrune(t *testing.T) {
	rs := NewRipples(4)
	rs.Add(ClickRipple{X: 0, Born: 0, Lifespan: 1})
	rs.Add(ClickRipple{X: 1, Born: 0, Lifespan: 5})
	rs.Add(ClickRipple{X: 2, Born: 1, Lifespan: 0.5})
	rs.Add(ClickRipple{X: 3, Born: 1, Lifespan: 3})
	rs.Add(ClickRipple{X: 4, Born: 2, Lifespan: 3}) // evicts X=0

	if removed := rs.Prune(2); removed != 1 {
		t.Fatalf("removed = %d", removed)
	}
	var got []int
	for i := 0; i < rs.Len(); i++ {
		got = append(got, rs.At(i).X)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 4 {
		t.Fatalf("kept = %v", got)
	}

	rs.Add(ClickRipple{X: 5, Born: 2, Lifespan: 1})
	if rs.Len() != 4 || rs.At(3).X != 5 {
		t.Fatal("add after prune should append in order")
	}
}

func TestRippleRing(t *testing.T) {
	shape := DefaultRippleShape()
	r := ClickRipple{Born: 0, Lifespan: 2, Intensity: 1, SpeedFactor: 1}

	// At t=0.5 the ring sits at radius 11.
	on := r.contribution(11, 0, 0.5, shape)
	off := r.contribution(3, 0, 0.5, shape)
	if on <= 0 || off != 0 {
		t.Fatalf("on=%v off=%v", on, off)
	}
	if late := r.contribution(33, 0, 1.5, shape); late >= on {
		t.Fatalf("amplitude should decay with age: %v >= %v", late, on)
	}
	if r.contribution(0, 0, 2, shape) != 0 {
		t.Fatal("expired ripple contributes")
	}
	if r.contribution(0, 0, -1, shape) != 0 {
		t.Fatal("unborn ripple contributes")
	}
}

func TestStrongRippleHasInnerRing(t *testing.T) {
	shape := DefaultRippleShape()
	weak := ClickRipple{Lifespan: 2, Intensity: 1, SpeedFactor: 1}
	strong := ClickRipple{Lifespan: 2, Intensity: 1.5, SpeedFactor: 1}
	// Inner ring radius at t=0.5 is 0.6*11 = 6.6.
	if weak.contribution(6.6, 0, 0.5, shape) != 0 {
		t.Fatal("weak ripple should have no inner ring")
	}
	if strong.contribution(6.6, 0, 0.5, shape) <= 0 {
		t.Fatal("strong ripple should have an inner ring")
	}
}
