package rng

import "testing"

func TestMutateIsDeterministic(t *testing.T) {
	a := Mutate(10, -5, 3, 7, 42)
	b := Mutate(10, -5, 3, 7, 42)
	if a != b {
		t.Errorf("Mutate should be a pure function of its arguments, got %v then %v", a, b)
	}
}

func TestMutateOnlyReturnsThreeValues(t *testing.T) {
	allowed := map[float64]bool{0.01: true, -0.01: true, 0: true}
	for x := int32(0); x < 50; x++ {
		v := Mutate(x, 0, 0, 1, 99)
		if !allowed[v] {
			t.Errorf("Mutate(%d,0,0,1,99) = %v, not one of {0.01,-0.01,0}", x, v)
		}
	}
}

func TestMutateVariesWithSeed(t *testing.T) {
	seen := make(map[float64]bool)
	for seed := uint32(0); seed < 20; seed++ {
		seen[Mutate(1, 2, 3, 0, seed)] = true
	}
	if len(seen) < 2 {
		t.Error("Mutate should produce more than one distinct value across varying seeds")
	}
}

func TestCoordFloat01Range(t *testing.T) {
	for x := int32(-10); x < 10; x++ {
		v := CoordFloat01(x, x*3, x*7, 1234)
		if v < 0 || v >= 1 {
			t.Errorf("CoordFloat01(%d,...) = %v, want value in [0,1)", x, v)
		}
	}
}

func TestCoordHashDistinctFromMutate(t *testing.T) {
	// CoordHash must not degenerate to the same low-entropy {-.01,0,.01}
	// output Mutate produces, since it seeds the initial field.
	seen := make(map[uint32]bool)
	for seed := uint32(0); seed < 8; seed++ {
		seen[CoordHash(5, 5, 5, seed)] = true
	}
	if len(seen) != 8 {
		t.Errorf("CoordHash should vary freely with seed, got %d distinct values of 8", len(seen))
	}
}

func TestCoordFloat01IsDeterministic(t *testing.T) {
	a := CoordFloat01(7, 8, 9, 55)
	b := CoordFloat01(7, 8, 9, 55)
	if a != b {
		t.Error("CoordFloat01 should be deterministic for identical inputs")
	}
}
