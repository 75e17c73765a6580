package cell

import "testing"

func TestTypeString(t *testing.T) {
	cases := []struct {
		in   Type
		want string
	}{
		{Stem, "stem"},
		{Soma, "soma"},
		{Neuron, "neuron"},
		{Bedrock, "bedrock"},
		{Type(99), "unknown"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("Type(%d).String() = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEmptyIsEmpty(t *testing.T) {
	c := Empty()
	if !c.IsEmpty() {
		t.Error("Empty() cell should report IsEmpty")
	}
}

func TestReset(t *testing.T) {
	c := Cell{Alive: true, E: 5, Type: Neuron, W: [NeighborCount]float64{1: 0.5}}
	c.Reset()
	if c.Alive || c.E != 0 || c.Type != Stem || c.W[1] != 0 {
		t.Errorf("Reset did not zero all fields: %+v", c)
	}
}

func TestSlotIndex(t *testing.T) {
	cases := []struct {
		dx, dy, dz int
		want       int
	}{
		{-1, -1, -1, 0},
		{0, 0, 0, CenterSlot},
		{1, 1, 1, 26},
	}
	for _, c := range cases {
		if got := SlotIndex(c.dx, c.dy, c.dz); got != c.want {
			t.Errorf("SlotIndex(%d,%d,%d) = %d, want %d", c.dx, c.dy, c.dz, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 1) != 0 {
		t.Error("Clamp should floor below lo")
	}
	if Clamp(2, 0, 1) != 1 {
		t.Error("Clamp should ceiling above hi")
	}
	if Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp should pass through values inside range")
	}
}

func TestClampNonNegative(t *testing.T) {
	if ClampNonNegative(-3) != 0 {
		t.Error("ClampNonNegative should floor negative values to 0")
	}
	if ClampNonNegative(3) != 3 {
		t.Error("ClampNonNegative should pass through positive values")
	}
}

func TestFiredSelfAndShiftSpike(t *testing.T) {
	var c Cell
	if c.FiredSelf() {
		t.Error("fresh cell should not report FiredSelf")
	}
	c.ShiftSpike(true)
	if !c.FiredSelf() {
		t.Error("cell should report FiredSelf after a firing shift")
	}
	if !c.FiredWithinLastThree() {
		t.Error("cell should report FiredWithinLastThree after a firing shift")
	}
	c.ShiftSpike(false)
	c.ShiftSpike(false)
	c.ShiftSpike(false)
	if c.FiredWithinLastThree() {
		t.Error("FiredWithinLastThree should clear after three non-firing shifts")
	}
}

func TestIsFiniteState(t *testing.T) {
	c := Cell{E: 1, P: 0.5}
	if !c.IsFiniteState() {
		t.Error("finite E/P should report IsFiniteState true")
	}
	c.E = nan()
	if c.IsFiniteState() {
		t.Error("NaN energy should report IsFiniteState false")
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
