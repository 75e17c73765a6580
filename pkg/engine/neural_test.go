package engine

import (
	"testing"

	"github.com/somalattice/lattice/pkg/cell"
	"github.com/somalattice/lattice/pkg/params"
)

func TestComputeNeuronSubTickCountsDownRefractory(t *testing.T) {
	e := newTestEngine(t, 4)
	e.Params = params.Default()
	self := cell.Cell{Ref: 2}
	got := e.computeNeuronSubTick(neuronCoord{0, 0, 0}, &self)
	if got.ref != 1 || got.p != 0 {
		t.Errorf("got ref=%d p=%v, want ref=1 p=0 while refractory", got.ref, got.p)
	}
	if got.h != self.H<<1 {
		t.Errorf("refractory sub-tick should shift in a zero bit, got h=%b", got.h)
	}
}

func TestComputeNeuronSubTickFiresAboveThresholdAndEntersRefractory(t *testing.T) {
	e := newTestEngine(t, 4)
	e.Params = params.Default()
	e.Params.SeuilFire = 0.85
	e.Params.PeriodeRefractaire = 2
	e.Params.CoutSpike = 0.05

	self := cell.Cell{P: 1.0} // 0.9*1.0 = 0.9 > 0.85 with zero synaptic input
	got := e.computeNeuronSubTick(neuronCoord{1, 1, 1}, &self)

	if got.p != 1 {
		t.Errorf("fired neuron should report p=1, got %v", got.p)
	}
	if got.ref != e.Params.PeriodeRefractaire {
		t.Errorf("ref = %d, want %d", got.ref, e.Params.PeriodeRefractaire)
	}
	if got.h&1 == 0 {
		t.Error("firing sub-tick should set bit 0 of H")
	}
	if got.ecostAdd != e.Params.CoutSpike {
		t.Errorf("ecostAdd = %v, want %v", got.ecostAdd, e.Params.CoutSpike)
	}
}

func TestComputeNeuronSubTickIntegratesWeightedNeighborPotentials(t *testing.T) {
	e := newTestEngine(t, 4)
	e.Params = params.Default()
	e.Params.SeuilFire = 2 // unreachable, isolate the integration math

	n := e.World.Cell(2, 1, 1) // (1,0,0) offset from (1,1,1)
	n.Alive = true
	n.P = 1

	self := cell.Cell{P: 0}
	self.W[cell.SlotIndex(1, 0, 0)] = 1
	got := e.computeNeuronSubTick(neuronCoord{1, 1, 1}, &self)

	want := 0.9*0 + 1.0 // integration = sumInput/denom = (1*1)/1
	if got.p != want {
		t.Errorf("p = %v, want %v", got.p, want)
	}
}

func TestRunNeuralSubTicksSkipsWhenNoNeurons(t *testing.T) {
	e := newTestEngine(t, 4)
	e.Params = params.Default()
	c := e.World.Cell(0, 0, 0)
	c.Alive = true
	c.Type = cell.Soma
	e.runNeuralSubTicks() // must not panic or touch non-neuron state
	if e.World.ReadCell(0, 0, 0).P != 0 {
		t.Error("a non-neuron cell must never be touched by the sub-tick loop")
	}
}

func TestRunNeuralSubTicksAppliesOncePerSubTickOverWholeCycle(t *testing.T) {
	e := newTestEngine(t, 4)
	e.Params = params.Default()
	e.Params.TicksNeurauxParPhysique = 5
	e.Params.SeuilFire = 0.85
	e.Params.PeriodeRefractaire = 2
	e.Params.CoutSpike = 0.05

	mid := e.World.Cell(1, 1, 1)
	mid.Alive = true
	mid.Type = cell.Neuron
	mid.P = 1.0 // fires on sub-tick 1, then refracts for 2 sub-ticks

	e.runNeuralSubTicks()

	got := e.World.ReadCell(1, 1, 1)
	if got.H == 0 {
		t.Error("the neuron should have recorded a fire at some point across the sub-tick loop")
	}
	if got.ECost != e.Params.CoutSpike {
		t.Errorf("ECost = %v, want exactly one spike's cost (%v)", got.ECost, e.Params.CoutSpike)
	}
	if got.Ref != 0 {
		t.Errorf("Ref = %d, want 0 after the refractory period has fully counted down", got.Ref)
	}
}
