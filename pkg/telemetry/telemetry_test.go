package telemetry

import (
	"math"
	"testing"

	"github.com/somalattice/lattice/pkg/cell"
	"github.com/somalattice/lattice/pkg/lattice"
)

func TestCollectOnEmptyWorldReturnsZeroedSnapshot(t *testing.T) {
	snap := Collect(3, lattice.NewWorld())
	if snap.Cycle != 3 {
		t.Errorf("Cycle = %d, want 3", snap.Cycle)
	}
	if snap.AliveCount != 0 {
		t.Errorf("AliveCount = %d, want 0", snap.AliveCount)
	}
	if snap.MeanEnergy != 0 || snap.StdDevEnergy != 0 || snap.MeanP != 0 {
		t.Errorf("snapshot of an empty world should carry zero statistics, got %+v", snap)
	}
}

func TestCollectComputesMeanAndStdDevOverAliveCells(t *testing.T) {
	w := lattice.NewWorld()

	a := w.Cell(0, 0, 0)
	a.Alive = true
	a.Type = cell.Soma
	a.E = 1
	a.C = 0.2

	b := w.Cell(1, 0, 0)
	b.Alive = true
	b.Type = cell.Soma
	b.E = 3
	b.C = 0.4

	snap := Collect(0, w)
	if snap.AliveCount != 2 {
		t.Fatalf("AliveCount = %d, want 2", snap.AliveCount)
	}
	if snap.MeanEnergy != 2 {
		t.Errorf("MeanEnergy = %v, want 2 (mean of 1 and 3)", snap.MeanEnergy)
	}
	if math.Abs(snap.MeanC-0.3) > 1e-9 {
		t.Errorf("MeanC = %v, want 0.3", snap.MeanC)
	}
	if snap.StdDevEnergy <= 0 {
		t.Errorf("StdDevEnergy = %v, want a positive spread between 1 and 3", snap.StdDevEnergy)
	}
	if snap.TypeCounts[cell.Soma] != 2 {
		t.Errorf("TypeCounts[Soma] = %d, want 2", snap.TypeCounts[cell.Soma])
	}
}

func TestCollectIgnoresDeadCells(t *testing.T) {
	w := lattice.NewWorld()
	dead := w.Cell(0, 0, 0)
	dead.Alive = false
	dead.E = 1000

	snap := Collect(0, w)
	if snap.AliveCount != 0 {
		t.Errorf("AliveCount = %d, want 0 (dead cell must not be counted)", snap.AliveCount)
	}
}

func TestCollectReportsNeuralStatisticsOnlyForNeurons(t *testing.T) {
	w := lattice.NewWorld()

	soma := w.Cell(0, 0, 0)
	soma.Alive = true
	soma.Type = cell.Soma
	soma.E = 1
	soma.P = 0.9 // should be ignored: not a neuron

	neuron := w.Cell(1, 0, 0)
	neuron.Alive = true
	neuron.Type = cell.Neuron
	neuron.E = 1
	neuron.P = 0.4
	neuron.W[cell.SlotIndex(1, 0, 0)] = 0.6

	snap := Collect(0, w)
	if snap.AliveCount != 2 {
		t.Fatalf("AliveCount = %d, want 2", snap.AliveCount)
	}
	if snap.MeanP != 0.4 {
		t.Errorf("MeanP = %v, want 0.4 (only the neuron's potential)", snap.MeanP)
	}
	if snap.MeanWeight <= 0 {
		t.Errorf("MeanWeight = %v, want a positive mean synaptic weight", snap.MeanWeight)
	}
}
