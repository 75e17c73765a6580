// Package telemetry computes population-level statistics over a world's
// alive cells for the optional per-cycle report described in §7. It uses
// gonum's stat package the way the pack's leabra layer computes its
// activation similarity with stat.Correlation, generalised here to plain
// population Mean/StdDev over energy, stress, and neural potential.
package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"github.com/somalattice/lattice/pkg/cell"
	"github.com/somalattice/lattice/pkg/lattice"
	"github.com/somalattice/lattice/pkg/synapse"
)

// Snapshot is a point-in-time population report.
type Snapshot struct {
	Cycle uint64

	AliveCount   int
	TypeCounts   [4]int
	MeanEnergy   float64
	StdDevEnergy float64
	MeanC        float64
	StdDevC      float64
	MeanP        float64
	StdDevP      float64
	MeanWeight   float64
}

// Collect walks every alive cell once and returns the population report
// for the given cycle.
func Collect(cycle uint64, world *lattice.World) Snapshot {
	var energies, cs, ps, weights []float64
	var typeCounts [4]int

	world.ForEachAliveCell(func(x, y, z int32, c *cell.Cell) {
		typeCounts[int(c.Type)]++
		energies = append(energies, c.E)
		cs = append(cs, c.C)
		if c.Type == cell.Neuron {
			ps = append(ps, c.P)
			weights = append(weights, synapse.MeanWeight(c))
		}
	})

	snap := Snapshot{Cycle: cycle, AliveCount: len(energies), TypeCounts: typeCounts}
	if len(energies) > 0 {
		snap.MeanEnergy = stat.Mean(energies, nil)
		snap.StdDevEnergy = stat.StdDev(energies, nil)
		snap.MeanC = stat.Mean(cs, nil)
		snap.StdDevC = stat.StdDev(cs, nil)
	}
	if len(ps) > 0 {
		snap.MeanP = stat.Mean(ps, nil)
		snap.StdDevP = stat.StdDev(ps, nil)
		snap.MeanWeight = stat.Mean(weights, nil)
	}
	return snap
}
