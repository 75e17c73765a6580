// Package synapse implements Hebbian learning over a neuron's fixed
// synaptic-weight array. It is grounded on the teacher's
// pkg/synapse/hebbian.go, but trades that engine's dynamic map-based
// synapse creation, fractal clustering, and pruning for the fixed-size
// W[27] per cell the lattice's cell record carries: every neuron already
// owns a slot for each of its 26 possible neighbors, so there is nothing
// to create or prune, only strengthen, weaken, and decay.
package synapse

import (
	"github.com/somalattice/lattice/pkg/cell"
	"github.com/somalattice/lattice/pkg/lattice"
	"github.com/somalattice/lattice/pkg/params"
)

// UpdateWeights applies one Hebbian-learning pass to a single neuron (§4.5),
// reading co-activation state from the read-only pre-cycle snapshot and
// writing only into live, the cell this worker exclusively owns.
func UpdateWeights(snap *lattice.World, x, y, z int32, live *cell.Cell, p *params.Parameters) {
	self := snap.ReadCell(x, y, z)
	selfFired := self.FiredSelf()

	for _, off := range lattice.Neighbors26 {
		nx, ny, nz := lattice.NeighborCoord(x, y, z, off)
		neighbor := snap.ReadCell(nx, ny, nz)
		neighborActive := neighbor.Alive && neighbor.FiredWithinLastThree()

		k := off.Slot
		if selfFired && neighborActive {
			live.W[k] += p.LearnRate
		} else {
			live.W[k] -= 0.1 * p.LearnRate
		}
		live.W[k] = cell.Clamp(live.W[k]*p.DecaySynapse, 0, 1)
	}
}

// MeanWeight returns the average of a neuron's 26 active synaptic weight
// slots (the center slot is always excluded), used by telemetry.Collect
// the way the teacher's Stats() reports average-synapses-per-neuron.
func MeanWeight(c *cell.Cell) float64 {
	sum := 0.0
	for i, w := range c.W {
		if i == cell.CenterSlot {
			continue
		}
		sum += w
	}
	return sum / float64(cell.NeighborCount-1)
}
