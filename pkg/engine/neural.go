package engine

import (
	"github.com/somalattice/lattice/pkg/cell"
	"github.com/somalattice/lattice/pkg/lattice"
)

type neuronCoord struct {
	X, Y, Z int32
}

// neuronUpdate is the per-sub-tick result for one neuron, computed from a
// read-only pass over the previous sub-tick's committed state and applied
// only after every neuron in the sub-tick has been computed -- the
// read-all-then-write-all pattern that gives the "double-buffered
// potential field" its bit-exactness without needing a second full world
// clone per sub-tick.
type neuronUpdate struct {
	p        float64
	ref      uint32
	h        uint32
	ecostAdd float64
}

func (e *Engine) neuronCoords() []neuronCoord {
	var out []neuronCoord
	e.World.ForEachAliveCell(func(x, y, z int32, c *cell.Cell) {
		if c.Type == cell.Neuron {
			out = append(out, neuronCoord{x, y, z})
		}
	})
	return out
}

// runNeuralSubTicks runs the inner integrate-and-fire loop N times per
// physical cycle (§4.4), N = TICKS_NEURAUX_PAR_PHYSIQUE. The set of
// neurons is fixed for the duration of the sub-loop: no cell is born or
// dies between sub-ticks.
func (e *Engine) runNeuralSubTicks() {
	neurons := e.neuronCoords()
	if len(neurons) == 0 {
		return
	}
	n := int(e.Params.TicksNeurauxParPhysique)
	for t := 0; t < n; t++ {
		updates := make([]neuronUpdate, len(neurons))
		e.Workers.Parallelize(len(neurons), func(_, lo, hi int) {
			for i := lo; i < hi; i++ {
				nc := neurons[i]
				self := e.World.ReadCell(nc.X, nc.Y, nc.Z)
				updates[i] = e.computeNeuronSubTick(nc, &self)
			}
		})
		for i, nc := range neurons {
			c := e.World.Cell(nc.X, nc.Y, nc.Z)
			c.P = updates[i].p
			c.Ref = updates[i].ref
			c.H = updates[i].h
			c.ECost += updates[i].ecostAdd
		}
	}
}

func (e *Engine) computeNeuronSubTick(nc neuronCoord, self *cell.Cell) neuronUpdate {
	if self.Ref > 0 {
		return neuronUpdate{p: 0, ref: self.Ref - 1, h: self.H << 1}
	}

	var sumInput, sumW float64
	for _, off := range lattice.Neighbors26 {
		nx, ny, nz := lattice.NeighborCoord(nc.X, nc.Y, nc.Z, off)
		neighbor := e.World.ReadCell(nx, ny, nz)
		w := self.W[off.Slot]
		sumInput += neighbor.P * w
		if w > 0 {
			sumW += w
		}
	}
	denom := sumW
	if denom < 1 {
		denom = 1
	}
	integration := sumInput / denom
	pPrime := cell.Clamp(0.9*self.P+integration, -1, 1)

	if pPrime > e.Params.SeuilFire {
		return neuronUpdate{
			p:        1,
			ref:      e.Params.PeriodeRefractaire,
			h:        (self.H << 1) | 1,
			ecostAdd: e.Params.CoutSpike,
		}
	}
	return neuronUpdate{p: pPrime, ref: 0, h: self.H << 1}
}
