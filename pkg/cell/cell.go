// Package cell defines the per-voxel value type carried by the lattice and
// the small set of pure helpers (clamping, slot indexing) shared by every
// law kernel that reads or writes one.
package cell

import "math"

// Type is the morphogenetic classification of a cell.
type Type uint8

const (
	Stem Type = iota
	Soma
	Neuron
	Bedrock
)

func (t Type) String() string {
	switch t {
	case Stem:
		return "stem"
	case Soma:
		return "soma"
	case Neuron:
		return "neuron"
	case Bedrock:
		return "bedrock"
	default:
		return "unknown"
	}
}

// NeighborCount is the number of offsets a cell's synaptic weights cover.
const NeighborCount = 27

// CenterSlot is the unused W index corresponding to offset (0,0,0).
const CenterSlot = 13

// Cell is the value type stored at every occupied lattice voxel. All
// numeric fields of an empty cell (Alive == false) are zero by convention;
// callers must not rely on stale values surviving a reset.
type Cell struct {
	Type Type `msgpack:"type"`

	// Genetics, innate and fixed at creation save for deterministic mutation
	// applied to daughters at division time.
	R  float64 `msgpack:"r"`
	Sc float64 `msgpack:"sc"`

	// Physical state.
	E float64 `msgpack:"e"`
	D float64 `msgpack:"d"`
	C float64 `msgpack:"c"`
	L float64 `msgpack:"l"`
	M float64 `msgpack:"m"`
	A uint32  `msgpack:"a"`

	// Neural state.
	P     float64 `msgpack:"p"`
	Ref   uint32  `msgpack:"ref"`
	ECost float64 `msgpack:"e_cost"`
	H     uint32  `msgpack:"h"`

	G float64                `msgpack:"g"`
	W [NeighborCount]float64 `msgpack:"w"`

	Alive bool `msgpack:"alive"`
}

// Empty returns the zero-value unoccupied cell.
func Empty() Cell {
	return Cell{}
}

// IsEmpty reports whether the voxel holds no agent.
func (c *Cell) IsEmpty() bool {
	return !c.Alive
}

// Reset zeroes every field and clears Alive, per the data-model convention
// that an empty cell carries no residual state.
func (c *Cell) Reset() {
	*c = Cell{}
}

// SlotIndex maps a neighbor offset to its synaptic-weight / iteration slot:
// (dz+1)*9 + (dy+1)*3 + (dx+1). Valid for dx,dy,dz in {-1,0,1}.
func SlotIndex(dx, dy, dz int) int {
	return (dz+1)*9 + (dy+1)*3 + (dx+1)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampNonNegative restricts v to [0, +Inf).
func ClampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// FiredSelf reports whether bit 0 of H (the most recent sub-tick) is set.
func (c *Cell) FiredSelf() bool {
	return c.H&1 != 0
}

// FiredWithinLastThree reports whether any of the three least-significant
// bits of H are set, per the Hebbian-learning neighbor-activity rule.
func (c *Cell) FiredWithinLastThree() bool {
	return c.H&0b111 != 0
}

// ShiftSpike pushes a new bit into H, newest bit at position 0.
func (c *Cell) ShiftSpike(fired bool) {
	c.H <<= 1
	if fired {
		c.H |= 1
	}
}

// IsFiniteState reports whether E and P hold finite values, used by the
// optional audit pass to detect NaN/Inf corruption.
func (c *Cell) IsFiniteState() bool {
	return !math.IsNaN(c.E) && !math.IsInf(c.E, 0) && !math.IsNaN(c.P) && !math.IsInf(c.P, 0)
}
