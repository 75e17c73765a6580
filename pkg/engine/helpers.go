package engine

import (
	"github.com/somalattice/lattice/pkg/cell"
	"github.com/somalattice/lattice/pkg/lattice"
	"github.com/somalattice/lattice/pkg/rng"
)

// linearOf is a thin re-export of lattice.LinearID so resolution.go reads
// naturally alongside the intention sort keys it compares against.
func linearOf(x, y, z int32) int64 {
	return lattice.LinearID(x, y, z)
}

// clampMutated applies the deterministic coordinate-and-seed mutation
// (§4.12) to a daughter's genetic field and clamps the result to [0,1].
func clampMutated(value float64, x, y, z int32, age, seed uint32) float64 {
	return cell.Clamp(value+rng.Mutate(x, y, z, age, seed), 0, 1)
}
