package lattice

import "github.com/somalattice/lattice/pkg/cell"

// Offset is one of the 26 neighbor displacements, precomputed once at
// package init in the fixed dz,dy,dx iteration order the spec requires
// (dz outermost, then dy, then dx, skipping the origin) so every law
// kernel enumerates neighbors identically regardless of call site. The
// precomputed-offset-table idiom mirrors gridgraph's neighborOffsets.
type Offset struct {
	DX, DY, DZ int32
	Slot       int
}

// Neighbors26 is the fixed-order table of all 26 non-zero offsets.
var Neighbors26 = buildNeighbors26()

func buildNeighbors26() [26]Offset {
	var out [26]Offset
	i := 0
	for dz := int32(-1); dz <= 1; dz++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dx := int32(-1); dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				out[i] = Offset{DX: dx, DY: dy, DZ: dz, Slot: cell.SlotIndex(int(dx), int(dy), int(dz))}
				i++
			}
		}
	}
	return out
}

// NeighborCoord applies an offset to a global coordinate.
func NeighborCoord(x, y, z int32, o Offset) (nx, ny, nz int32) {
	return x + o.DX, y + o.DY, z + o.DZ
}
