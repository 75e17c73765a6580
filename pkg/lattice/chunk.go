// Package lattice implements the chunked, sparse spatial index over an
// unbounded 3D integer coordinate space: fixed-edge cubes keyed by chunk
// coordinate, allocated lazily and never freed, with the deterministic
// iteration order the rest of the engine depends on for hashing and
// reproducible resolution.
package lattice

import "github.com/somalattice/lattice/pkg/cell"

// ChunkEdge is the fixed edge length of a chunk in cells.
const ChunkEdge = 16

// ChunkVolume is the number of cells in a chunk (16^3).
const ChunkVolume = ChunkEdge * ChunkEdge * ChunkEdge

// Coord identifies a chunk by its integer chunk coordinates.
type Coord struct {
	X, Y, Z int32
}

// Less gives the lexicographic (cx,cy,cz) ordering every deterministic
// traversal in this package relies on.
func (c Coord) Less(o Coord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.Z < o.Z
}

// Chunk is a fixed 16^3 cube of cells stored in row-major local order
// idx = lx + ly*16 + lz*256.
type Chunk struct {
	Coord Coord
	Cells [ChunkVolume]cell.Cell
}

// LocalIndex converts in-chunk local coordinates (each in [0,16)) to the
// row-major storage index.
func LocalIndex(lx, ly, lz int) int {
	return lx + ly*ChunkEdge + lz*ChunkEdge*ChunkEdge
}

// LocalCoords is the inverse of LocalIndex.
func LocalCoords(idx int) (lx, ly, lz int) {
	lz = idx / (ChunkEdge * ChunkEdge)
	rem := idx % (ChunkEdge * ChunkEdge)
	ly = rem / ChunkEdge
	lx = rem % ChunkEdge
	return
}

func newChunk(c Coord) *Chunk {
	return &Chunk{Coord: c}
}
