package lattice

import (
	"fmt"
	"sort"

	"github.com/somalattice/lattice/pkg/cell"
	"github.com/somalattice/lattice/pkg/latticeerr"
)

// World is a mapping from chunk coordinates to exclusively-owned chunk
// instances. Chunks are auto-created on first write to a cell inside them
// and are never auto-deleted.
type World struct {
	chunks map[Coord]*Chunk
}

// NewWorld returns an empty chunk map.
func NewWorld() *World {
	return &World{chunks: make(map[Coord]*Chunk)}
}

// floorDiv and floorMod implement floor division so negative coordinates
// land in the chunk a continuous lattice would predict, not the chunk C's
// truncating division would give.
func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int32) int32 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Split decomposes a global coordinate into its chunk coordinate and local
// in-chunk index.
func Split(x, y, z int32) (c Coord, lx, ly, lz int) {
	c = Coord{
		X: floorDiv(x, ChunkEdge),
		Y: floorDiv(y, ChunkEdge),
		Z: floorDiv(z, ChunkEdge),
	}
	lx = int(floorMod(x, ChunkEdge))
	ly = int(floorMod(y, ChunkEdge))
	lz = int(floorMod(z, ChunkEdge))
	return
}

// GetOrCreateChunk always returns a valid chunk, allocating one if the
// coordinate has never been touched.
func (w *World) GetOrCreateChunk(c Coord) (*Chunk, error) {
	if ch, ok := w.chunks[c]; ok {
		return ch, nil
	}
	if w.chunks == nil {
		return nil, fmt.Errorf("lattice: world not initialised: %w", latticeerr.ErrChunkAllocationFailed)
	}
	ch := newChunk(c)
	w.chunks[c] = ch
	return ch, nil
}

// GetChunk is a pure lookup; it never allocates.
func (w *World) GetChunk(c Coord) (*Chunk, bool) {
	ch, ok := w.chunks[c]
	return ch, ok
}

// Cell returns a writable reference to the cell at the given global
// coordinate, allocating the owning chunk if it is absent. It never
// panics.
func (w *World) Cell(x, y, z int32) *cell.Cell {
	c, lx, ly, lz := Split(x, y, z)
	ch, err := w.GetOrCreateChunk(c)
	if err != nil {
		// Allocation only fails if the world itself was never
		// constructed via NewWorld; treat as an empty throwaway
		// cell rather than propagating a panic into a law kernel.
		tmp := cell.Empty()
		return &tmp
	}
	return &ch.Cells[LocalIndex(lx, ly, lz)]
}

// ReadCell returns a copy of the cell at the given global coordinate. A
// coordinate inside a chunk that has never been allocated reads as the
// designated empty cell.
func (w *World) ReadCell(x, y, z int32) cell.Cell {
	c, lx, ly, lz := Split(x, y, z)
	ch, ok := w.chunks[c]
	if !ok {
		return cell.Empty()
	}
	return ch.Cells[LocalIndex(lx, ly, lz)]
}

// ChunkCount reports how many chunks have been allocated.
func (w *World) ChunkCount() int {
	return len(w.chunks)
}

// SortedChunkCoords returns every allocated chunk coordinate in the
// deterministic (cx,cy,cz) lexicographic order every traversal in this
// engine relies on.
func (w *World) SortedChunkCoords() []Coord {
	coords := make([]Coord, 0, len(w.chunks))
	for c := range w.chunks {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool { return coords[i].Less(coords[j]) })
	return coords
}

// ForEachChunk visits every allocated chunk in deterministic coordinate
// order, passing its chunk coordinate alongside the chunk pointer.
func (w *World) ForEachChunk(fn func(c Coord, ch *Chunk)) {
	for _, c := range w.SortedChunkCoords() {
		fn(c, w.chunks[c])
	}
}

// ForEachAliveCell visits every alive cell in deterministic
// chunk-then-local-index order, passing its global coordinate.
func (w *World) ForEachAliveCell(fn func(x, y, z int32, c *cell.Cell)) {
	w.ForEachChunk(func(coord Coord, ch *Chunk) {
		for idx := 0; idx < ChunkVolume; idx++ {
			c := &ch.Cells[idx]
			if !c.Alive {
				continue
			}
			lx, ly, lz := LocalCoords(idx)
			gx := coord.X*ChunkEdge + int32(lx)
			gy := coord.Y*ChunkEdge + int32(ly)
			gz := coord.Z*ChunkEdge + int32(lz)
			fn(gx, gy, gz, c)
		}
	})
}

// CountAlive returns the number of alive cells across the whole world.
func (w *World) CountAlive() int {
	n := 0
	for _, ch := range w.chunks {
		for i := range ch.Cells {
			if ch.Cells[i].Alive {
				n++
			}
		}
	}
	return n
}

// Clone produces a deep, independent copy of the world, used as the
// per-cycle read snapshot (§9 "Snapshot discipline").
func (w *World) Clone() *World {
	out := NewWorld()
	for coord, ch := range w.chunks {
		cp := *ch
		out.chunks[coord] = &cp
	}
	return out
}

// CopyInto overwrites dst's chunk set with a deep copy of w's, for the
// copy_state_into(other) double-buffered-rendering operation (§5).
func (w *World) CopyInto(dst *World) {
	dst.chunks = make(map[Coord]*Chunk, len(w.chunks))
	for coord, ch := range w.chunks {
		cp := *ch
		dst.chunks[coord] = &cp
	}
}

// LinearID gives a stable integer identifier for a global coordinate, used
// by the intention laws' deterministic tie-breaking and sort keys. Each
// axis is biased into a 21-bit unsigned range (+/-1,048,576, far beyond any
// world this engine allocates) and packed into a single int64, so two
// coordinates compare equal under LinearID iff they are the same voxel.
func LinearID(x, y, z int32) int64 {
	const bias = int64(1) << 20
	ax := int64(x) + bias
	ay := int64(y) + bias
	az := int64(z) + bias
	return ax<<42 | ay<<21 | az
}
