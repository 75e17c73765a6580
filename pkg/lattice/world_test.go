package lattice

import (
	"testing"

	"github.com/somalattice/lattice/pkg/cell"
)

func TestSplitRoundTrip(t *testing.T) {
	cases := [][3]int32{{0, 0, 0}, {15, 15, 15}, {16, 0, 0}, {-1, -1, -1}, {-17, 3, 31}}
	for _, xyz := range cases {
		x, y, z := xyz[0], xyz[1], xyz[2]
		c, lx, ly, lz := Split(x, y, z)
		gx := c.X*ChunkEdge + int32(lx)
		gy := c.Y*ChunkEdge + int32(ly)
		gz := c.Z*ChunkEdge + int32(lz)
		if gx != x || gy != y || gz != z {
			t.Errorf("Split(%d,%d,%d) round-trip = (%d,%d,%d)", x, y, z, gx, gy, gz)
		}
		if lx < 0 || lx >= ChunkEdge || ly < 0 || ly >= ChunkEdge || lz < 0 || lz >= ChunkEdge {
			t.Errorf("Split(%d,%d,%d) local coords out of range: (%d,%d,%d)", x, y, z, lx, ly, lz)
		}
	}
}

func TestCellAllocatesAndPersists(t *testing.T) {
	w := NewWorld()
	c := w.Cell(5, 5, 5)
	c.Alive = true
	c.E = 1.5

	got := w.Cell(5, 5, 5)
	if !got.Alive || got.E != 1.5 {
		t.Errorf("Cell should return the same backing storage across calls, got %+v", *got)
	}
	if w.ChunkCount() != 1 {
		t.Errorf("ChunkCount() = %d, want 1", w.ChunkCount())
	}
}

func TestReadCellOnAbsentChunkIsEmpty(t *testing.T) {
	w := NewWorld()
	c := w.ReadCell(100, 100, 100)
	if !c.IsEmpty() {
		t.Error("ReadCell on an unallocated chunk should return an empty cell")
	}
}

func TestForEachAliveCellVisitsEveryAliveCellOnce(t *testing.T) {
	w := NewWorld()
	coords := [][3]int32{{20, 0, 0}, {-5, 0, 0}, {0, 0, 0}, {0, 16, 0}}
	for _, xyz := range coords {
		c := w.Cell(xyz[0], xyz[1], xyz[2])
		c.Alive = true
	}

	seen := make(map[[3]int32]bool)
	w.ForEachAliveCell(func(x, y, z int32, c *cell.Cell) {
		seen[[3]int32{x, y, z}] = true
	})
	if len(seen) != len(coords) {
		t.Fatalf("ForEachAliveCell visited %d cells, want %d", len(seen), len(coords))
	}
	for _, xyz := range coords {
		if !seen[xyz] {
			t.Errorf("ForEachAliveCell did not visit (%d,%d,%d)", xyz[0], xyz[1], xyz[2])
		}
	}
}

func TestForEachChunkDeterministicOrder(t *testing.T) {
	w := NewWorld()
	w.Cell(20, 0, 0)
	w.Cell(-20, 0, 0)
	w.Cell(0, 0, 0)

	var order []Coord
	w.ForEachChunk(func(c Coord, ch *Chunk) {
		order = append(order, c)
	})
	for i := 1; i < len(order); i++ {
		if !order[i-1].Less(order[i]) {
			t.Errorf("ForEachChunk order not strictly increasing at index %d: %+v then %+v", i, order[i-1], order[i])
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	w := NewWorld()
	c := w.Cell(1, 1, 1)
	c.Alive = true
	c.E = 2.0

	clone := w.Clone()
	clone.Cell(1, 1, 1).E = 9.0

	if w.Cell(1, 1, 1).E != 2.0 {
		t.Error("mutating a clone should not affect the original world")
	}
}

func TestLinearIDIsUniquePerCoordinate(t *testing.T) {
	seen := make(map[int64]bool)
	coords := [][3]int32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {-1, -1, -1}, {100, -100, 50}}
	for _, xyz := range coords {
		id := LinearID(xyz[0], xyz[1], xyz[2])
		if seen[id] {
			t.Errorf("LinearID collision at (%d,%d,%d)", xyz[0], xyz[1], xyz[2])
		}
		seen[id] = true
	}
}

func TestLinearIDIncreasesWithX(t *testing.T) {
	a := LinearID(0, 0, 0)
	b := LinearID(1, 0, 0)
	if a >= b {
		t.Error("LinearID should increase with x for fixed y,z")
	}
}
