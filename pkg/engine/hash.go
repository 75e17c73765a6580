package engine

import (
	"math"
	"math/bits"

	"github.com/somalattice/lattice/pkg/lattice"
)

// StateHash implements §4.14: per chunk, seed from the chunk coordinate,
// fold in every alive cell's energy and type in local row-major order,
// then XOR every chunk hash together (commutative, so independent of
// chunk iteration order).
func (e *Engine) StateHash() uint64 {
	var global uint64
	e.World.ForEachChunk(func(coord lattice.Coord, ch *lattice.Chunk) {
		hc := seedChunkHash(coord)
		for idx := 0; idx < lattice.ChunkVolume; idx++ {
			c := ch.Cells[idx]
			if !c.Alive {
				continue
			}
			hc = bits.RotateLeft64(hc, 5)
			hc ^= math.Float64bits(c.E)
			hc ^= uint64(c.Type)
		}
		global ^= hc
	})
	return global
}

func seedChunkHash(c lattice.Coord) uint64 {
	return mix64(uint64(uint32(c.X))) ^ (mix64(uint64(uint32(c.Y))) << 1) ^ (mix64(uint64(uint32(c.Z))) << 2)
}

// mix64 is a fixed-point avalanche finalizer (the murmur3/splitmix64
// family), used only to spread a chunk coordinate into a well-mixed seed;
// it carries no randomness, only bit diffusion.
func mix64(v uint64) uint64 {
	v ^= v >> 33
	v *= 0xff51afd7ed558ccd
	v ^= v >> 33
	v *= 0xc4ceb9fe1a85ec53
	v ^= v >> 33
	return v
}
