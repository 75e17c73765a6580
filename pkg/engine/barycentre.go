package engine

import "github.com/somalattice/lattice/pkg/cell"

// computeBarycentre is the mean of alive-cell coordinates over the
// previous state, computed once at the start of the cycle (§4.3).
func (e *Engine) computeBarycentre() [3]float64 {
	var sx, sy, sz float64
	var n int
	e.World.ForEachAliveCell(func(x, y, z int32, c *cell.Cell) {
		sx += float64(x)
		sy += float64(y)
		sz += float64(z)
		n++
	})
	if n == 0 {
		return [3]float64{0, 0, 0}
	}
	return [3]float64{sx / float64(n), sy / float64(n), sz / float64(n)}
}
