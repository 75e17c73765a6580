package engine

import "github.com/somalattice/lattice/pkg/cell"

// finalize clamps every alive non-bedrock cell's bounded fields and kills
// those that have run out of energy or whose stress exceeds their
// critical threshold (§4.13). Bedrock never dies by the data model's own
// invariant, so it is excluded from the death check entirely.
func (e *Engine) finalize() {
	var jobs []cellJob
	e.World.ForEachAliveCell(func(x, y, z int32, c *cell.Cell) {
		jobs = append(jobs, cellJob{x, y, z})
	})

	e.Workers.Parallelize(len(jobs), func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			j := jobs[i]
			c := e.World.Cell(j.X, j.Y, j.Z)
			if c.Type == cell.Bedrock {
				continue
			}
			c.C = cell.Clamp(c.C, 0, 1)
			c.R = cell.Clamp(c.R, 0, 1)
			c.Sc = cell.Clamp(c.Sc, 0, 1)
			c.E = cell.ClampNonNegative(c.E)
			c.L = cell.ClampNonNegative(c.L)
			if c.E <= 0 || c.C > c.Sc {
				c.Reset()
			}
		}
	})
}
