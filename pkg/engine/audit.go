package engine

import (
	"log"
	"math"

	"github.com/somalattice/lattice/pkg/cell"
)

// auditAndQuarantine is the optional invariant-violation check (§7): it
// scans every alive cell for NaN/Inf energy or potential, out-of-band
// potential, or pathologically negative stress, logs a warning, and
// resets the offending cell rather than aborting the run. Off by default;
// enabled via Engine.AuditCycle.
func (e *Engine) auditAndQuarantine() {
	e.World.ForEachAliveCell(func(x, y, z int32, c *cell.Cell) {
		if offending(c) {
			log.Printf("⚠ WARNING: engine: quarantining cell at (%d,%d,%d): E=%v P=%v C=%v", x, y, z, c.E, c.P, c.C)
			c.Reset()
		}
	})
}

func offending(c *cell.Cell) bool {
	if math.IsNaN(c.E) || math.IsInf(c.E, 0) {
		return true
	}
	if math.IsNaN(c.P) || math.IsInf(c.P, 0) {
		return true
	}
	if c.P < -1.1 || c.P > 1.1 {
		return true
	}
	if c.C < -0.1 {
		return true
	}
	return false
}
