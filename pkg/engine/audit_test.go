package engine

import (
	"math"
	"testing"

	"github.com/somalattice/lattice/pkg/cell"
)

func TestOffendingDetectsNonFiniteAndOutOfBandState(t *testing.T) {
	cases := []struct {
		name string
		c    cell.Cell
		want bool
	}{
		{"healthy", cell.Cell{E: 1, P: 0.5, C: 0.2}, false},
		{"nan energy", cell.Cell{E: math.NaN()}, true},
		{"inf potential", cell.Cell{P: math.Inf(1)}, true},
		{"potential out of band", cell.Cell{P: 1.2}, true},
		{"negative stress", cell.Cell{C: -0.5}, true},
	}
	for _, tc := range cases {
		if got := offending(&tc.c); got != tc.want {
			t.Errorf("%s: offending() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAuditAndQuarantineResetsOffendingCellsOnly(t *testing.T) {
	e := newTestEngine(t, 4)
	bad := e.World.Cell(0, 0, 0)
	bad.Alive = true
	bad.E = math.NaN()

	good := e.World.Cell(1, 0, 0)
	good.Alive = true
	good.E = 1
	good.P = 0.1

	e.auditAndQuarantine()

	if e.World.ReadCell(0, 0, 0).Alive {
		t.Error("a cell with NaN energy should be quarantined")
	}
	if !e.World.ReadCell(1, 0, 0).Alive {
		t.Error("a healthy cell should never be touched by the audit pass")
	}
}
