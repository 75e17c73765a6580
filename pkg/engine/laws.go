package engine

import (
	"math"

	"github.com/somalattice/lattice/pkg/cell"
	"github.com/somalattice/lattice/pkg/lattice"
	"github.com/somalattice/lattice/pkg/params"
)

// differentiate applies the structural law (§4.3): a stem cell's
// transition to soma or neuron is irreversible and applied immediately
// from this cycle's barycentre-derived gradient.
func differentiate(live *cell.Cell, x, y, z int32, bary [3]float64, p *params.Parameters) {
	dx := float64(x) - bary[0]
	dy := float64(y) - bary[1]
	dz := float64(z) - bary[2]
	d := math.Sqrt(dx*dx + dy*dy + dz*dz)
	live.G = math.Exp(-p.LambdaGradient * d)

	if live.Type == cell.Stem {
		switch {
		case live.G < p.SeuilSoma:
			live.Type = cell.Soma
		case live.G >= p.SeuilNeuro:
			live.Type = cell.Neuron
		}
	}
}

// memoryUpdate folds the strongest alive-neighbor energy observed on the
// snapshot into the cell's decaying memory trace (§4.6).
func memoryUpdate(snap *lattice.World, x, y, z int32, live *cell.Cell, p *params.Parameters) {
	var m float64
	for _, off := range lattice.Neighbors26 {
		nx, ny, nz := lattice.NeighborCoord(x, y, z, off)
		n := snap.ReadCell(nx, ny, nz)
		if n.Alive && n.E > m {
			m = n.E
		}
	}
	live.M = math.Max(live.M*(1-p.TauxOubli), m)
}

// metabolism applies the per-tick upkeep (§4.7) to a non-bedrock cell.
func metabolism(live *cell.Cell, y int32, p *params.Parameters) {
	live.D += p.DPerTick
	live.L += p.LPerTick
	if live.Type != cell.Neuron && float64(y) >= p.WorldHeight*p.HauteurSoleil {
		live.E += p.SensibiliteSoleil
	}
	live.E -= p.KThermo + live.ECost
	live.ECost = 0
	live.A++
}

// movementScore implements the superset movement score adopted by §9's
// open-question resolution: field diffusion, adhesion, and memory terms
// all included, K_E omitted since it would only ever multiply an empty
// destination cell's zero energy.
func movementScore(snap *lattice.World, dx, dy, dz int32, self *cell.Cell, p *params.Parameters) float64 {
	var sumE, sumC, adhesion float64
	for _, off := range lattice.Neighbors26 {
		nx, ny, nz := lattice.NeighborCoord(dx, dy, dz, off)
		n := snap.ReadCell(nx, ny, nz)
		if !n.Alive {
			continue
		}
		sumE += n.E
		sumC += n.C
		if n.Type == self.Type {
			adhesion++
		}
	}
	return p.KD*self.D - p.KC*self.C + p.KM*self.M/(float64(self.A)+1) +
		p.KChampE*sumE - p.KChampC*sumC + p.KAdh*adhesion - p.CostMovement
}

// proposeMovement selects the empty neighbor with the highest movement
// score, ties broken by neighbor enumeration order (§4.8).
func proposeMovement(snap *lattice.World, x, y, z int32, self *cell.Cell, p *params.Parameters) (MoveIntention, bool) {
	var best MoveIntention
	bestScore := math.Inf(-1)
	found := false

	for _, off := range lattice.Neighbors26 {
		dx, dy, dz := lattice.NeighborCoord(x, y, z, off)
		if snap.ReadCell(dx, dy, dz).Alive {
			continue
		}
		score := movementScore(snap, dx, dy, dz, self, p)
		if !found || score > bestScore {
			bestScore = score
			found = true
			best = MoveIntention{
				SourceX: x, SourceY: y, SourceZ: z,
				DestX: dx, DestY: dy, DestZ: dz,
				D:            self.D,
				SourceLinear: lattice.LinearID(x, y, z),
			}
		}
	}
	return best, found
}

// proposeDivision emits at most one division proposal per mother, at the
// first empty neighbor in fixed enumeration order (§4.9).
func proposeDivision(snap *lattice.World, x, y, z int32, self *cell.Cell, p *params.Parameters) (DivisionIntention, bool) {
	if self.E <= p.SeuilEnergieDivision {
		return DivisionIntention{}, false
	}
	for _, off := range lattice.Neighbors26 {
		dx, dy, dz := lattice.NeighborCoord(x, y, z, off)
		if snap.ReadCell(dx, dy, dz).Alive {
			continue
		}
		return DivisionIntention{
			SourceX: x, SourceY: y, SourceZ: z,
			DestX: dx, DestY: dy, DestZ: dz,
			E:            self.E,
			SourceLinear: lattice.LinearID(x, y, z),
		}, true
	}
	return DivisionIntention{}, false
}

// proposeEnergyExchanges emits one osmosis proposal per alive neighbor
// pair, each pair considered only from the lower linear id (§4.10).
func proposeEnergyExchanges(snap *lattice.World, x, y, z int32, self *cell.Cell, p *params.Parameters, out *[]EnergyExchangeIntention) {
	srcLinear := lattice.LinearID(x, y, z)
	for _, off := range lattice.Neighbors26 {
		nx, ny, nz := lattice.NeighborCoord(x, y, z, off)
		n := snap.ReadCell(nx, ny, nz)
		if !n.Alive {
			continue
		}
		tgtLinear := lattice.LinearID(nx, ny, nz)
		if srcLinear >= tgtLinear {
			continue
		}
		if math.Abs(self.R-n.R) >= p.SeuilSimilariteR {
			continue
		}
		delta := cell.Clamp((self.E-n.E)*p.FacteurEchangeEnergie, -p.MaxFluxEnergie, p.MaxFluxEnergie)
		if math.Abs(delta) <= p.SeuilDifferenceEnergie {
			continue
		}
		*out = append(*out, EnergyExchangeIntention{
			SourceX: x, SourceY: y, SourceZ: z,
			TargetX: nx, TargetY: ny, TargetZ: nz,
			Delta:        delta,
			SourceLinear: srcLinear, TargetLinear: tgtLinear,
		})
	}
}

// proposePsychicExchanges emits one unilateral stress/boredom pull per
// alive neighbor (§4.11).
func proposePsychicExchanges(snap *lattice.World, x, y, z int32, self *cell.Cell, p *params.Parameters, out *[]PsychicIntention) {
	srcLinear := lattice.LinearID(x, y, z)
	for _, off := range lattice.Neighbors26 {
		nx, ny, nz := lattice.NeighborCoord(x, y, z, off)
		n := snap.ReadCell(nx, ny, nz)
		if !n.Alive {
			continue
		}
		*out = append(*out, PsychicIntention{
			SourceX: x, SourceY: y, SourceZ: z,
			DeltaC:       p.FacteurEchangePsychique * n.C,
			DeltaL:       p.FacteurEchangePsychique * n.L,
			SourceLinear: srcLinear, TargetLinear: lattice.LinearID(nx, ny, nz),
		})
	}
}
