package engine

import "sort"

// resolve applies the serial, deterministic resolution pass (§4.12) in
// the fixed order movements, divisions, energy exchanges, psychic
// exchanges. Intention buffers have already been merged in ascending
// worker id order by the time they reach here.
func (e *Engine) resolve(intents *intentionSet) {
	e.resolveMovements(intents.moves)
	e.resolveDivisions(intents.divisions)
	e.resolveEnergyExchanges(intents.exchanges)
	e.resolvePsychicExchanges(intents.psychic)
}

// resolveMovements sorts by source linear id, keeps the highest-D
// proposal per destination (ties keep the earlier proposal), then applies
// winners in deterministic destination order.
func (e *Engine) resolveMovements(intents []MoveIntention) {
	sort.SliceStable(intents, func(i, j int) bool {
		return intents[i].SourceLinear < intents[j].SourceLinear
	})

	winners := make(map[int64]MoveIntention)
	var destOrder []int64
	for _, it := range intents {
		destID := linearOf(it.DestX, it.DestY, it.DestZ)
		existing, ok := winners[destID]
		if !ok {
			winners[destID] = it
			destOrder = append(destOrder, destID)
			continue
		}
		if it.D > existing.D {
			winners[destID] = it
		}
	}
	sort.Slice(destOrder, func(i, j int) bool { return destOrder[i] < destOrder[j] })

	for _, destID := range destOrder {
		it := winners[destID]
		src := e.World.Cell(it.SourceX, it.SourceY, it.SourceZ)
		if !src.Alive {
			continue
		}
		dest := e.World.Cell(it.DestX, it.DestY, it.DestZ)
		if dest.Alive {
			continue
		}
		*dest = *src
		dest.E -= e.Params.CostMovement
		src.Reset()
	}
}

// resolveDivisions sorts by source linear id, keeps the highest pre-cycle
// E proposal per destination, then splits the mother's energy equally
// before subtracting COST_DIVISION from the mother alone (§4.12).
func (e *Engine) resolveDivisions(intents []DivisionIntention) {
	sort.SliceStable(intents, func(i, j int) bool {
		return intents[i].SourceLinear < intents[j].SourceLinear
	})

	winners := make(map[int64]DivisionIntention)
	var destOrder []int64
	for _, it := range intents {
		destID := linearOf(it.DestX, it.DestY, it.DestZ)
		existing, ok := winners[destID]
		if !ok {
			winners[destID] = it
			destOrder = append(destOrder, destID)
			continue
		}
		if it.E > existing.E {
			winners[destID] = it
		}
	}
	sort.Slice(destOrder, func(i, j int) bool { return destOrder[i] < destOrder[j] })

	for _, destID := range destOrder {
		it := winners[destID]
		mother := e.World.Cell(it.SourceX, it.SourceY, it.SourceZ)
		if !mother.Alive || mother.E <= e.Params.SeuilEnergieDivision {
			continue
		}
		dest := e.World.Cell(it.DestX, it.DestY, it.DestZ)
		if dest.Alive {
			continue
		}

		half := mother.E / 2
		daughter := *mother
		daughter.A = 0
		daughter.D = 0
		daughter.L = 0
		daughter.E = half
		daughter.R = clampMutated(daughter.R, it.DestX, it.DestY, it.DestZ, 0, e.Seed)
		daughter.Sc = clampMutated(daughter.Sc, it.DestX, it.DestY, it.DestZ, 0, e.Seed+1)
		daughter.Alive = true

		mother.E = half - e.Params.CostDivision

		*dest = daughter
	}
}

// resolveEnergyExchanges applies every proposal in (source,target) sort
// order; no destination deduplication is needed since each pair appears
// at most once and every application targets disjoint field writes on at
// most two already-known-alive cells.
func (e *Engine) resolveEnergyExchanges(intents []EnergyExchangeIntention) {
	sort.SliceStable(intents, func(i, j int) bool {
		if intents[i].SourceLinear != intents[j].SourceLinear {
			return intents[i].SourceLinear < intents[j].SourceLinear
		}
		return intents[i].TargetLinear < intents[j].TargetLinear
	})
	for _, it := range intents {
		src := e.World.Cell(it.SourceX, it.SourceY, it.SourceZ)
		tgt := e.World.Cell(it.TargetX, it.TargetY, it.TargetZ)
		if !src.Alive || !tgt.Alive {
			continue
		}
		src.E -= it.Delta
		tgt.E += it.Delta
	}
}

// resolvePsychicExchanges applies every proposal in (source,target) sort
// order, unilaterally onto the source (§4.11, §4.12).
func (e *Engine) resolvePsychicExchanges(intents []PsychicIntention) {
	sort.SliceStable(intents, func(i, j int) bool {
		if intents[i].SourceLinear != intents[j].SourceLinear {
			return intents[i].SourceLinear < intents[j].SourceLinear
		}
		return intents[i].TargetLinear < intents[j].TargetLinear
	})
	for _, it := range intents {
		src := e.World.Cell(it.SourceX, it.SourceY, it.SourceZ)
		if !src.Alive {
			continue
		}
		src.C += it.DeltaC
		src.L -= it.DeltaL
	}
}
