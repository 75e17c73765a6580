package engine

import (
	"github.com/somalattice/lattice/pkg/cell"
	"github.com/somalattice/lattice/pkg/lattice"
	"github.com/somalattice/lattice/pkg/synapse"
)

type cellJob struct {
	X, Y, Z int32
}

// runParallelPhase executes differentiation, Hebbian learning, memory
// update, metabolism, and the four intention laws over every alive cell,
// statically partitioned across the worker pool. Each worker writes only
// to the one cell it owns plus its own intention buffer slots, so no
// cross-worker synchronisation is needed until the buffers are merged.
func (e *Engine) runParallelPhase(snap *lattice.World, bary [3]float64) *intentionSet {
	var jobs []cellJob
	e.World.ForEachAliveCell(func(x, y, z int32, c *cell.Cell) {
		jobs = append(jobs, cellJob{x, y, z})
	})

	workers := e.Workers.Workers()
	moveBuf := make([][]MoveIntention, workers)
	divBuf := make([][]DivisionIntention, workers)
	exchBuf := make([][]EnergyExchangeIntention, workers)
	psyBuf := make([][]PsychicIntention, workers)

	e.Workers.Parallelize(len(jobs), func(wid, lo, hi int) {
		for i := lo; i < hi; i++ {
			j := jobs[i]
			e.runCellPhases(snap, j, wid, &moveBuf[wid], &divBuf[wid], &exchBuf[wid], &psyBuf[wid], bary)
		}
	})

	return &intentionSet{
		moves:     concatMoves(moveBuf),
		divisions: concatDivisions(divBuf),
		exchanges: concatExchanges(exchBuf),
		psychic:   concatPsychic(psyBuf),
	}
}

func (e *Engine) runCellPhases(
	snap *lattice.World,
	j cellJob,
	_ int,
	moves *[]MoveIntention,
	divisions *[]DivisionIntention,
	exchanges *[]EnergyExchangeIntention,
	psychic *[]PsychicIntention,
	bary [3]float64,
) {
	live := e.World.Cell(j.X, j.Y, j.Z)

	if live.Type != cell.Bedrock {
		differentiate(live, j.X, j.Y, j.Z, bary, &e.Params)
	}
	if live.Type == cell.Neuron {
		synapse.UpdateWeights(snap, j.X, j.Y, j.Z, live, &e.Params)
	}
	memoryUpdate(snap, j.X, j.Y, j.Z, live, &e.Params)
	if live.Type != cell.Bedrock {
		metabolism(live, j.Y, &e.Params)
	}

	self := snap.ReadCell(j.X, j.Y, j.Z)

	if live.Type != cell.Bedrock {
		if mv, ok := proposeMovement(snap, j.X, j.Y, j.Z, &self, &e.Params); ok {
			*moves = append(*moves, mv)
		}
		if dv, ok := proposeDivision(snap, j.X, j.Y, j.Z, &self, &e.Params); ok {
			*divisions = append(*divisions, dv)
		}
		proposePsychicExchanges(snap, j.X, j.Y, j.Z, &self, &e.Params, psychic)
	}
	proposeEnergyExchanges(snap, j.X, j.Y, j.Z, &self, &e.Params, exchanges)
}

// concatMoves concatenates per-worker buffers in ascending worker id
// order (§5, §9 "Parallel proposal buffers"), the step that makes the
// final resolution independent of which thread processed which region.
func concatMoves(buf [][]MoveIntention) []MoveIntention {
	var out []MoveIntention
	for _, b := range buf {
		out = append(out, b...)
	}
	return out
}

func concatDivisions(buf [][]DivisionIntention) []DivisionIntention {
	var out []DivisionIntention
	for _, b := range buf {
		out = append(out, b...)
	}
	return out
}

func concatExchanges(buf [][]EnergyExchangeIntention) []EnergyExchangeIntention {
	var out []EnergyExchangeIntention
	for _, b := range buf {
		out = append(out, b...)
	}
	return out
}

func concatPsychic(buf [][]PsychicIntention) []PsychicIntention {
	var out []PsychicIntention
	for _, b := range buf {
		out = append(out, b...)
	}
	return out
}
