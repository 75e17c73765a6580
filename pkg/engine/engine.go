// Package engine orchestrates the six-phase cycle over a lattice.World:
// structural differentiation, the neural sub-scheduler, Hebbian learning,
// memory update, metabolism, and the four intention-producing laws,
// followed by deterministic resolution, finalization, and state hashing.
// It is the core described by the specification's component list; every
// other package in this module is a leaf this one assembles.
package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/somalattice/lattice/pkg/cell"
	"github.com/somalattice/lattice/pkg/lattice"
	"github.com/somalattice/lattice/pkg/latticeerr"
	"github.com/somalattice/lattice/pkg/params"
	"github.com/somalattice/lattice/pkg/rng"
	"github.com/somalattice/lattice/pkg/schedule"
)

// Engine is one authoritative world instance and everything needed to
// advance it. ID is a correlation identifier stamped into log lines, the
// way the teacher stamps NeuronID and SynapseID onto its records; it is
// not written into save files. It plays no role in cell identity, which
// is always an integer coordinate.
type Engine struct {
	ID uuid.UUID

	SizeX, SizeY, SizeZ int32
	Seed                 uint32
	Cycle                uint64

	Params params.Parameters
	World  *lattice.World

	Workers *schedule.Pool

	// AuditCycle enables the optional invariant-violation quarantine pass
	// (§7) after every finalization.
	AuditCycle bool

	mu sync.Mutex
}

// New allocates an empty world of the given footprint with default
// parameters and a worker pool sized to the host's logical core count.
func New(sizeX, sizeY, sizeZ int32) (*Engine, error) {
	if sizeX <= 0 || sizeY <= 0 || sizeZ <= 0 {
		return nil, fmt.Errorf("engine: new(%d,%d,%d): %w", sizeX, sizeY, sizeZ, latticeerr.ErrInvalidWorldSize)
	}
	return &Engine{
		ID:      uuid.New(),
		SizeX:   sizeX,
		SizeY:   sizeY,
		SizeZ:   sizeZ,
		Params:  params.Default(),
		World:   lattice.NewWorld(),
		Workers: schedule.NewPool(schedule.DefaultWorkerCount()),
	}, nil
}

// SetWorkerCount overrides the pool's worker count, e.g. for the
// determinism harness's across-thread-count repeatability scenario (S1).
func (e *Engine) SetWorkerCount(n int) {
	e.Workers = schedule.NewPool(n)
}

// Initialize creates a bedrock floor at y=0 over the (size_x, size_z)
// footprint and seeds a random field above it using the deterministic
// coordinate+seed RNG (§6).
func (e *Engine) Initialize(seed uint32, density float64) error {
	if density < 0 || density > 1 {
		return fmt.Errorf("engine: initialize: density %f: %w", density, latticeerr.ErrInvalidDensity)
	}
	e.Seed = seed

	for x := int32(0); x < e.SizeX; x++ {
		for z := int32(0); z < e.SizeZ; z++ {
			c := e.World.Cell(x, 0, z)
			c.Reset()
			c.Type = cell.Bedrock
			c.Alive = true
			c.R = 1
			c.Sc = 1
		}
	}

	for x := int32(0); x < e.SizeX; x++ {
		for y := int32(1); y < e.SizeY; y++ {
			for z := int32(0); z < e.SizeZ; z++ {
				roll := rng.CoordFloat01(x, y, z, seed)
				if roll >= density {
					continue
				}
				c := e.World.Cell(x, y, z)
				c.Reset()
				c.Type = cell.Stem
				c.Alive = true
				c.R = rng.CoordFloat01(x, y, z, seed^0x9E3779B9)
				c.Sc = rng.CoordFloat01(x, y, z, seed^0x85EBCA6B)
				c.E = 1.0 + rng.CoordFloat01(x, y, z, seed^0xC2B2AE35)
			}
		}
	}
	return nil
}

// Advance runs exactly one cycle: barycentre, neural sub-loop, snapshot,
// parallel phase, serial resolution, and parallel finalization.
func (e *Engine) Advance() {
	bary := e.computeBarycentre()
	e.runNeuralSubTicks()

	e.mu.Lock()
	snap := e.World.Clone()
	e.mu.Unlock()

	intents := e.runParallelPhase(snap, bary)
	e.resolve(intents)
	e.finalize()

	if e.AuditCycle {
		e.auditAndQuarantine()
	}

	e.Cycle++
}

// CellCountAlive returns the number of alive cells across the whole world.
func (e *Engine) CellCountAlive() int {
	return e.World.CountAlive()
}

// CopyStateInto copies the authoritative world into other's, for the
// double-buffered-rendering external-sync contract (§5): a short lock is
// held for the duration of the copy, never across a cycle.
func (e *Engine) CopyStateInto(other *Engine) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.World.CopyInto(other.World)
	other.Cycle = e.Cycle
	other.SizeX, other.SizeY, other.SizeZ = e.SizeX, e.SizeY, e.SizeZ
}

// Template is the field set place_cell applies to a target voxel. A zero
// value Template (Alive == false) places an empty cell, i.e. a delete.
type Template struct {
	Alive bool
	Type  cell.Type
	R, Sc float64
	E, D, C, L, M float64
	P float64
}

// PlaceCell writes tmpl at (x,y,z). If the voxel is already occupied and
// overwrite is false, it is a no-op returning false. A zero-value
// Template always deletes, whatever overwrite is set to.
func (e *Engine) PlaceCell(x, y, z int32, tmpl Template, overwrite bool) bool {
	c := e.World.Cell(x, y, z)
	if !tmpl.Alive {
		c.Reset()
		return true
	}
	if c.Alive && !overwrite {
		return false
	}
	c.Reset()
	c.Type = tmpl.Type
	c.R = cell.Clamp(tmpl.R, 0, 1)
	c.Sc = cell.Clamp(tmpl.Sc, 0, 1)
	c.E = cell.ClampNonNegative(tmpl.E)
	c.D = cell.ClampNonNegative(tmpl.D)
	c.C = cell.Clamp(tmpl.C, 0, 1)
	c.L = cell.ClampNonNegative(tmpl.L)
	c.M = cell.ClampNonNegative(tmpl.M)
	c.P = cell.Clamp(tmpl.P, -1, 1)
	c.Alive = true
	return true
}
