// Package replay implements the opaque per-cycle action stream described
// in §6 "Replay API". It is directly grounded on the teacher's
// pkg/protocol Command/Executor/CommandHandler registry: a small
// dispatch table keyed by action kind, Register(kind, handler) to add
// one, Execute(action) to run it by map lookup. Action kinds are narrowed
// to the two the spec names, SetParameter and PlaceCell; a delete is a
// PlaceCell action whose template fields are left at zero.
package replay

import (
	"fmt"
	"sort"

	"github.com/somalattice/lattice/pkg/cell"
	"github.com/somalattice/lattice/pkg/engine"
	"github.com/somalattice/lattice/pkg/latticeerr"
)

// Kind identifies the action's handler.
type Kind string

const (
	SetParameter Kind = "set_parameter"
	PlaceCell    Kind = "place_cell"
)

// Action is the wire shape described by §6: a cycle to apply it on, a
// kind, a string key, and up to four numeric payload values.
type Action struct {
	Cycle     uint64
	Kind      Kind
	TargetKey string
	Val1      float64
	Val2      float64
	Val3      float64
	Val4      float64
}

// Handler applies one action to an engine.
type Handler func(e *engine.Engine, a Action) error

// Executor dispatches actions by kind through a small registry, the way
// protocol.Executor dispatches commands by CommandType.
type Executor struct {
	handlers map[Kind]Handler
}

// NewExecutor registers the two built-in action kinds.
func NewExecutor() *Executor {
	ex := &Executor{handlers: make(map[Kind]Handler)}
	ex.Register(SetParameter, handleSetParameter)
	ex.Register(PlaceCell, handlePlaceCell)
	return ex
}

// Register installs or replaces the handler for a kind.
func (ex *Executor) Register(kind Kind, h Handler) {
	ex.handlers[kind] = h
}

// Execute dispatches a single action by map lookup.
func (ex *Executor) Execute(e *engine.Engine, a Action) error {
	h, ok := ex.handlers[a.Kind]
	if !ok {
		return fmt.Errorf("replay: %q: %w", a.Kind, latticeerr.ErrUnknownActionKind)
	}
	return h(e, a)
}

// Queue holds pending actions keyed by the cycle they are due on.
type Queue struct {
	pending []Action
}

// NewQueue returns an empty action queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule enqueues an action for application before the named cycle.
func (q *Queue) Schedule(a Action) {
	q.pending = append(q.pending, a)
}

// DrainDue removes and returns every action due at or before upcomingCycle,
// sorted (cycle, kind, target_key) for deterministic application order.
func (q *Queue) DrainDue(upcomingCycle uint64) []Action {
	var due, rest []Action
	for _, a := range q.pending {
		if a.Cycle <= upcomingCycle {
			due = append(due, a)
		} else {
			rest = append(rest, a)
		}
	}
	q.pending = rest
	sort.Slice(due, func(i, j int) bool {
		if due[i].Cycle != due[j].Cycle {
			return due[i].Cycle < due[j].Cycle
		}
		if due[i].Kind != due[j].Kind {
			return due[i].Kind < due[j].Kind
		}
		return due[i].TargetKey < due[j].TargetKey
	})
	return due
}

// ApplyDue drains and executes every action due for upcomingCycle, the
// step a host takes before calling Advance.
func (ex *Executor) ApplyDue(e *engine.Engine, q *Queue, upcomingCycle uint64) error {
	for _, a := range q.DrainDue(upcomingCycle) {
		if err := ex.Execute(e, a); err != nil {
			return err
		}
	}
	return nil
}

func handleSetParameter(e *engine.Engine, a Action) error {
	if !e.Params.SetByKey(a.TargetKey, a.Val1) {
		return fmt.Errorf("replay: %q: %w", a.TargetKey, latticeerr.ErrUnknownParameterKey)
	}
	return nil
}

func handlePlaceCell(e *engine.Engine, a Action) error {
	x, y, z := int32(a.Val1), int32(a.Val2), int32(a.Val3)
	overwrite := a.Val4 != 0

	tmpl := engine.Template{}
	if t, ok := cellTypeByName[a.TargetKey]; ok {
		tmpl.Alive = true
		tmpl.Type = t
		tmpl.E = 1.0
		tmpl.R = 0.5
		tmpl.Sc = 0.5
	}

	e.PlaceCell(x, y, z, tmpl, overwrite)
	return nil
}

var cellTypeByName = map[string]cell.Type{
	"stem":    cell.Stem,
	"soma":    cell.Soma,
	"neuron":  cell.Neuron,
	"bedrock": cell.Bedrock,
}
