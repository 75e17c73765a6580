package engine

// MoveIntention proposes relocating an alive cell into an empty neighbor
// (§4.8). SourceLinear is the mover's stable sort key.
type MoveIntention struct {
	SourceX, SourceY, SourceZ int32
	DestX, DestY, DestZ       int32
	D                         float64
	SourceLinear              int64
}

// DivisionIntention proposes splitting a sufficiently energetic cell into
// an empty neighbor (§4.9).
type DivisionIntention struct {
	SourceX, SourceY, SourceZ int32
	DestX, DestY, DestZ       int32
	E                         float64
	SourceLinear              int64
}

// EnergyExchangeIntention proposes an osmotic energy transfer between two
// genetically similar alive neighbors (§4.10), considered once per pair.
type EnergyExchangeIntention struct {
	SourceX, SourceY, SourceZ int32
	TargetX, TargetY, TargetZ int32
	Delta                      float64
	SourceLinear, TargetLinear int64
}

// PsychicIntention proposes a unilateral stress/boredom pull from a
// neighbor onto the source (§4.11).
type PsychicIntention struct {
	SourceX, SourceY, SourceZ int32
	DeltaC, DeltaL             float64
	SourceLinear, TargetLinear int64
}

// intentionSet holds every proposal produced by one parallel phase, ready
// for serial resolution in the fixed order movements, divisions, energy
// exchanges, psychic exchanges (§4.12).
type intentionSet struct {
	moves     []MoveIntention
	divisions []DivisionIntention
	exchanges []EnergyExchangeIntention
	psychic   []PsychicIntention
}
