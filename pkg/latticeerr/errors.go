// Package latticeerr collects the sentinel errors raised across the engine,
// config, persistence, and replay packages. Call sites wrap these with
// fmt.Errorf("...: %w", err) to attach coordinates, paths, or keys.
package latticeerr

import "errors"

// Fatal errors: the engine or host is not usable until re-initialised.
var (
	ErrChunkAllocationFailed = errors.New("latticeerr: chunk allocation failed")
	ErrSaveHeaderCorrupt     = errors.New("latticeerr: save file header corrupt")
	ErrSaveChecksumMismatch  = errors.New("latticeerr: save file checksum mismatch")
	ErrSaveVersionMismatch   = errors.New("latticeerr: save file format version mismatch")
	ErrInvalidSeedFile       = errors.New("latticeerr: invalid seed file format")
)

// Recoverable, logged: execution continues with the offending input ignored.
var (
	ErrUnknownParameterKey = errors.New("latticeerr: unknown parameter key")
	ErrMalformedParamLine  = errors.New("latticeerr: malformed key=value line")
	ErrChunkUnallocatable  = errors.New("latticeerr: brush target chunk could not be allocated")
)

// Host / config errors.
var (
	ErrInvalidWorkerCount  = errors.New("latticeerr: worker count must not be negative")
	ErrInvalidWorldSize    = errors.New("latticeerr: world dimensions must be positive")
	ErrInvalidDensity      = errors.New("latticeerr: density must be within [0,1]")
	ErrConfigValidation    = errors.New("latticeerr: config validation failed")
	ErrUnknownActionKind   = errors.New("latticeerr: unknown replay action kind")
	ErrSnapshotNotFound    = errors.New("latticeerr: named snapshot not found")
	ErrSnapshotLabelExists = errors.New("latticeerr: named snapshot label already exists")
)
