// Package registry implements the named-snapshot directory the host uses
// to resolve a human label to a save file without tracking paths itself
// (§6 SUPPLEMENTED "named snapshots"). It is adapted from the teacher's
// registry.Store: a JSON-backed map persisted through a tmp-file-then-
// rename write, keyed here by label instead of UUID.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/somalattice/lattice/pkg/latticeerr"
)

// Entry records where a labelled snapshot lives and the cycle/hash it was
// taken at, so a host can tell whether a label is stale without opening
// the file.
type Entry struct {
	Label      string    `json:"label"`
	Path       string    `json:"path"`
	Cycle      uint64    `json:"cycle"`
	StateHash  uint64    `json:"state_hash"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Store manages label -> Entry registration with file-based persistence.
type Store struct {
	entries  map[string]*Entry
	mu       sync.RWMutex
	filePath string
}

// NewStore opens (or creates) the registry file under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("registry: create %s: %w", dataDir, err)
	}

	s := &Store{
		entries:  make(map[string]*Entry),
		filePath: filepath.Join(dataDir, "snapshots.json"),
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("registry: load: %w", err)
	}
	return s, nil
}

// Put registers a label, or updates it if Overwrite. A Put on an existing
// label without overwrite fails (§6 "labels are unique unless the caller
// explicitly overwrites").
func (s *Store) Put(label, path string, cycle uint64, stateHash uint64, overwrite bool) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[label]; exists && !overwrite {
		return nil, fmt.Errorf("registry: label %q: %w", label, latticeerr.ErrSnapshotLabelExists)
	}

	entry := &Entry{
		Label: label, Path: path, Cycle: cycle,
		StateHash: stateHash, RecordedAt: time.Now(),
	}
	prev := s.entries[label]
	s.entries[label] = entry

	if err := s.save(); err != nil {
		if prev != nil {
			s.entries[label] = prev
		} else {
			delete(s.entries, label)
		}
		return nil, fmt.Errorf("registry: persist: %w", err)
	}
	return entry, nil
}

// Get resolves a label to its entry.
func (s *Store) Get(label string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[label]
	if !ok {
		return nil, fmt.Errorf("registry: label %q: %w", label, latticeerr.ErrSnapshotNotFound)
	}
	return entry, nil
}

// List returns every registered entry, unordered.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		result = append(result, entry)
	}
	return result
}

// Delete removes a label's registration (not the underlying file).
func (s *Store) Delete(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[label]; !exists {
		return fmt.Errorf("registry: label %q: %w", label, latticeerr.ErrSnapshotNotFound)
	}
	deleted := s.entries[label]
	delete(s.entries, label)
	if err := s.save(); err != nil {
		s.entries[label] = deleted
		return fmt.Errorf("registry: persist: %w", err)
	}
	return nil
}

// Count returns the number of registered labels.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var entries []*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	for _, entry := range entries {
		s.entries[entry.Label] = entry
	}
	return nil
}

func (s *Store) save() error {
	entries := make([]*Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.filePath)
}
