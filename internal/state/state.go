// Package state holds the per-process store of the loaded dataset snapshot
// and the most recent analysis result. The store is created in main and
// injected into the API layer; nothing in this package is process-global.
package state

import (
	"sync"
	"time"

	"affinity-backend/internal/affinity"
	"affinity-backend/internal/models"
)

// AnalysisRun bundles an engine result with the parameters and snapshot it
// was computed from. Runs are immutable once stored.
type AnalysisRun struct {
	Result          *affinity.Result
	Top             []affinity.Rule
	MinSupport      float64
	MinConfidence   float64
	TopK            int
	SnapshotVersion string
	RanAt           time.Time
}

// Store guards the current snapshot and last analysis run. Both values are
// immutable, so readers only need the pointer under the lock; concurrent
// analyses compute independently and last-write-wins on the stored run.
type Store struct {
	mu       sync.RWMutex
	snapshot *models.Snapshot
	run      *AnalysisRun
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// SetSnapshot records the dataset snapshot in use
func (s *Store) SetSnapshot(snapshot *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
}

// Snapshot returns the current snapshot, or nil before the first load
func (s *Store) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// SetRun records the latest analysis run
func (s *Store) SetRun(run *AnalysisRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.run = run
}

// Run returns the latest analysis run, or nil before the first analysis
func (s *Store) Run() *AnalysisRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.run
}

// Clear drops both the snapshot and the stored run
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	s.run = nil
}
