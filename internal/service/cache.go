package service

import (
	"sync"

	"affinity-backend/internal/models"
)

// DatasetLoader is what the API layer depends on for dataset access
type DatasetLoader interface {
	Load() (*models.Snapshot, error)
	Invalidate()
}

// CachedLoader memoizes the loader's result keyed on the source files'
// fingerprint. The cache is a reload-avoidance optimization external to the
// engine: a snapshot is reused only while neither source file changes, and
// a changed fingerprint mints a fresh snapshot with a new version.
type CachedLoader struct {
	loader  *Loader
	enabled bool

	mu       sync.Mutex
	snapshot *models.Snapshot
}

// NewCachedLoader wraps a loader with fingerprint-keyed memoization
func NewCachedLoader(loader *Loader, enabled bool) *CachedLoader {
	return &CachedLoader{loader: loader, enabled: enabled}
}

// Load returns the cached snapshot when the source files are unchanged,
// otherwise delegates to the underlying loader.
func (c *CachedLoader) Load() (*models.Snapshot, error) {
	if !c.enabled {
		return c.loader.Load()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil {
		fingerprint, err := c.loader.Fingerprint()
		if err == nil && fingerprint == c.snapshot.Fingerprint {
			return c.snapshot, nil
		}
	}

	snapshot, err := c.loader.Load()
	if err != nil {
		return nil, err
	}
	c.snapshot = snapshot
	return snapshot, nil
}

// Invalidate drops the cached snapshot, forcing a reload on the next Load
func (c *CachedLoader) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
}
