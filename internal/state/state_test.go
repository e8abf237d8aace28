package state

import (
	"sync"
	"testing"
	"time"

	"affinity-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStoreSnapshotAndRun(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Snapshot())
	assert.Nil(t, store.Run())

	snapshot := &models.Snapshot{Version: "v1", LoadedAt: time.Now()}
	store.SetSnapshot(snapshot)
	assert.Same(t, snapshot, store.Snapshot())

	run := &AnalysisRun{SnapshotVersion: "v1", TopK: 10}
	store.SetRun(run)
	assert.Same(t, run, store.Run())

	store.Clear()
	assert.Nil(t, store.Snapshot())
	assert.Nil(t, store.Run())
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.SetSnapshot(&models.Snapshot{Version: "v"})
			store.SetRun(&AnalysisRun{SnapshotVersion: "v"})
		}()
		go func() {
			defer wg.Done()
			if s := store.Snapshot(); s != nil {
				_ = s.Version
			}
			_ = store.Run()
		}()
	}
	wg.Wait()
}
