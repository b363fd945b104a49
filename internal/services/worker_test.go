package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"careerpath/careerpath-api/internal/models"
)

type fakeProfileIndexer struct {
	mu      sync.Mutex
	indexed []string
}

func (f *fakeProfileIndexer) IndexProfile(ctx context.Context, resumeID string, profile *models.ResumeProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexed = append(f.indexed, resumeID)
	return nil
}

func (f *fakeProfileIndexer) indexedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.indexed...)
}

func TestIndexWorkerDrainsQueueOnStop(t *testing.T) {
	indexer := &fakeProfileIndexer{}
	worker := NewIndexWorker(indexer, 2)

	ids := []string{"a", "b", "c", "d", "e"}
	profile := seniorBackendProfile()
	for _, id := range ids {
		worker.EnqueueProfile(id, profile)
	}

	worker.Start(context.Background())
	worker.Stop()

	assert.ElementsMatch(t, ids, indexer.indexedIDs())
}

func TestIndexWorkerRejectsEnqueueAfterStop(t *testing.T) {
	indexer := &fakeProfileIndexer{}
	worker := NewIndexWorker(indexer, 1)

	worker.Start(context.Background())
	worker.Stop()

	worker.EnqueueProfile("late", seniorBackendProfile())

	assert.NotContains(t, indexer.indexedIDs(), "late")
}
