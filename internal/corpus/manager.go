// Package corpus owns the single on-disk corpus as an explicit resource.
// Writers (ingest, clear) take the exclusive lock; readers (search) take the
// shared lock, so a query can never observe a partially written index and a
// clear+ingest pair cannot interleave with another writer.
package corpus

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/olamideoke/resumerag/internal/domain"
	"github.com/olamideoke/resumerag/internal/ingest"
	"github.com/olamideoke/resumerag/internal/vectorstore"
)

// Manager serializes access to the corpus directory.
type Manager struct {
	mu       sync.RWMutex
	dir      string
	pipeline *ingest.Pipeline
	adapter  *vectorstore.Adapter
}

func NewManager(dir string, pipeline *ingest.Pipeline, adapter *vectorstore.Adapter) *Manager {
	return &Manager{dir: dir, pipeline: pipeline, adapter: adapter}
}

// Ingest runs the append-only pipeline under the writer lock.
func (m *Manager) Ingest(ctx context.Context, filePath string) (ingest.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pipeline.Ingest(ctx, filePath)
}

// Replace clears the corpus and ingests filePath as the only document, all
// under one writer lock acquisition so no reader or writer can slip between
// the wipe and the fresh index.
func (m *Manager) Replace(ctx context.Context, filePath string) (ingest.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := os.RemoveAll(m.dir); err != nil {
		return ingest.Result{}, &domain.IndexingError{Op: "clear corpus", Err: err}
	}
	return m.pipeline.Ingest(ctx, filePath)
}

// Clear removes the corpus directory entirely. Absent is fine.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return os.RemoveAll(m.dir)
}

// Exists reports whether a persisted corpus is present.
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, err := os.Stat(filepath.Join(m.dir, vectorstore.IndexFile))
	return err == nil
}

// Search loads the persisted corpus and returns the top k chunks for the
// query. ok is false when no corpus exists; that is a signal, not an error.
func (m *Manager) Search(ctx context.Context, query string, k int) (chunks []domain.Chunk, ok bool, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	store, err := m.adapter.Load(m.dir)
	if err != nil {
		return nil, false, err
	}
	if store == nil {
		return nil, false, nil
	}
	chunks, err = m.adapter.SimilaritySearch(ctx, store, query, k)
	if err != nil {
		return nil, true, err
	}
	return chunks, true, nil
}
