// Package analysis holds the single live analysis record for the process.
package analysis

import (
	"sync"

	"github.com/olamideoke/resumerag/internal/domain"
)

// Latest is a lifecycle-scoped holder for the most recent AnalysisRecord.
// It starts absent, is overwritten on every successful analysis, and is
// invalidated on upload and clear. Readers may observe absent mid-update.
type Latest struct {
	mu  sync.RWMutex
	rec *domain.AnalysisRecord
}

func NewLatest() *Latest { return &Latest{} }

// Get returns the current record, or nil when none is live.
func (l *Latest) Get() *domain.AnalysisRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.rec
}

// Set replaces the live record.
func (l *Latest) Set(rec *domain.AnalysisRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rec = rec
}

// Invalidate marks the record absent.
func (l *Latest) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rec = nil
}
