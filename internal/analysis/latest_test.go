package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olamideoke/resumerag/internal/domain"
)

func TestLatestLifecycle(t *testing.T) {
	cell := NewLatest()
	assert.Nil(t, cell.Get())

	rec := &domain.AnalysisRecord{ATSScore: 72, PrimaryRole: "Backend Developer"}
	cell.Set(rec)
	assert.Equal(t, rec, cell.Get())

	replacement := &domain.AnalysisRecord{ATSScore: 55, PrimaryRole: "Data Analyst"}
	cell.Set(replacement)
	assert.Equal(t, replacement, cell.Get())

	cell.Invalidate()
	assert.Nil(t, cell.Get())
}
