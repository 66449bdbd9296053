// Package rag answers analysis requests and questions against the indexed
// resume: retrieve top-k chunks, build a grounded prompt, call the model, and
// parse the response with deterministic fallbacks.
package rag

import (
	"context"
	"strings"

	"github.com/olamideoke/resumerag/internal/domain"
)

const (
	// AnalysisK is the retrieval width for holistic analysis: broad coverage.
	AnalysisK = 12
	// QuestionK is the retrieval width for targeted QA: precision over recall.
	QuestionK = 6

	// analysisQuery is the fixed retrieval probe for whole-resume analysis.
	analysisQuery = "skills experience projects technologies"
)

// Retriever is the read side of the corpus. ok is false when no corpus
// exists at all.
type Retriever interface {
	Search(ctx context.Context, query string, k int) (chunks []domain.Chunk, ok bool, err error)
}

// JoinContext concatenates chunk texts in result order, blank-line separated.
func JoinContext(chunks []domain.Chunk) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return strings.Join(texts, "\n\n")
}
