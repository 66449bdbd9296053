package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olamideoke/resumerag/internal/domain"
)

// fakeRetriever serves canned chunks; ok=false simulates an absent corpus.
type fakeRetriever struct {
	chunks []domain.Chunk
	ok     bool
	err    error
}

func (f *fakeRetriever) Search(context.Context, string, int) ([]domain.Chunk, bool, error) {
	return f.chunks, f.ok, f.err
}

// fakeLLM replies per task name so analysis and role calls can be steered
// independently.
type fakeLLM struct {
	replies map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeLLM) Generate(_ context.Context, task, _ string, _ int32) (string, error) {
	f.calls = append(f.calls, task)
	if err, ok := f.errs[task]; ok {
		return "", err
	}
	return f.replies[task], nil
}

func resumeChunks() []domain.Chunk {
	return []domain.Chunk{
		{Text: "Developed python services on aws with 4 years experience.", SourceID: "resume.pdf", SourceType: domain.SourceTypeResume},
		{Text: "Led projects delivering sql reporting and docker rollouts, bachelor of science.", SourceID: "resume.pdf", SourceType: domain.SourceTypeResume, SequenceIndex: 1},
	}
}

func TestAnalyzeNoCorpus(t *testing.T) {
	svc := NewService(&fakeRetriever{ok: false}, &fakeLLM{})
	rec, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestAnalyzeRetrievalErrorPropagates(t *testing.T) {
	svc := NewService(&fakeRetriever{err: errors.New("index unreadable")}, &fakeLLM{})
	_, err := svc.Analyze(context.Background())
	assert.Error(t, err)
}

func TestAnalyzeParsesModelOutput(t *testing.T) {
	client := &fakeLLM{replies: map[string]string{
		"skill-gap analysis":  "```json\n{\"missing_skills\":[\"kubernetes\"],\"suggestions\":[\"Quantify impact\"],\"summary\":\"Solid backend profile.\"}\n```",
		"role classification": `{"primary_role": "Backend Developer"}`,
	}}
	svc := NewService(&fakeRetriever{chunks: resumeChunks(), ok: true}, client)

	rec, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, []string{"kubernetes"}, rec.MissingSkills)
	assert.Equal(t, []string{"Quantify impact"}, rec.Suggestions)
	assert.Equal(t, "Solid backend profile.", rec.Summary)
	assert.Equal(t, "Backend Developer", rec.PrimaryRole)
	// Scorer runs on the retrieved context, not on model output.
	assert.Equal(t, 80, rec.ATSScore)
}

func TestAnalyzeMalformedJSONFallsBack(t *testing.T) {
	client := &fakeLLM{replies: map[string]string{
		"skill-gap analysis":  "Here is my analysis: the resume looks fine overall!",
		"role classification": `{"primary_role": "Data Analyst"}`,
	}}
	svc := NewService(&fakeRetriever{chunks: resumeChunks(), ok: true}, client)

	rec, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Empty(t, rec.MissingSkills)
	assert.Equal(t, []string{"Unable to generate suggestions due to formatting issue."}, rec.Suggestions)
	assert.Equal(t, "Resume analysis could not be completed properly.", rec.Summary)
	assert.Equal(t, "Data Analyst", rec.PrimaryRole)
	assert.Equal(t, 80, rec.ATSScore)
}

func TestAnalyzeGenerationFailureFallsBack(t *testing.T) {
	client := &fakeLLM{
		errs: map[string]error{
			"skill-gap analysis":  &domain.GenerationError{Task: "skill-gap analysis", Err: errors.New("timeout")},
			"role classification": &domain.GenerationError{Task: "role classification", Err: errors.New("timeout")},
		},
	}
	svc := NewService(&fakeRetriever{chunks: resumeChunks(), ok: true}, client)

	rec, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "Resume analysis could not be completed properly.", rec.Summary)
	assert.Equal(t, "Software Developer", rec.PrimaryRole)
	assert.Equal(t, 80, rec.ATSScore)
}

func TestClassifyRoleMissingField(t *testing.T) {
	client := &fakeLLM{replies: map[string]string{
		"skill-gap analysis":  `{"missing_skills":[],"suggestions":[],"summary":"ok"}`,
		"role classification": `{"role": "Backend Developer"}`,
	}}
	svc := NewService(&fakeRetriever{chunks: resumeChunks(), ok: true}, client)

	rec, err := svc.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Software Developer", rec.PrimaryRole)
}
