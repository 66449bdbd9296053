package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerNoCorpus(t *testing.T) {
	svc := NewService(&fakeRetriever{ok: false}, &fakeLLM{})
	got := svc.Answer(context.Background(), "What databases has the candidate used?")
	assert.Equal(t, NoResumeAnswer, got)
}

func TestAnswerNoMatchingChunks(t *testing.T) {
	svc := NewService(&fakeRetriever{ok: true}, &fakeLLM{})
	got := svc.Answer(context.Background(), "Does the candidate hold a pilot license?")
	assert.Equal(t, NotInResumeAnswer, got)
}

func TestAnswerUsesRetrievedContext(t *testing.T) {
	client := &fakeLLM{replies: map[string]string{
		"question answering": "  The candidate has used PostgreSQL and MySQL.  ",
	}}
	svc := NewService(&fakeRetriever{chunks: resumeChunks(), ok: true}, client)

	got := svc.Answer(context.Background(), "What databases has the candidate used?")
	assert.Equal(t, "The candidate has used PostgreSQL and MySQL.", got)
	assert.Equal(t, []string{"question answering"}, client.calls)
}

func TestAnswerDegradesOnGenerationFailure(t *testing.T) {
	client := &fakeLLM{errs: map[string]error{
		"question answering": errors.New("model unavailable"),
	}}
	svc := NewService(&fakeRetriever{chunks: resumeChunks(), ok: true}, client)

	got := svc.Answer(context.Background(), "What databases has the candidate used?")
	assert.Equal(t, degradedAnswer, got)
}

func TestAnswerDegradesOnRetrievalFailure(t *testing.T) {
	svc := NewService(&fakeRetriever{err: errors.New("index unreadable")}, &fakeLLM{})
	got := svc.Answer(context.Background(), "What databases has the candidate used?")
	assert.Equal(t, degradedAnswer, got)
}
