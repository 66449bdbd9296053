package rag

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Fixed answers for the degraded QA paths. The two short-circuits are
// deliberately distinct: absent corpus vs. present corpus with no match.
const (
	NoResumeAnswer    = "No resume uploaded yet."
	NotInResumeAnswer = "This information is not present in the resume."
	degradedAnswer    = "The answer could not be generated right now. Please try again."
)

// Answer responds to a free-form question using only retrieved resume
// content. It always returns a well-formed sentence: model and retrieval
// failures degrade to fixed text instead of surfacing an error.
func (s *Service) Answer(ctx context.Context, question string) string {
	chunks, ok, err := s.retriever.Search(ctx, question, QuestionK)
	if err != nil {
		log.Printf("question retrieval failed: %v", err)
		return degradedAnswer
	}
	if !ok {
		return NoResumeAnswer
	}
	if len(chunks) == 0 {
		return NotInResumeAnswer
	}

	prompt := fmt.Sprintf(qaPrompt, JoinContext(chunks), question)
	answer, err := s.llm.Generate(ctx, "question answering", prompt, answerMaxTokens)
	if err != nil {
		log.Printf("answer generation failed: %v", err)
		return degradedAnswer
	}
	return strings.TrimSpace(answer)
}
