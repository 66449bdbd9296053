package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/olamideoke/resumerag/internal/domain"
	"github.com/olamideoke/resumerag/internal/llm"
)

// fallbackRole is used whenever role classification fails or comes back
// without the expected field.
const fallbackRole = "Software Developer"

// Service runs the retrieval-augmented analysis and QA flows.
type Service struct {
	retriever Retriever
	llm       llm.Client
}

func NewService(retriever Retriever, client llm.Client) *Service {
	return &Service{retriever: retriever, llm: client}
}

// skillGapResponse is the structured body the analysis prompt asks for.
type skillGapResponse struct {
	MissingSkills []string `json:"missing_skills"`
	Suggestions   []string `json:"suggestions"`
	Summary       string   `json:"summary"`
}

// fallbackSkillGap is the fixed degraded value for unparseable or failed
// analysis output. Parse errors never propagate upward.
func fallbackSkillGap() skillGapResponse {
	return skillGapResponse{
		MissingSkills: []string{},
		Suggestions:   []string{"Unable to generate suggestions due to formatting issue."},
		Summary:       "Resume analysis could not be completed properly.",
	}
}

// Analyze retrieves a broad context from the corpus, asks the model for a
// skill-gap analysis and a role classification, and combines them with the
// deterministic ATS score. Returns (nil, nil) when no corpus exists. Only
// retrieval/store failures surface as errors; model failures degrade to the
// fixed fallback values.
func (s *Service) Analyze(ctx context.Context) (*domain.AnalysisRecord, error) {
	chunks, ok, err := s.retriever.Search(ctx, analysisQuery, AnalysisK)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	contextText := JoinContext(chunks)

	gap := s.skillGap(ctx, contextText)

	return &domain.AnalysisRecord{
		ATSScore:      ATSScore(contextText),
		MissingSkills: gap.MissingSkills,
		Suggestions:   gap.Suggestions,
		Summary:       gap.Summary,
		PrimaryRole:   s.classifyRole(ctx, contextText),
	}, nil
}

func (s *Service) skillGap(ctx context.Context, contextText string) skillGapResponse {
	raw, err := s.llm.Generate(ctx, "skill-gap analysis", fmt.Sprintf(atsPrompt, contextText), analysisMaxTokens)
	if err != nil {
		log.Printf("analysis generation failed, using fallback: %v", err)
		return fallbackSkillGap()
	}

	var parsed skillGapResponse
	if err := json.Unmarshal([]byte(llm.CleanJSON(raw)), &parsed); err != nil {
		log.Printf("analysis JSON parse failed, using fallback: %v", err)
		return fallbackSkillGap()
	}
	if parsed.MissingSkills == nil {
		parsed.MissingSkills = []string{}
	}
	if parsed.Suggestions == nil {
		parsed.Suggestions = []string{}
	}
	return parsed
}

func (s *Service) classifyRole(ctx context.Context, contextText string) string {
	raw, err := s.llm.Generate(ctx, "role classification", fmt.Sprintf(rolePrompt, contextText), roleMaxTokens)
	if err != nil {
		log.Printf("role classification failed, using fallback: %v", err)
		return fallbackRole
	}

	var parsed struct {
		PrimaryRole string `json:"primary_role"`
	}
	if err := json.Unmarshal([]byte(llm.CleanJSON(raw)), &parsed); err != nil || parsed.PrimaryRole == "" {
		return fallbackRole
	}
	return parsed.PrimaryRole
}
