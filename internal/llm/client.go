// Package llm wraps the hosted language model behind a single-shot,
// deterministic-sampling client. All prompts run at temperature zero with a
// per-task output token cap and a bounded call timeout.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/olamideoke/resumerag/internal/domain"
)

// DefaultModel is the generation model used for every task.
const DefaultModel = "gemini-2.5-flash"

// callTimeout bounds every model call so a stuck request surfaces as a
// GenerationError instead of hanging the worker.
const callTimeout = 60 * time.Second

// Client is a stateless, single-turn text completion function.
type Client interface {
	Generate(ctx context.Context, task, prompt string, maxTokens int32) (string, error)
}

// GeminiClient implements Client on top of the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(client *genai.Client) *GeminiClient {
	return &GeminiClient{client: client, model: DefaultModel}
}

func (c *GeminiClient) Generate(ctx context.Context, task, prompt string, maxTokens int32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0),
		MaxOutputTokens: maxTokens,
	})
	if err != nil {
		return "", &domain.GenerationError{Task: task, Err: err}
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", &domain.GenerationError{Task: task, Err: fmt.Errorf("empty model response")}
	}
	return text, nil
}

// CleanJSON strips markdown code fences the model sometimes wraps around a
// JSON body.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}
