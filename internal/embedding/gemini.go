// Package embedding delegates text vectorization to the Gemini embedding API.
package embedding

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	// Model is the embedding model; assumed deterministic for identical input.
	Model = "gemini-embedding-001"
	// Dimension is the requested output vector length.
	Dimension = 768
)

// Embedder turns text into fixed-length vectors.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// GeminiEmbedder implements Embedder via the Gemini embedding endpoint.
type GeminiEmbedder struct {
	client *genai.Client
}

func NewGeminiEmbedder(client *genai.Client) *GeminiEmbedder {
	return &GeminiEmbedder{client: client}
}

func (e *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	contents := make([]*genai.Content, len(texts))
	for i, t := range texts {
		contents[i] = genai.NewContentFromText(t, genai.RoleUser)
	}
	resp, err := e.client.Models.EmbedContent(ctx, Model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: genai.Ptr[int32](Dimension),
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}
	vectors := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		vectors[i] = emb.Values
	}
	return vectors, nil
}
