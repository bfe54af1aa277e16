package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIEmbedder implements Embedder against an OpenAI-compatible embeddings
// endpoint. Ollama exposes one at <host>/v1, which is what the default
// configuration points at.
type OpenAIEmbedder struct {
	embedder embeddings.Embedder
	model    string
}

var _ Embedder = (*OpenAIEmbedder)(nil)

// NewOpenAIEmbedder creates an embedder for the given endpoint and model.
// The token is fixed to "none": local OpenAI-compatible services don't
// require authentication but the client insists on a value.
func NewOpenAIEmbedder(endpoint, model string) (*OpenAIEmbedder, error) {
	client, err := openai.New(
		openai.WithBaseURL(endpoint),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating embedding client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("wrapping embedder: %w", err)
	}

	return &OpenAIEmbedder{embedder: embedder, model: model}, nil
}

// Model returns the embedding model name.
func (e *OpenAIEmbedder) Model() string {
	return e.model
}

// EmbedText generates an embedding for a single text.
func (e *OpenAIEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("empty text input")
	}

	vecs, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return vecs[0], nil
}

// EmbedTexts generates embeddings for multiple texts in one API call.
func (e *OpenAIEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vecs, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %d texts with %s: %w", len(texts), e.model, err)
	}
	return vecs, nil
}
