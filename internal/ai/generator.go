package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaGenerator implements Generator against the native Ollama API.
type OllamaGenerator struct {
	llm   *ollama.LLM
	model string
}

var _ Generator = (*OllamaGenerator)(nil)

// NewOllamaGenerator creates a generator talking to the Ollama server at
// serverURL using the named model.
func NewOllamaGenerator(serverURL, model string) (*OllamaGenerator, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}
	return &OllamaGenerator{llm: llm, model: model}, nil
}

// Model returns the generation model name.
func (g *OllamaGenerator) Model() string {
	return g.model
}

// Generate sends the prompt to Ollama and returns the raw text response.
// An unreachable server or non-success response surfaces as an error; no
// answer is ever fabricated locally.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	answer, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		return "", fmt.Errorf("generating with %s: %w", g.model, err)
	}
	return answer, nil
}
