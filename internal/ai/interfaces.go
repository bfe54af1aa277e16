// Package ai wraps the two external model services the tool depends on: the
// embedding model and the text-generation model, both served by a local
// Ollama instance. Neither wrapper retries; failures propagate to the caller.
package ai

import "context"

// Embedder turns text into fixed-length vectors. Deterministic for a given
// model version and input.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
