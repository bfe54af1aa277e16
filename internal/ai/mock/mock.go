// Package mock provides deterministic test doubles for the ai interfaces,
// so indexing and retrieval can be tested without a running model server.
package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// Dimensions is the vector length the mock embedder produces.
const Dimensions = 32

// Embedder is a test double for ai.Embedder. Behavior can be overridden via
// the function fields; the default derives a deterministic unit vector from
// an FNV hash of the text.
type Embedder struct {
	EmbedTextFunc  func(ctx context.Context, text string) ([]float32, error)
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	calls int
}

// NewEmbedder creates a mock embedder with the default deterministic behavior.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// EmbedText generates a deterministic embedding based on the text hash.
func (m *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.calls++
	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return DeterministicVector(text, Dimensions), nil
}

// EmbedTexts generates deterministic embeddings for multiple texts.
func (m *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		vecs[i] = DeterministicVector(t, Dimensions)
	}
	return vecs, nil
}

// Calls returns how many times either embed method was invoked.
func (m *Embedder) Calls() int {
	return m.calls
}

// Generator is a test double for ai.Generator returning a canned answer.
type Generator struct {
	Answer string
	Err    error

	Prompts []string // every prompt received, in order
}

// Generate records the prompt and returns the configured answer or error.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	g.Prompts = append(g.Prompts, prompt)
	if g.Err != nil {
		return "", g.Err
	}
	return g.Answer, nil
}

// DeterministicVector creates a unit-normalized embedding from an FNV hash
// of the text, so the same text always produces the same vector.
func DeterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vec := make([]float32, dim)
	for i := range vec {
		seed = seed*1664525 + 1013904223 // LCG constants
		vec[i] = float32(seed%1000)/500.0 - 1.0
	}

	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares > 0 {
		inv := float32(1.0 / math.Sqrt(sumSquares))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec
}
