// Package search turns a natural-language question into ranked journal
// chunks and, with a generator attached, into a grounded answer.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/mfenderov/journal42/internal/ai"
	"github.com/mfenderov/journal42/internal/storage"
)

// Searcher retrieves the most similar journal chunks for a query.
type Searcher struct {
	store    *storage.Store
	embedder ai.Embedder
	topK     int
	minScore float64
}

// NewSearcher creates a searcher over the given store and embedder.
func NewSearcher(store *storage.Store, embedder ai.Embedder, topK int, minScore float64) *Searcher {
	if topK <= 0 {
		topK = 5
	}
	return &Searcher{store: store, embedder: embedder, topK: topK, minScore: minScore}
}

// Retrieve embeds the query and returns the top matching chunks by cosine
// similarity, best first. A blank query is rejected before hitting the model.
func (s *Searcher) Retrieve(ctx context.Context, query string) ([]storage.VectorResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	vec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := s.store.VectorSearch(vec, s.topK, s.minScore)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}
	return results, nil
}

// Hybrid combines keyword and semantic retrieval over the same query,
// fusing the ranked lists with reciprocal rank fusion.
func (s *Searcher) Hybrid(ctx context.Context, query string) ([]storage.FusedResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	vec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return s.store.HybridSearch(ctx, query, vec, s.topK)
}
