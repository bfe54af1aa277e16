package storage

import (
	"context"
	"strings"
)

// HybridSearch combines FTS5 keyword search with vector semantic search
// using RRF fusion. With a nil embedding only FTS runs; with an empty query
// only vector search runs.
func (s *Store) HybridSearch(ctx context.Context, query string, queryEmbedding []float32, limit int) ([]FusedResult, error) {
	strategyResults := make(map[string][]RankedItem)

	if strings.TrimSpace(query) != "" {
		ftsResults, err := s.ftsSearch(query, limit*2) // extra depth helps fusion
		if err != nil {
			return nil, err
		}
		if len(ftsResults) > 0 {
			strategyResults["fts"] = ftsResults
		}
	}

	if len(queryEmbedding) > 0 {
		vectorResults, err := s.VectorSearch(queryEmbedding, limit*2, 0)
		if err != nil {
			return nil, err
		}
		if len(vectorResults) > 0 {
			ranked := make([]RankedItem, len(vectorResults))
			for i, r := range vectorResults {
				ranked[i] = RankedItem{
					Path:       r.Chunk.Path,
					Date:       r.Chunk.Date,
					ChunkIndex: r.Chunk.ChunkIndex,
					Content:    r.Chunk.Content,
					Score:      r.Score,
					Source:     "vector",
				}
			}
			strategyResults["vector"] = ranked
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strategyResults) == 0 {
		return []FusedResult{}, nil
	}

	results := FuseRRF(strategyResults, DefaultRRFConfig())
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
