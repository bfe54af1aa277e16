package storage

import (
	"cmp"
	"fmt"
	"slices"
)

// RankedItem represents a search result from a single strategy.
// Used as input to fusion.
type RankedItem struct {
	Path       string
	Date       string
	ChunkIndex int
	Content    string
	Score      float64 // original score from the strategy (BM25, cosine, ...)
	Source     string  // strategy name: "fts", "vector"
}

// FusedResult represents a result after fusing multiple strategies.
type FusedResult struct {
	Path         string
	Date         string
	ChunkIndex   int
	Content      string
	FusionScore  float64
	SourceScores map[string]float64
	SourceRanks  map[string]int
}

// RRFConfig holds configuration for Reciprocal Rank Fusion.
type RRFConfig struct {
	K int // smoothing parameter
}

// DefaultRRFConfig returns the default RRF configuration.
// k=60 is the standard value from the original RRF paper.
func DefaultRRFConfig() RRFConfig {
	return RRFConfig{K: 60}
}

// FuseRRF combines results from multiple search strategies using Reciprocal
// Rank Fusion: score(d) = Σ(1 / (k + rank(d))), rank starting at 1.
//
// Reference: "Reciprocal Rank Fusion outperforms Condorcet and individual
// Rank Learning Methods" by Cormack, Clarke, and Buettcher (SIGIR 2009).
func FuseRRF(strategyResults map[string][]RankedItem, config RRFConfig) []FusedResult {
	if len(strategyResults) == 0 {
		return []FusedResult{}
	}

	k := cmp.Or(config.K, 60)

	// A single strategy needs no fusion.
	if len(strategyResults) == 1 {
		for source, items := range strategyResults {
			fused := make([]FusedResult, len(items))
			for i, r := range items {
				fused[i] = FusedResult{
					Path:         r.Path,
					Date:         r.Date,
					ChunkIndex:   r.ChunkIndex,
					Content:      r.Content,
					FusionScore:  r.Score,
					SourceScores: map[string]float64{source: r.Score},
					SourceRanks:  map[string]int{source: i + 1},
				}
			}
			return fused
		}
	}

	docScores := make(map[string]*FusedResult)
	var order []string

	// Iterate sources in a fixed order so ties break deterministically.
	sources := make([]string, 0, len(strategyResults))
	for source := range strategyResults {
		sources = append(sources, source)
	}
	slices.Sort(sources)

	for _, source := range sources {
		items := strategyResults[source]
		for rank, r := range items {
			// Chunk identity is (path, chunk_index).
			docID := fmt.Sprintf("%s#%d", r.Path, r.ChunkIndex)

			doc, exists := docScores[docID]
			if !exists {
				doc = &FusedResult{
					Path:         r.Path,
					Date:         r.Date,
					ChunkIndex:   r.ChunkIndex,
					Content:      r.Content,
					SourceScores: make(map[string]float64),
					SourceRanks:  make(map[string]int),
				}
				docScores[docID] = doc
				order = append(order, docID)
			}

			doc.FusionScore += 1.0 / float64(k+rank+1)
			doc.SourceScores[source] = r.Score
			doc.SourceRanks[source] = rank + 1
		}
	}

	results := make([]FusedResult, 0, len(order))
	for _, id := range order {
		results = append(results, *docScores[id])
	}

	slices.SortStableFunc(results, func(a, b FusedResult) int {
		return cmp.Compare(b.FusionScore, a.FusionScore) // descending
	})

	return results
}
