package storage

import (
	"encoding/binary"
	"math"
	"sort"
)

// VectorResult is one chunk scored against a query vector.
type VectorResult struct {
	Chunk Chunk
	Score float64 // cosine similarity in [-1, 1]
}

// VectorSearch scores every stored chunk against the query embedding with
// cosine similarity and returns up to limit results at or above minScore,
// best first. The scan is linear; at journal scale that beats maintaining an
// index structure. The sort is stable, so equal scores keep insertion order.
func (s *Store) VectorSearch(query []float32, limit int, minScore float64) ([]VectorResult, error) {
	chunks, err := s.ListAll()
	if err != nil {
		return nil, err
	}

	var results []VectorResult
	for _, c := range chunks {
		score := CosineSimilarity(query, c.Vector)
		if score < minScore {
			continue
		}
		results = append(results, VectorResult{Chunk: c, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Mismatched lengths or a zero-magnitude vector score 0 rather than erroring.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// encodeVector converts a float32 slice to a little-endian binary blob.
// Fixed-width encoding round-trips exactly, so stored vectors can be
// re-queried without re-embedding.
func encodeVector(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// decodeVector converts a binary blob back to a float32 slice.
func decodeVector(blob []byte) []float32 {
	n := len(blob) / 4
	v := make([]float32, n)
	for i := range n {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return v
}
