package storage

import (
	"math"
	"path/filepath"
	"testing"
)

// internal-package test helper; the exported API is covered in store_test.go.
func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func putChunk(t *testing.T, store *Store, path string, vec []float32) {
	t.Helper()
	err := store.ReplaceFileChunks(path, []Chunk{{
		Path:       path,
		ChunkIndex: 0,
		Content:    path,
		Vector:     vec,
		Model:      "m",
		FileMTime:  1,
	}})
	if err != nil {
		t.Fatalf("ReplaceFileChunks(%s) failed: %v", path, err)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"zero vector", []float32{0, 0}, []float32{1, 2}, 0.0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0.0},
		{"empty", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.want)
			}
			if got < -1 || got > 1 {
				t.Errorf("score %v outside [-1, 1]", got)
			}
		})
	}
}

func TestVectorCodec_RoundTrip(t *testing.T) {
	vectors := [][]float32{
		{},
		{0},
		{1.5, -2.25, 3.125},
		{math.MaxFloat32, -math.MaxFloat32, math.SmallestNonzeroFloat32},
	}

	for _, v := range vectors {
		got := decodeVector(encodeVector(v))
		if len(got) != len(v) {
			t.Fatalf("length %d, want %d", len(got), len(v))
		}
		for i := range v {
			if got[i] != v[i] {
				t.Errorf("index %d: %v != %v", i, got[i], v[i])
			}
		}
	}
}

func TestVectorSearch_OrderAndLimit(t *testing.T) {
	store := openStore(t)

	// Three chunks at different angles from the query (1,0,0).
	putChunk(t, store, "far.txt", []float32{0, 1, 0})
	putChunk(t, store, "close.txt", []float32{1, 0.1, 0})
	putChunk(t, store, "mid.txt", []float32{1, 1, 0})

	results, err := store.VectorSearch([]float32{1, 0, 0}, 2, 0)
	if err != nil {
		t.Fatalf("VectorSearch failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Chunk.Path != "close.txt" || results[1].Chunk.Path != "mid.txt" {
		t.Errorf("unexpected ranking: %s then %s", results[0].Chunk.Path, results[1].Chunk.Path)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Error("results not in descending score order")
		}
	}
	for _, r := range results {
		if r.Score < -1 || r.Score > 1 {
			t.Errorf("score %v outside [-1, 1]", r.Score)
		}
	}
}

func TestVectorSearch_ThresholdAndTies(t *testing.T) {
	store := openStore(t)

	// Identical vectors: insertion order must break the tie.
	putChunk(t, store, "first.txt", []float32{1, 0})
	putChunk(t, store, "second.txt", []float32{1, 0})
	putChunk(t, store, "opposite.txt", []float32{-1, 0})

	results, err := store.VectorSearch([]float32{1, 0}, 10, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("threshold should drop the opposite vector: got %d results", len(results))
	}
	if results[0].Chunk.Path != "first.txt" || results[1].Chunk.Path != "second.txt" {
		t.Errorf("tie not broken by insertion order: %s then %s", results[0].Chunk.Path, results[1].Chunk.Path)
	}
}

func TestVectorSearch_EmptyIndex(t *testing.T) {
	store := openStore(t)

	results, err := store.VectorSearch([]float32{1, 0}, 5, 0)
	if err != nil {
		t.Fatalf("VectorSearch failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results from empty index", len(results))
	}
}
