package search_test

import (
	"context"
	"strings"
	"testing"

	"github.com/mfenderov/journal42/internal/ai/mock"
	"github.com/mfenderov/journal42/internal/search"
	"github.com/mfenderov/journal42/internal/storage"
)

func TestAsk_EmptyIndexSkipsGenerator(t *testing.T) {
	store := newTestStore(t)
	gen := &mock.Generator{Answer: "should never appear"}
	a := search.NewAnswerer(search.NewSearcher(store, mock.NewEmbedder(), 5, 0), gen)

	ans, err := a.Ask(context.Background(), "Did I go outside?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if ans.Text != search.NoRelevantEntries {
		t.Errorf("got %q, want %q", ans.Text, search.NoRelevantEntries)
	}
	if len(ans.Sources) != 0 {
		t.Errorf("empty index produced %d sources", len(ans.Sources))
	}
	if len(gen.Prompts) != 0 {
		t.Error("generator must not be called when retrieval is empty")
	}
}

func TestAsk_GeneratesFromRetrievedContext(t *testing.T) {
	store := newTestStore(t)
	seedChunk(t, store, "/j/2024-06-15.txt", "2024-06-15",
		"Went hiking in the mountains today.", []float32{1, 0, 0})

	embedder := mock.NewEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
	gen := &mock.Generator{Answer: "Yes, you went hiking on June 15."}
	a := search.NewAnswerer(search.NewSearcher(store, embedder, 5, 0), gen)

	ans, err := a.Ask(context.Background(), "Did I go outside?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if ans.Text != gen.Answer {
		t.Errorf("answer = %q, want generator output", ans.Text)
	}
	if len(ans.Sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(ans.Sources))
	}

	if len(gen.Prompts) != 1 {
		t.Fatalf("generator called %d times, want 1", len(gen.Prompts))
	}
	prompt := gen.Prompts[0]
	for _, want := range []string{
		"Entry 1 (from 2024-06-15.txt, 2024-06-15,",
		"Went hiking in the mountains today.",
		"Question: Did I go outside?",
		"Answer:",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestAsk_GeneratorErrorPropagates(t *testing.T) {
	store := newTestStore(t)
	seedChunk(t, store, "/j/a.txt", "", "entry", []float32{1, 0, 0})

	embedder := mock.NewEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
	gen := &mock.Generator{Err: context.DeadlineExceeded}
	a := search.NewAnswerer(search.NewSearcher(store, embedder, 5, 0), gen)

	if _, err := a.Ask(context.Background(), "question"); err == nil {
		t.Error("generator failure should propagate")
	}
}

func TestBuildPrompt_UndatedChunkLabeled(t *testing.T) {
	results := []storage.VectorResult{{
		Chunk: storage.Chunk{Path: "/j/notes.txt", Content: "misc thoughts"},
		Score: 0.42,
	}}
	prompt := search.BuildPrompt("what did I note?", results)
	if !strings.Contains(prompt, "notes.txt, unknown date,") {
		t.Errorf("undated chunk should be labeled, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "similarity: 0.420") {
		t.Errorf("similarity should be formatted to three decimals, got:\n%s", prompt)
	}
}
