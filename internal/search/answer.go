package search

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mfenderov/journal42/internal/ai"
	"github.com/mfenderov/journal42/internal/storage"
)

// NoRelevantEntries is returned when retrieval finds nothing to ground an
// answer on; the generator is not consulted in that case.
const NoRelevantEntries = "No relevant journal entries found."

// Answerer retrieves journal context for a question and asks the generator
// to answer from it.
type Answerer struct {
	searcher  *Searcher
	generator ai.Generator
}

// NewAnswerer creates an answerer over the given searcher and generator.
func NewAnswerer(searcher *Searcher, generator ai.Generator) *Answerer {
	return &Answerer{searcher: searcher, generator: generator}
}

// Answer holds a generated answer together with the chunks it was based on.
type Answer struct {
	Text    string
	Sources []storage.VectorResult
}

// Ask retrieves context for the question and generates an answer from it.
// An empty retrieval short-circuits to NoRelevantEntries.
func (a *Answerer) Ask(ctx context.Context, question string) (Answer, error) {
	results, err := a.searcher.Retrieve(ctx, question)
	if err != nil {
		return Answer{}, err
	}
	if len(results) == 0 {
		return Answer{Text: NoRelevantEntries}, nil
	}

	prompt := BuildPrompt(question, results)
	text, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return Answer{}, fmt.Errorf("generation failed: %w", err)
	}
	return Answer{Text: text, Sources: results}, nil
}

// BuildPrompt assembles the generation prompt: numbered journal excerpts,
// each labeled with its file, date, and similarity, then the question and
// answering instructions.
func BuildPrompt(question string, results []storage.VectorResult) string {
	var b strings.Builder
	b.WriteString("Here are relevant entries from my personal journal:\n\n")

	for i, r := range results {
		date := r.Chunk.Date
		if date == "" {
			date = "unknown date"
		}
		fmt.Fprintf(&b, "Entry %d (from %s, %s, similarity: %.3f):\n%s\n\n",
			i+1, filepath.Base(r.Chunk.Path), date, r.Score, r.Chunk.Content)
	}

	fmt.Fprintf(&b, "Question: %s\n\n", question)
	b.WriteString("Please answer the question based on the journal entries provided above.\n")
	b.WriteString("Be specific and reference the relevant diary entries when possible.\n")
	b.WriteString("If the diary entries don't contain enough information to answer the question, please say so.\n")
	b.WriteString("Answer:")

	return b.String()
}
