// Package index builds the chunk store from the journal directory: scan,
// plan, chunk, embed, upsert. Everything runs sequentially; the slow parts
// are the embedding calls and there is no concurrent-writer scenario to
// design for.
package index

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/mfenderov/journal42/internal/ai"
	"github.com/mfenderov/journal42/internal/config"
	"github.com/mfenderov/journal42/internal/journal"
	"github.com/mfenderov/journal42/internal/storage"
)

// Indexer walks the journal directory and keeps the store in sync with it.
type Indexer struct {
	store    *storage.Store
	embedder ai.Embedder
	cfg      config.Config
	logger   *log.Logger
}

// Result summarizes one build run.
type Result struct {
	FilesIndexed  int
	FilesSkipped  int
	FilesFailed   int
	FilesPruned   int
	ChunksIndexed int
}

// New creates an Indexer. A nil logger discards progress output.
func New(store *storage.Store, embedder ai.Embedder, cfg config.Config, logger *log.Logger) *Indexer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Indexer{store: store, embedder: embedder, cfg: cfg, logger: logger}
}

// Build indexes new and changed journal files and prunes chunks of deleted
// ones. With force=false and no file changes it is a no-op, so re-running is
// idempotent. File read errors are logged and skipped; an embedding failure
// aborts the build.
func (ix *Indexer) Build(ctx context.Context, force bool) (Result, error) {
	var res Result

	files, err := journal.ScanDir(ix.cfg.JournalDir)
	if err != nil {
		return res, fmt.Errorf("scanning %s: %w", ix.cfg.JournalDir, err)
	}

	stored, err := ix.store.FileStates()
	if err != nil {
		return res, fmt.Errorf("reading index state: %w", err)
	}

	plan := BuildPlan(files, stored, force)
	res.FilesSkipped = len(plan.Skip)

	for _, path := range plan.Prune {
		if err := ix.store.DeleteByPath(path); err != nil {
			return res, fmt.Errorf("pruning %s: %w", path, err)
		}
		ix.logger.Info("Pruned deleted file", "path", path)
		res.FilesPruned++
	}

	for _, f := range plan.Index {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		n, err := ix.indexFile(ctx, f)
		if err != nil {
			// Unreadable files don't fail the build, but a dead
			// embedding endpoint does.
			if _, ok := err.(*readError); ok {
				ix.logger.Warn("Skipping unreadable file", "path", f.Path, "err", err)
				res.FilesFailed++
				continue
			}
			return res, err
		}

		ix.logger.Info("Indexed", "path", f.Path, "chunks", n)
		res.FilesIndexed++
		res.ChunksIndexed += n
	}

	return res, nil
}

// readError marks failures reading a single journal file.
type readError struct{ err error }

func (e *readError) Error() string { return e.err.Error() }
func (e *readError) Unwrap() error { return e.err }

// indexFile replaces the stored chunks for one file and returns how many
// chunks were written.
func (ix *Indexer) indexFile(ctx context.Context, f journal.FileInfo) (int, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return 0, &readError{err}
	}

	var date string
	if d, ok := journal.ExtractDate(f.Path); ok {
		date = d.Format(journal.DateLayout)
	}

	texts := journal.ChunkText(string(data), ix.cfg.ChunkSize, ix.cfg.ChunkOverlap)
	if len(texts) == 0 {
		// File emptied since last index: drop its chunks.
		return 0, ix.store.ReplaceFileChunks(f.Path, nil)
	}

	vecs, err := ix.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding %s: %w", f.Path, err)
	}
	if len(vecs) != len(texts) {
		return 0, fmt.Errorf("embedding %s: got %d vectors for %d chunks", f.Path, len(vecs), len(texts))
	}

	chunks := make([]storage.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = storage.Chunk{
			Path:       f.Path,
			Date:       date,
			ChunkIndex: i,
			Content:    text,
			Vector:     vecs[i],
			Model:      ix.cfg.EmbeddingModel,
			FileMTime:  f.MTimeUnix,
		}
	}

	if err := ix.store.ReplaceFileChunks(f.Path, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}
