package storage

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no rows match.
var ErrNotFound = errors.New("not found")

// Chunk is one embedded slice of a journal file. Identity is
// (Path, ChunkIndex); rows for a file are replaced wholesale when the file
// changes.
type Chunk struct {
	ID         int64
	Path       string
	Date       string // YYYY-MM-DD, empty when no date could be extracted
	ChunkIndex int
	Content    string
	Vector     []float32
	Model      string
	FileMTime  int64
	CreatedAt  time.Time
}

// chunkRow is the sqlx scan target; the embedding blob is decoded into
// Chunk.Vector by the callers.
type chunkRow struct {
	ID         int64     `db:"id"`
	Path       string    `db:"path"`
	EntryDate  string    `db:"entry_date"`
	ChunkIndex int       `db:"chunk_index"`
	Content    string    `db:"content"`
	Embedding  []byte    `db:"embedding"`
	Dimensions int       `db:"dimensions"`
	Model      string    `db:"model"`
	FileMTime  int64     `db:"file_mtime"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r chunkRow) toChunk() Chunk {
	return Chunk{
		ID:         r.ID,
		Path:       r.Path,
		Date:       r.EntryDate,
		ChunkIndex: r.ChunkIndex,
		Content:    r.Content,
		Vector:     decodeVector(r.Embedding),
		Model:      r.Model,
		FileMTime:  r.FileMTime,
		CreatedAt:  r.CreatedAt,
	}
}

// ReplaceFileChunks atomically swaps all stored chunks for a path with the
// given set. Every chunk must carry a vector of the same length.
func (s *Store) ReplaceFileChunks(path string, chunks []Chunk) error {
	if len(chunks) > 0 {
		dims := len(chunks[0].Vector)
		for _, c := range chunks {
			if len(c.Vector) != dims {
				return fmt.Errorf("inconsistent vector length for %s: %d vs %d", path, len(c.Vector), dims)
			}
		}
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM chunks WHERE path = ?", path); err != nil {
		return fmt.Errorf("deleting old chunks for %s: %w", path, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO chunks (path, entry_date, chunk_index, content, embedding, dimensions, model, file_mtime)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range chunks {
		blob := encodeVector(c.Vector)
		if _, err := stmt.Exec(path, c.Date, c.ChunkIndex, c.Content, blob, len(c.Vector), c.Model, c.FileMTime); err != nil {
			return fmt.Errorf("storing chunk %d of %s: %w", c.ChunkIndex, path, err)
		}
	}

	return tx.Commit()
}

// DeleteByPath removes all chunks for a source file.
func (s *Store) DeleteByPath(path string) error {
	_, err := s.db.Exec("DELETE FROM chunks WHERE path = ?", path)
	return err
}

// Clear removes every chunk.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM chunks")
	return err
}

// ListAll returns every stored chunk in insertion (rowid) order, vectors
// decoded.
func (s *Store) ListAll() ([]Chunk, error) {
	var rows []chunkRow
	err := s.db.Select(&rows, `
		SELECT id, path, entry_date, chunk_index, content, embedding, dimensions, model, file_mtime, created_at
		FROM chunks
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}

	chunks := make([]Chunk, len(rows))
	for i, r := range rows {
		chunks[i] = r.toChunk()
	}
	return chunks, nil
}

// FileStates returns the stored modification time per indexed path, used to
// decide which files changed since the last build.
func (s *Store) FileStates() (map[string]int64, error) {
	var rows []struct {
		Path      string `db:"path"`
		FileMTime int64  `db:"file_mtime"`
	}
	err := s.db.Select(&rows, `
		SELECT path, MAX(file_mtime) AS file_mtime
		FROM chunks
		GROUP BY path
	`)
	if err != nil {
		return nil, err
	}

	states := make(map[string]int64, len(rows))
	for _, r := range rows {
		states[r.Path] = r.FileMTime
	}
	return states, nil
}

// Entry summarizes one indexed journal file.
type Entry struct {
	Path   string `db:"path"`
	Date   string `db:"entry_date"`
	Chunks int    `db:"chunks"`
}

// ListEntries returns the indexed files, most recent date first. Undated
// entries sort last.
func (s *Store) ListEntries() ([]Entry, error) {
	var entries []Entry
	err := s.db.Select(&entries, `
		SELECT path, entry_date, COUNT(*) AS chunks
		FROM chunks
		GROUP BY path, entry_date
		ORDER BY entry_date = '', entry_date DESC, path
	`)
	return entries, err
}

// Stats describes the index as a whole.
type Stats struct {
	Files      int
	Chunks     int
	Dimensions int
	Models     []string
}

// IndexStats returns counts over the stored chunks.
func (s *Store) IndexStats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(`
		SELECT COUNT(*), COUNT(DISTINCT path), COALESCE(MAX(dimensions), 0)
		FROM chunks
	`).Scan(&st.Chunks, &st.Files, &st.Dimensions)
	if err != nil {
		return st, err
	}
	if err := s.db.Select(&st.Models, "SELECT DISTINCT model FROM chunks ORDER BY model"); err != nil {
		return st, err
	}
	return st, nil
}
