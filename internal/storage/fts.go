package storage

import "strings"

// ftsSearch performs FTS5 keyword search over chunk content and returns
// RankedItems, best match first.
func (s *Store) ftsSearch(query string, limit int) ([]RankedItem, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := s.db.Query(`
		SELECT c.path, c.entry_date, c.chunk_index, c.content, bm25(chunks_fts) AS score
		FROM chunks_fts
		JOIN chunks c ON c.id = chunks_fts.rowid
		WHERE chunks_fts MATCH ?
		ORDER BY score
		LIMIT ?
	`, ftsQuery, limit)
	if err != nil {
		// Invalid FTS syntax yields no results, not a failure.
		if strings.Contains(err.Error(), "fts5") {
			return []RankedItem{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	var results []RankedItem
	for rows.Next() {
		var r RankedItem
		if err := rows.Scan(&r.Path, &r.Date, &r.ChunkIndex, &r.Content, &r.Score); err != nil {
			return nil, err
		}
		// BM25 scores are negative (lower is better), convert to positive
		r.Score = -r.Score
		r.Source = "fts"
		results = append(results, r)
	}
	return results, rows.Err()
}

// prepareFTSQuery escapes user input for FTS5 by quoting each term, so
// punctuation and FTS operators are treated literally.
func prepareFTSQuery(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ReplaceAll(t, `"`, `""`)
		quoted = append(quoted, `"`+t+`"`)
	}
	return strings.Join(quoted, " ")
}
