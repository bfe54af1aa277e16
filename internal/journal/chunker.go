package journal

import "strings"

// ChunkText splits text into overlapping windows of chunkSize words. The
// window slides forward by chunkSize-overlap words each step; the step is
// clamped to 1 so a pathological overlap >= chunkSize still terminates.
// Text shorter than one window yields a single chunk, empty text yields none.
func ChunkText(text string, chunkSize, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = 1
	}

	step := chunkSize - overlap
	if step < 1 {
		step = 1
	}

	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))

		if end >= len(words) {
			break
		}
	}
	return chunks
}
