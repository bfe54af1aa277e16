// Package config holds the explicit configuration object shared by the
// indexing and query pipelines. All tunables live here rather than in
// package-level state so components can be constructed with exactly the
// settings a caller (or a test) wants.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Defaults mirror the models and window sizes the tool ships with.
const (
	DefaultOllamaURL       = "http://localhost:11434"
	DefaultEmbeddingModel  = "nomic-embed-text"
	DefaultGenerationModel = "llama3.2"
	DefaultChunkSize       = 500
	DefaultChunkOverlap    = 50
	DefaultTopK            = 5
)

// Config carries every setting the pipeline needs.
type Config struct {
	JournalDir string // directory walked for journal files
	DBPath     string // SQLite database file

	OllamaURL       string // base URL of the local Ollama server
	EmbeddingModel  string
	GenerationModel string

	ChunkSize    int     // words per chunk
	ChunkOverlap int     // words shared between consecutive chunks
	TopK         int     // results returned per query
	MinScore     float64 // similarity floor; 0 keeps everything non-negative-filtered
}

// Default returns a Config populated with defaults. The database lives next
// to the user's home journal by convention.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		JournalDir:      ".",
		DBPath:          filepath.Join(home, ".journal42", "journal.db"),
		OllamaURL:       DefaultOllamaURL,
		EmbeddingModel:  DefaultEmbeddingModel,
		GenerationModel: DefaultGenerationModel,
		ChunkSize:       DefaultChunkSize,
		ChunkOverlap:    DefaultChunkOverlap,
		TopK:            DefaultTopK,
	}
}

// FromEnv layers environment overrides on top of Default. Flags are applied
// after this by the CLI, so precedence is flags > env > defaults.
func FromEnv() Config {
	cfg := Default()

	setString(&cfg.JournalDir, "JOURNAL_DIR")
	setString(&cfg.DBPath, "JOURNAL_DB")
	setString(&cfg.OllamaURL, "OLLAMA_URL")
	setString(&cfg.EmbeddingModel, "EMBEDDING_MODEL")
	setString(&cfg.GenerationModel, "GENERATION_MODEL")
	setInt(&cfg.ChunkSize, "CHUNK_SIZE")
	setInt(&cfg.ChunkOverlap, "CHUNK_OVERLAP")
	setInt(&cfg.TopK, "TOP_K")
	setFloat(&cfg.MinScore, "MIN_SCORE")

	return cfg
}

// EmbeddingEndpoint returns the OpenAI-compatible API root exposed by Ollama.
func (c Config) EmbeddingEndpoint() string {
	return c.OllamaURL + "/v1"
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
