package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mfenderov/journal42/internal/ai"
	"github.com/mfenderov/journal42/internal/config"
	"github.com/mfenderov/journal42/internal/index"
	"github.com/mfenderov/journal42/internal/orgconv"
	"github.com/mfenderov/journal42/internal/search"
	"github.com/mfenderov/journal42/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg     config.Config
	Version = "dev"
	logger  = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	dateStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("219"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "Ask questions about your personal journal",
	Long: titleStyle.Render("journal") + " - A local RAG system for personal diaries\n\n" +
		"Index plain-text and org-mode journal files into a local SQLite\n" +
		"database and query them with a locally running language model.\n" +
		"Nothing ever leaves your machine.",
}

func init() {
	godotenv.Load()
	cfg = config.FromEnv()

	rootCmd.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to database file")
	rootCmd.PersistentFlags().StringVar(&cfg.JournalDir, "dir", cfg.JournalDir, "journal directory")
	rootCmd.PersistentFlags().StringVar(&cfg.OllamaURL, "ollama-url", cfg.OllamaURL, "Ollama server URL")
	rootCmd.PersistentFlags().StringVar(&cfg.EmbeddingModel, "embedding-model", cfg.EmbeddingModel, "embedding model name")
	rootCmd.PersistentFlags().StringVar(&cfg.GenerationModel, "model", cfg.GenerationModel, "generation model name")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

func getStore() (*storage.Store, error) {
	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return storage.NewStore(cfg.DBPath)
}

func getEmbedder() (ai.Embedder, error) {
	return ai.NewOpenAIEmbedder(cfg.EmbeddingEndpoint(), cfg.EmbeddingModel)
}

// --- Init command ---

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore()
		if err != nil {
			return err
		}
		defer store.Close()

		logger.Info("Database initialized", "path", dimStyle.Render(cfg.DBPath))
		return nil
	},
}

// --- Index command ---

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index journal files into the database",
	Long: "Scan the journal directory for .txt, .org and .md files, chunk them,\n" +
		"embed each chunk via Ollama and store the vectors. Unchanged files are\n" +
		"skipped; chunks of deleted files are pruned.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore()
		if err != nil {
			return err
		}
		defer store.Close()

		embedder, err := getEmbedder()
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")

		indexer := index.New(store, embedder, cfg, logger)
		res, err := indexer.Build(cmd.Context(), force)
		if err != nil {
			return err
		}

		println(titleStyle.Render("Indexing Complete"))
		println()
		println("  " + dimStyle.Render("Indexed:") + " " + successStyle.Render(itoa(res.FilesIndexed)) + " files, " +
			successStyle.Render(itoa(res.ChunksIndexed)) + " chunks")
		println("  " + dimStyle.Render("Skipped:") + " " + itoa(res.FilesSkipped) + " unchanged")
		if res.FilesPruned > 0 {
			println("  " + dimStyle.Render("Pruned:") + "  " + itoa(res.FilesPruned) + " deleted files")
		}
		if res.FilesFailed > 0 {
			println("  " + dimStyle.Render("Failed:") + "  " + itoa(res.FilesFailed) + " unreadable files")
		}
		return nil
	},
}

func init() {
	indexCmd.Flags().Bool("force", false, "re-embed every file, changed or not")
	indexCmd.Flags().IntVar(&cfg.ChunkSize, "chunk-size", cfg.ChunkSize, "words per chunk")
	indexCmd.Flags().IntVar(&cfg.ChunkOverlap, "overlap", cfg.ChunkOverlap, "words shared between consecutive chunks")
}

// --- Query command ---

var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Ask a question, answered from your journal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore()
		if err != nil {
			return err
		}
		defer store.Close()

		embedder, err := getEmbedder()
		if err != nil {
			return err
		}
		generator, err := ai.NewOllamaGenerator(cfg.OllamaURL, cfg.GenerationModel)
		if err != nil {
			return err
		}

		question := strings.Join(args, " ")
		answerer := search.NewAnswerer(
			search.NewSearcher(store, embedder, cfg.TopK, cfg.MinScore),
			generator,
		)

		ans, err := answerer.Ask(cmd.Context(), question)
		if err != nil {
			return err
		}

		println(answerStyle.Render(ans.Text))

		showSources, _ := cmd.Flags().GetBool("show-sources")
		if showSources && len(ans.Sources) > 0 {
			println()
			println(titleStyle.Render("Sources"))
			for _, r := range ans.Sources {
				printResult(r)
			}
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().IntVar(&cfg.TopK, "top-k", cfg.TopK, "number of journal chunks to retrieve")
	queryCmd.Flags().Float64Var(&cfg.MinScore, "min-score", cfg.MinScore, "minimum similarity score")
	queryCmd.Flags().Bool("show-sources", false, "print the retrieved journal chunks")
}

// --- Search command ---

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Retrieve matching journal chunks without generating an answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore()
		if err != nil {
			return err
		}
		defer store.Close()

		embedder, err := getEmbedder()
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		format, _ := cmd.Flags().GetString("format")
		vectorOnly, _ := cmd.Flags().GetBool("vector")

		query := strings.Join(args, " ")
		searcher := search.NewSearcher(store, embedder, limit, cfg.MinScore)

		if !vectorOnly {
			results, err := searcher.Hybrid(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				logger.Info("No results found", "query", query)
				return nil
			}
			if format == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			for _, r := range results {
				date := r.Date
				if date == "" {
					date = "undated"
				}
				println(dateStyle.Render(date) + " " +
					pathStyle.Render(filepath.Base(r.Path)) + " " +
					scoreStyle.Render(fmt.Sprintf("rrf %.4f", r.FusionScore)))
				println("  " + answerStyle.Render(snippet(r.Content)))
			}
			return nil
		}

		results, err := searcher.Retrieve(cmd.Context(), query)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			logger.Info("No results found", "query", query)
			return nil
		}
		if format == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		for _, r := range results {
			printResult(r)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", config.DefaultTopK, "maximum number of results")
	searchCmd.Flags().String("format", "default", "output format: default, json")
	searchCmd.Flags().Bool("vector", false, "semantic search only, skip keyword matching")
	searchCmd.Flags().Float64Var(&cfg.MinScore, "min-score", cfg.MinScore, "minimum similarity score")
}

// --- List command ---

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed journal entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.ListEntries()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			logger.Info("No entries indexed", "hint", "run 'journal index' first")
			return nil
		}

		for _, e := range entries {
			date := e.Date
			if date == "" {
				date = "undated"
			}
			println(dateStyle.Render(date) + " " +
				pathStyle.Render(e.Path) + " " +
				dimStyle.Render("("+itoa(e.Chunks)+" chunks)"))
		}
		return nil
	},
}

// --- Chat command ---

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive question loop over your journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore()
		if err != nil {
			return err
		}
		defer store.Close()

		embedder, err := getEmbedder()
		if err != nil {
			return err
		}
		generator, err := ai.NewOllamaGenerator(cfg.OllamaURL, cfg.GenerationModel)
		if err != nil {
			return err
		}

		answerer := search.NewAnswerer(
			search.NewSearcher(store, embedder, cfg.TopK, cfg.MinScore),
			generator,
		)

		println(titleStyle.Render("journal chat") + " " + dimStyle.Render("(quit, exit or q to leave)"))
		scanner := bufio.NewScanner(os.Stdin)
		for {
			print(dateStyle.Render("> "))
			if !scanner.Scan() {
				break
			}
			question := strings.TrimSpace(scanner.Text())
			switch question {
			case "":
				continue
			case "quit", "exit", "q":
				return nil
			}

			ans, err := answerer.Ask(cmd.Context(), question)
			if err != nil {
				logger.Error("Query failed", "error", err)
				continue
			}
			println(answerStyle.Render(ans.Text))
			println()
		}
		return scanner.Err()
	},
}

func init() {
	chatCmd.Flags().IntVar(&cfg.TopK, "top-k", cfg.TopK, "number of journal chunks to retrieve")
	chatCmd.Flags().Float64Var(&cfg.MinScore, "min-score", cfg.MinScore, "minimum similarity score")
}

// --- Convert command ---

var convertCmd = &cobra.Command{
	Use:   "convert <journal-dir> <roam-dir>",
	Short: "Convert org-journal files to org-roam-dailies format",
	Long: "Convert org-journal daily files (named YYYYMMDD) into org-roam-dailies\n" +
		"notes: YYYY-MM-DD.org with an ID property drawer, time entries promoted\n" +
		"to top-level headings.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		listOnly, _ := cmd.Flags().GetBool("list")
		file, _ := cmd.Flags().GetString("file")

		conv := orgconv.New(args[0], args[1], overwrite, logger)

		if listOnly {
			mappings, err := conv.ListConvertible()
			if err != nil {
				return err
			}
			if len(mappings) == 0 {
				logger.Info("No convertible journal files found")
				return nil
			}
			for _, m := range mappings {
				println("  " + m)
			}
			return nil
		}

		if file != "" {
			_, err := conv.ConvertFile(file, dryRun)
			return err
		}

		stats, err := conv.ConvertAll(dryRun)
		if err != nil {
			return err
		}

		println(titleStyle.Render("Conversion Complete"))
		println()
		println("  " + dimStyle.Render("Total:") + "      " + itoa(stats.Total))
		println("  " + dimStyle.Render("Successful:") + " " + successStyle.Render(itoa(stats.Successful)))
		println("  " + dimStyle.Render("Skipped:") + "    " + itoa(stats.Skipped))
		println("  " + dimStyle.Render("Failed:") + "     " + itoa(stats.Failed))
		return nil
	},
}

func init() {
	convertCmd.Flags().Bool("dry-run", false, "show what would be converted without writing")
	convertCmd.Flags().Bool("overwrite", false, "overwrite existing target files")
	convertCmd.Flags().Bool("list", false, "list convertible files and exit")
	convertCmd.Flags().String("file", "", "convert a single file only")
}

// --- Stats command ---

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore()
		if err != nil {
			return err
		}
		defer store.Close()

		st, err := store.IndexStats()
		if err != nil {
			return err
		}

		println(titleStyle.Render("Index Statistics"))
		println()
		println("  " + dimStyle.Render("Database:") + "   " + cfg.DBPath)
		println("  " + dimStyle.Render("Files:") + "      " + successStyle.Render(itoa(st.Files)))
		println("  " + dimStyle.Render("Chunks:") + "     " + successStyle.Render(itoa(st.Chunks)))
		println("  " + dimStyle.Render("Dimensions:") + " " + successStyle.Render(itoa(st.Dimensions)))
		println("  " + dimStyle.Render("Models:") + "     " + strings.Join(st.Models, ", "))
		return nil
	},
}

// --- Version command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		println(titleStyle.Render("journal") + " " + dimStyle.Render(Version))
	},
}

// --- Helpers ---

func printResult(r storage.VectorResult) {
	date := r.Chunk.Date
	if date == "" {
		date = "undated"
	}
	println(dateStyle.Render(date) + " " +
		pathStyle.Render(filepath.Base(r.Chunk.Path)) + " " +
		scoreStyle.Render(fmt.Sprintf("%.3f", r.Score)))
	println("  " + answerStyle.Render(snippet(r.Chunk.Content)))
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > 200 {
		return string(r[:200]) + "…"
	}
	return s
}

func itoa(i int) string {
	return fmt.Sprintf("%d", i)
}
