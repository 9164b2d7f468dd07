// Package main provides the tl CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/topiclens/topiclens/internal/config"
	"github.com/topiclens/topiclens/internal/storage"
	"github.com/topiclens/topiclens/internal/topics"
	"github.com/topiclens/topiclens/internal/trend"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tl",
	Short: "Topic evolution analysis for conference submissions",
	Long: `tl analyzes how research topics evolve across conference years.

It stores OpenReview submission exports in git-versionable JSONL with an
ephemeral SQLite database for queries, and computes topic trends,
emerging topics, and co-occurrence networks from titles, abstracts, and
summaries. All commands output JSON by default for easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Local .env can carry PDF_ROOT-style overrides for scripts
	godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory to start searching for a
// repository. Checks TL_ROOT, then the global config corpus_path, then
// the current working directory.
func getStartingDirectory() (string, int) {
	if root := os.Getenv("TL_ROOT"); root != "" {
		return root, 0
	}
	if root := config.GetCorpusPath(); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindRepository finds and validates the repository, exits on error.
// Returns the repository root path.
func mustFindRepository() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return repoRoot
}

// mustOpenDatabase opens the SQLite database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(repoRoot string) *storage.DB {
	dbPath := config.DBPath(repoRoot)
	db, err := storage.OpenDB(dbPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// mustLoadConfig loads repository configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// newTokenizer builds the topic tokenizer with any corpus-specific
// stop words from the global config.
func newTokenizer() *topics.Tokenizer {
	return topics.NewTokenizer(config.GetExtraStopWords()...)
}

// newAnalyzer builds a trend analyzer over the database, applying
// threshold overrides from the repository and global configs.
func newAnalyzer(db *storage.DB, cfg *config.Config) *trend.Analyzer {
	a := trend.NewAnalyzer(db, newTokenizer())

	global, _ := config.LoadGlobalConfig()
	if global.EmergingThreshold > 0 {
		a.EmergingThreshold = global.EmergingThreshold
	}
	if global.MinCooccurrence > 0 {
		a.MinCooccurrence = global.MinCooccurrence
	}
	// Repository config wins over global
	if cfg.EmergingThreshold > 0 {
		a.EmergingThreshold = cfg.EmergingThreshold
	}
	if cfg.MinCooccurrence > 0 {
		a.MinCooccurrence = cfg.MinCooccurrence
	}
	return a
}
