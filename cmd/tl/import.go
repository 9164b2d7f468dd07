package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/topiclens/topiclens/internal/config"
	"github.com/topiclens/topiclens/internal/importer"
	"github.com/topiclens/topiclens/internal/storage"
	"github.com/topiclens/topiclens/internal/submission"
)

var (
	importFormat     string
	importConference string
	importDryRun     bool
)

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "", "Import format (openreview)")
	importCmd.Flags().StringVar(&importConference, "conference", "", "Conference label, e.g. neurips2024")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	importCmd.MarkFlagRequired("format")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import submissions from an external format",
	Long: `Import submissions from an external format.

Usage:
  tl import --format openreview --conference neurips2024 export.json
  tl import --format openreview --conference neurips2024 export.json --dry-run

Supported formats:
  openreview  - OpenReview notes export (API v1 or v2 shape)

Submissions are deduplicated by note ID: a note whose ID already
exists in the repository updates it in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// ImportResult represents the result of an import operation.
type ImportResult struct {
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// DryRunResult represents the result of a dry-run import.
type DryRunResult struct {
	WouldImport int            `json:"would_import"`
	WouldUpdate int            `json:"would_update"`
	WouldSkip   int            `json:"would_skip"`
	Details     []ImportDetail `json:"details,omitempty"`
}

// ImportDetail describes a single import action.
type ImportDetail struct {
	ID     string `json:"id"`
	Action string `json:"action"` // import, update
	Title  string `json:"title"`
}

func runImport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	if importFormat != "openreview" {
		exitWithError(ExitError, "unknown format: %s", importFormat)
	}

	conference := importConference
	if conference == "" {
		conference = cfg.DefaultConference
	}
	if conference == "" {
		exitWithError(ExitError, "no conference given: pass --conference or set default-conference")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitError, "reading file: %v", err)
	}

	newSubs, parseErrors := importer.ParseOpenReview(data, conference)
	if len(parseErrors) > 0 && len(newSubs) == 0 {
		if humanOutput {
			fmt.Fprintln(os.Stderr, "error: failed to parse any submissions")
			for _, e := range parseErrors {
				fmt.Fprintf(os.Stderr, "  - %s\n", e)
			}
			os.Exit(ExitDataError)
		}
		exitWithError(ExitDataError, "failed to parse any submissions")
	}

	subsPath := config.SubsPath(repoRoot)
	existing, err := storage.ReadAll(subsPath)
	if err != nil {
		exitWithError(ExitDataError, "reading existing submissions: %v", err)
	}

	merged := make([]submission.Submission, len(existing))
	copy(merged, existing)

	var imported, updated int
	var details []ImportDetail
	for _, sub := range newSubs {
		action := "import"
		if idx := storage.FindByID(merged, sub.ID); idx >= 0 {
			merged[idx] = sub
			action = "update"
			updated++
		} else {
			merged = append(merged, sub)
			imported++
		}
		details = append(details, ImportDetail{
			ID:     sub.ID,
			Action: action,
			Title:  truncateString(sub.Title, ImportTitleMaxLen),
		})
	}

	errStrs := make([]string, len(parseErrors))
	for i, e := range parseErrors {
		errStrs[i] = e.Error()
	}
	skipped := len(parseErrors)

	if importDryRun {
		if humanOutput {
			fmt.Println("Dry run - would import from OpenReview export...")
			fmt.Printf("  Would import: %d new submissions\n", imported)
			fmt.Printf("  Would update: %d existing submissions (matched by ID)\n", updated)
			fmt.Printf("  Would skip:   %d (parse errors)\n", skipped)
		} else {
			outputJSON(DryRunResult{
				WouldImport: imported,
				WouldUpdate: updated,
				WouldSkip:   skipped,
				Details:     details,
			})
		}
		return nil
	}

	if err := storage.WriteAll(subsPath, merged); err != nil {
		exitWithError(ExitError, "writing submissions: %v", err)
	}

	if humanOutput {
		fmt.Printf("Imported from OpenReview export (%s)...\n", conference)
		fmt.Printf("  Imported: %d new submissions\n", imported)
		fmt.Printf("  Updated:  %d existing submissions (matched by ID)\n", updated)
		fmt.Printf("  Skipped:  %d (parse errors)\n", skipped)
		if len(errStrs) > 0 {
			fmt.Println("\nErrors:")
			for _, e := range errStrs {
				fmt.Printf("  - %s\n", e)
			}
		}
		fmt.Println("\nRun 'tl rebuild' to refresh the query database.")
	} else {
		outputJSON(ImportResult{
			Imported: imported,
			Updated:  updated,
			Skipped:  skipped,
			Errors:   errStrs,
		})
	}

	return nil
}
