package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/topiclens/topiclens/internal/submission"
)

var searchLimit int

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over submissions",
	Long: `Full-text search over titles, abstracts, summaries, and keywords.

Examples:
  tl search "sparse attention"
  tl search diffusion --limit 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	query := strings.Join(args, " ")
	subs, err := db.Search(query, searchLimit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	if humanOutput {
		if len(subs) == 0 {
			fmt.Printf("No matches for %q\n", query)
		} else {
			fmt.Printf("%d matches for %q:\n\n", len(subs), query)
			for _, sub := range subs {
				title := truncateString(sub.Title, ListTitleMaxLen)
				fmt.Printf("  %-14s %d  %s\n", sub.ID, sub.Year, title)
			}
		}
	} else {
		if subs == nil {
			subs = []submission.Submission{}
		}
		outputJSON(subs)
	}

	return nil
}
