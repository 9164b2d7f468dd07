package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/topiclens/topiclens/internal/storage"
	"github.com/topiclens/topiclens/internal/submission"
)

var (
	listLimit      int
	listYear       int
	listConference string
	listDecision   string
)

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	listCmd.Flags().IntVar(&listYear, "year", 0, "Filter by publication year")
	listCmd.Flags().StringVar(&listConference, "conference", "", "Filter by conference label")
	listCmd.Flags().StringVar(&listDecision, "decision", "", "Filter by decision bucket (accept, reject, withdrawn)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List submissions",
	Long: `List submissions in the repository.

Examples:
  tl list
  tl list --year 2024 --limit 100
  tl list --conference neurips2023 --decision accept`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	filters := storage.ListFilters{
		Year:       listYear,
		Conference: listConference,
		Decision:   listDecision,
	}
	subs, err := db.List(filters, listLimit)
	if err != nil {
		exitWithError(ExitError, "listing submissions: %v", err)
	}

	total, _ := db.Count()

	if humanOutput {
		if len(subs) == 0 {
			fmt.Println("No submissions match")
		} else {
			if listLimit > 0 && listLimit < total {
				fmt.Printf("%d submissions (showing first %d):\n\n", total, len(subs))
			} else {
				fmt.Printf("%d submissions:\n\n", len(subs))
			}
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
