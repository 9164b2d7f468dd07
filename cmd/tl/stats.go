package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/topiclens/topiclens/internal/submission"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Long: `Show corpus statistics: totals, per-year and per-conference
histograms, decision outcomes, and abstract/summary coverage.`,
	RunE: runStats,
}

// StatsResponse is the response for the stats command.
type StatsResponse struct {
	Total         int            `json:"total"`
	Years         map[int]int    `json:"years"`
	Conferences   map[string]int `json:"conferences"`
	Decisions     map[string]int `json:"decisions"`
	WithAbstract  int            `json:"with_abstract"`
	WithSummary   int            `json:"with_summary"`
	AbstractRatio float64        `json:"abstract_ratio"`
	SummaryRatio  float64        `json:"summary_ratio"`
}

func runStats(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	total, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "counting submissions: %v", err)
	}

	years, err := db.Years()
	if err != nil {
		exitWithError(ExitError, "computing year histogram: %v", err)
	}
	conferences, err := db.Conferences()
	if err != nil {
		exitWithError(ExitError, "computing conference histogram: %v", err)
	}
	decisionBuckets, err := db.DecisionCounts()
	if err != nil {
		exitWithError(ExitError, "computing decision counts: %v", err)
	}
	withAbstract, err := db.CountWithAbstract()
	if err != nil {
		exitWithError(ExitError, "computing abstract coverage: %v", err)
	}
	withSummary, err := db.CountWithSummary()
	if err != nil {
		exitWithError(ExitError, "computing summary coverage: %v", err)
	}

	decisions := make(map[string]int, len(decisionBuckets))
	for bucket, n := range decisionBuckets {
		decisions[string(bucket)] = n
	}

	resp := StatsResponse{
		Total:        total,
		Years:        years,
		Conferences:  conferences,
		Decisions:    decisions,
		WithAbstract: withAbstract,
		WithSummary:  withSummary,
	}
	if total > 0 {
		resp.AbstractRatio = float64(withAbstract) / float64(total)
		resp.SummaryRatio = float64(withSummary) / float64(total)
	}

	if humanOutput {
		fmt.Printf("%d submissions\n\n", total)

		fmt.Println("By year:")
		yearKeys := make([]int, 0, len(years))
		for y := range years {
			yearKeys = append(yearKeys, y)
		}
		sort.Ints(yearKeys)
		for _, y := range yearKeys {
			fmt.Printf("  %d  %d\n", y, years[y])
		}

		fmt.Println("\nBy conference:")
		confKeys := make([]string, 0, len(conferences))
		for c := range conferences {
			confKeys = append(confKeys, c)
		}
		sort.Strings(confKeys)
		for _, c := range confKeys {
			fmt.Printf("  %-20s %d\n", c, conferences[c])
		}

		fmt.Println("\nDecisions:")
		for _, bucket := range []submission.DecisionBucket{
			submission.DecisionAccept, submission.DecisionReject,
			submission.DecisionWithdrawn, submission.DecisionUnknown,
		} {
			if n := decisionBuckets[bucket]; n > 0 {
				fmt.Printf("  %-10s %d\n", bucket, n)
			}
		}

		fmt.Printf("\nCoverage: %d/%d abstracts, %d/%d summaries\n",
			withAbstract, total, withSummary, total)
	} else {
		outputJSON(resp)
	}

	return nil
}
