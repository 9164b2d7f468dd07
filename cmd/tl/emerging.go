package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	emergingRecent     string
	emergingComparison string
)

func init() {
	emergingCmd.Flags().StringVar(&emergingRecent, "recent", "", "Recent years, comma-separated (e.g. 2023,2024)")
	emergingCmd.Flags().StringVar(&emergingComparison, "comparison", "", "Comparison years, comma-separated (e.g. 2020,2021)")
	emergingCmd.MarkFlagRequired("recent")
	emergingCmd.MarkFlagRequired("comparison")
	rootCmd.AddCommand(emergingCmd)
}

var emergingCmd = &cobra.Command{
	Use:   "emerging",
	Short: "Identify emerging topics",
	Long: `Identify topics whose per-paper mention rate grew between two
periods. Topics absent from the comparison period are flagged as new.

Examples:
  tl emerging --recent 2023,2024 --comparison 2020,2021
  tl emerging --recent 2024 --comparison 2022 --human`,
	RunE: runEmerging,
}

func runEmerging(cmd *cobra.Command, args []string) error {
	recentYears, err := parseYearList(emergingRecent)
	if err != nil {
		exitWithError(ExitError, "invalid --recent: %v", err)
	}
	comparisonYears, err := parseYearList(emergingComparison)
	if err != nil {
		exitWithError(ExitError, "invalid --comparison: %v", err)
	}

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	analyzer := newAnalyzer(db, cfg)
	report, err := analyzer.EmergingTopics(recentYears, comparisonYears)
	if err != nil {
		exitWithError(ExitError, "identifying emerging topics: %v", err)
	}

	if humanOutput {
		fmt.Printf("Comparing %v (%d papers) against %v (%d papers):\n\n",
			report.RecentYears, report.TotalRecentPapers,
			report.ComparisonYears, report.TotalComparisonPapers)
		if len(report.EmergingTopics) == 0 {
			fmt.Println("No emerging topics above threshold")
			return nil
		}
		for i, topic := range report.EmergingTopics {
			marker := ""
			if topic.IsNew {
				marker = "  [new]"
			}
			fmt.Printf("%3d. %-40s growth %+.0f%%%s\n", i+1, topic.Topic, topic.GrowthRate*100, marker)
		}
	} else {
		outputJSON(report)
	}

	return nil
}

// parseYearList parses a comma-separated list of years.
func parseYearList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	years := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		year, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("not a year: %q", part)
		}
		years = append(years, year)
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no years given")
	}
	return years, nil
}
