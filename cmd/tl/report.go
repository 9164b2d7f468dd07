package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var (
	reportStartYear int
	reportEndYear   int
	reportTopics    []string
	reportOutput    string
)

func init() {
	reportCmd.Flags().IntVar(&reportStartYear, "start-year", 0, "First year of the range")
	reportCmd.Flags().IntVar(&reportEndYear, "end-year", 0, "Last year of the range")
	reportCmd.Flags().StringSliceVar(&reportTopics, "topics", nil, "Topics to track (default: extracted from corpus)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Write the JSON report to a file")
	reportCmd.MarkFlagRequired("start-year")
	reportCmd.MarkFlagRequired("end-year")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a full trend report",
	Long: `Generate a comprehensive trend report for a year range: per-year
paper counts, key topic trend lines, emerging topics (last two years
against the first two), and the co-occurrence network for the final
year.

Examples:
  tl report --start-year 2020 --end-year 2024
  tl report --start-year 2020 --end-year 2024 --topics "diffusion,graph learning"
  tl report --start-year 2020 --end-year 2024 -o report.json`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	analyzer := newAnalyzer(db, cfg)
	report, err := analyzer.GenerateReport(reportStartYear, reportEndYear, reportTopics)
	if err != nil {
		exitWithError(ExitDataError, "generating report: %v", err)
	}

	if reportOutput != "" {
		f, err := os.Create(reportOutput)
		if err != nil {
			exitWithError(ExitError, "creating report file: %v", err)
		}
		defer f.Close()

		if err := writeJSON(f, report); err != nil {
			exitWithError(ExitError, "writing report: %v", err)
		}

		if humanOutput {
			fmt.Printf("Report saved to %s\n", reportOutput)
		} else {
			outputJSON(StatusResponse{Status: "saved", Path: reportOutput})
		}
		return nil
	}

	if humanOutput {
		fmt.Printf("Topic evolution report %d-%d\n", report.YearRange[0], report.YearRange[1])
		fmt.Printf("Total papers: %d\n\n", report.TotalPapers)

		fmt.Println("Papers per year:")
		yearKeys := make([]int, 0, len(report.PapersPerYear))
		for y := range report.PapersPerYear {
			yearKeys = append(yearKeys, y)
		}
		sort.Ints(yearKeys)
		for _, y := range yearKeys {
			fmt.Printf("  %d  %d\n", y, report.PapersPerYear[y])
		}

		fmt.Printf("\nKey topics: %s\n", strings.Join(report.KeyTopics, ", "))

		if report.Emerging != nil && len(report.Emerging.EmergingTopics) > 0 {
			fmt.Println("\nTop emerging topics:")
			for i, topic := range report.Emerging.EmergingTopics {
				if i >= 5 {
					break
				}
				fmt.Printf("  %d. %s (growth %+.0f%%)\n", i+1, topic.Topic, topic.GrowthRate*100)
			}
		}

		if report.Relationships != nil {
			fmt.Printf("\nTopic network for %d: %d topics over %d papers\n",
				report.Relationships.Year, len(report.Relationships.Topics),
				report.Relationships.TotalPapers)
		}
	} else {
		outputJSON(report)
	}

	return nil
}
