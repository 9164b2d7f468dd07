package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var relationshipsYear int

func init() {
	relationshipsCmd.Flags().IntVar(&relationshipsYear, "year", 0, "Year to analyze")
	relationshipsCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(relationshipsCmd)
}

var relationshipsCmd = &cobra.Command{
	Use:   "relationships",
	Short: "Analyze topic co-occurrence for a year",
	Long: `Build the topic co-occurrence network for one year: which topics
appear together in papers, how often, and which topics are the most
connected.

Examples:
  tl relationships --year 2024
  tl relationships --year 2024 --human`,
	RunE: runRelationships,
}

func runRelationships(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	analyzer := newAnalyzer(db, cfg)
	report, err := analyzer.Relationships(relationshipsYear)
	if err != nil {
		exitWithError(ExitDataError, "analyzing relationships: %v", err)
	}

	if humanOutput {
		fmt.Printf("Topic network for %d (%d papers, %d topics):\n\n",
			report.Year, report.TotalPapers, len(report.Topics))

		// Most connected topics first
		topicList := make([]string, len(report.Topics))
		copy(topicList, report.Topics)
		sort.Slice(topicList, func(i, j int) bool {
			if report.Centrality[topicList[i]] != report.Centrality[topicList[j]] {
				return report.Centrality[topicList[i]] > report.Centrality[topicList[j]]
			}
			return topicList[i] < topicList[j]
		})

		for _, topic := range topicList {
			if report.Centrality[topic] == 0 {
				continue
			}
			fmt.Printf("  %-40s %d papers, %d connections\n",
				topic, report.TopicFrequencies[topic], report.Centrality[topic])
		}
	} else {
		outputJSON(report)
	}

	return nil
}
