package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/topiclens/topiclens/internal/trend"
)

var (
	trendsFrom int
	trendsTo   int
)

func init() {
	trendsCmd.Flags().IntVar(&trendsFrom, "from", 0, "First year of the range")
	trendsCmd.Flags().IntVar(&trendsTo, "to", 0, "Last year of the range")
	trendsCmd.MarkFlagRequired("from")
	trendsCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(trendsCmd)
}

var trendsCmd = &cobra.Command{
	Use:   "trends <topic>...",
	Short: "Track topic mentions across years",
	Long: `Track how often each topic is mentioned per year across a range.

Mentions are counted as case-insensitive substring matches over
title, abstract, and summary, so multi-word topics work as phrases.

Examples:
  tl trends "diffusion models" --from 2020 --to 2024
  tl trends attention transformers --from 2019 --to 2023`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTrends,
}

// TrendsResponse is the response for the trends command.
type TrendsResponse struct {
	From   int                           `json:"from"`
	To     int                           `json:"to"`
	Trends map[string][]trend.TrendPoint `json:"trends"`
}

func runTrends(cmd *cobra.Command, args []string) error {
	if trendsFrom > trendsTo {
		exitWithError(ExitError, "invalid year range %d-%d", trendsFrom, trendsTo)
	}

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	analyzer := newAnalyzer(db, cfg)
	trends, err := analyzer.TrackTrends(args, trendsFrom, trendsTo)
	if err != nil {
		exitWithError(ExitError, "tracking trends: %v", err)
	}

	if humanOutput {
		topicList := make([]string, 0, len(trends))
		for topic := range trends {
			topicList = append(topicList, topic)
		}
		sort.Strings(topicList)

		for _, topic := range topicList {
			fmt.Printf("%s:\n", topic)
			points := trends[topic]
			if len(points) == 0 {
				fmt.Println("  no papers in range")
				continue
			}
			for _, p := range points {
				fmt.Printf("  %d  %4d mentions  (%.1f per 100 papers)\n", p.Year, p.Count, p.Percentage)
			}
			fmt.Println()
		}
	} else {
		outputJSON(TrendsResponse{From: trendsFrom, To: trendsTo, Trends: trends})
	}

	return nil
}
