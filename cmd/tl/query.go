package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/topiclens/topiclens/internal/query"
	"github.com/topiclens/topiclens/internal/submission"
	"github.com/topiclens/topiclens/internal/trend"
)

var queryRun bool

func init() {
	queryCmd.Flags().BoolVar(&queryRun, "run", false, "Run the analysis the query describes instead of only parsing it")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <text>...",
	Short: "Parse a natural-language question about the corpus",
	Long: `Parse a natural-language question into a year filter and topic hint.

With --run, the parsed query is dispatched: a year range runs a trend
line for the topic hint, an exact year runs the co-occurrence analysis
for it, and no year filter runs a full-text search for the hint.

Examples:
  tl query "diffusion model trends from 2020 to 2024"
  tl query --run "papers about sparse attention since 2021"
  tl query --run "topic relationships in 2024"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

// QueryRunResponse is the response for query --run.
type QueryRunResponse struct {
	Parsed        query.Parsed                  `json:"parsed"`
	Trends        map[string][]trend.TrendPoint `json:"trends,omitempty"`
	Relationships *trend.RelationshipReport     `json:"relationships,omitempty"`
	Papers        []submission.Submission       `json:"papers,omitempty"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	parser := query.NewParser(newTokenizer())
	parsed := parser.Parse(text)

	if !queryRun {
		if humanOutput {
			printParsed(parsed)
		} else {
			outputJSON(parsed)
		}
		return nil
	}

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	resp := QueryRunResponse{Parsed: parsed}
	analyzer := newAnalyzer(db, cfg)

	yf := parsed.YearFilter
	switch {
	case yf != nil && yf.From > 0 && yf.To > 0:
		trends, err := analyzer.TrackTrends([]string{parsed.TopicHint}, yf.From, yf.To)
		if err != nil {
			exitWithError(ExitError, "tracking trends: %v", err)
		}
		resp.Trends = trends
	case yf != nil && yf.From > 0:
		// Open-ended range: track up to the newest year in the corpus
		to, err := newestYear(db, yf.From)
		if err != nil {
			exitWithError(ExitError, "listing years: %v", err)
		}
		trends, err := analyzer.TrackTrends([]string{parsed.TopicHint}, yf.From, to)
		if err != nil {
			exitWithError(ExitError, "tracking trends: %v", err)
		}
		resp.Trends = trends
	case yf != nil && yf.Exact > 0:
		report, err := analyzer.Relationships(yf.Exact)
		if err != nil {
			exitWithError(ExitDataError, "analyzing relationships: %v", err)
		}
		resp.Relationships = report
	default:
		papers, err := db.Search(parsed.TopicHint, DefaultSearchLimit)
		if err != nil {
			exitWithError(ExitError, "searching: %v", err)
		}
		if yf != nil && yf.To > 0 {
			papers = filterByMaxYear(papers, yf.To)
		}
		resp.Papers = papers
	}

	if humanOutput {
		printParsed(parsed)
		fmt.Println()
		switch {
		case resp.Trends != nil:
			for _, p := range resp.Trends[parsed.TopicHint] {
				fmt.Printf("  %d  %4d mentions  (%.1f per 100 papers)\n", p.Year, p.Count, p.Percentage)
			}
		case resp.Relationships != nil:
			fmt.Printf("Topic network for %d: %d topics over %d papers\n",
				resp.Relationships.Year, len(resp.Relationships.Topics),
				resp.Relationships.TotalPapers)
		default:
			for _, sub := range resp.Papers {
				fmt.Printf("  %-14s %d  %s\n", sub.ID, sub.Year, truncateString(sub.Title, ListTitleMaxLen))
			}
		}
	} else {
		outputJSON(resp)
	}

	return nil
}

func printParsed(parsed query.Parsed) {
	fmt.Printf("Topic hint: %s\n", parsed.TopicHint)
	switch yf := parsed.YearFilter; {
	case yf == nil:
		fmt.Println("Years:      any")
	case yf.Exact > 0:
		fmt.Printf("Years:      %d\n", yf.Exact)
	case yf.From > 0 && yf.To > 0:
		fmt.Printf("Years:      %d-%d\n", yf.From, yf.To)
	case yf.From > 0:
		fmt.Printf("Years:      since %d\n", yf.From)
	default:
		fmt.Printf("Years:      until %d\n", yf.To)
	}
}

// newestYear returns the latest year in the corpus, at least fallback.
func newestYear(db interface{ YearList() ([]int, error) }, fallback int) (int, error) {
	years, err := db.YearList()
	if err != nil {
		return 0, err
	}
	newest := fallback
	for _, y := range years {
		if y > newest {
			newest = y
		}
	}
	return newest, nil
}

func filterByMaxYear(subs []submission.Submission, maxYear int) []submission.Submission {
	out := subs[:0]
	for _, s := range subs {
		if s.Year <= maxYear {
			out = append(out, s)
		}
	}
	return out
}
