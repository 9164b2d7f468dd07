package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/topiclens/topiclens/internal/storage"
	"github.com/topiclens/topiclens/internal/submission"
	"github.com/topiclens/topiclens/internal/topics"
)

var (
	topicsYear     int
	topicsTop      int
	topicsKeywords bool
)

func init() {
	topicsCmd.Flags().IntVar(&topicsYear, "year", 0, "Restrict to one year (0 = whole corpus)")
	topicsCmd.Flags().IntVar(&topicsTop, "top", 20, "Number of topics to return")
	topicsCmd.Flags().BoolVar(&topicsKeywords, "keywords", false, "Rank author keywords instead of extracting terms")
	rootCmd.AddCommand(topicsCmd)
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Extract top topics from the corpus",
	Long: `Extract the top topic terms from titles, abstracts, and summaries
using TF-IDF over unigrams and bigrams.

With --keywords, author-supplied keywords are ranked by how many
submissions carry them instead.

Examples:
  tl topics --year 2024
  tl topics --top 30
  tl topics --keywords --year 2023`,
	RunE: runTopics,
}

// TopicsResponse is the response for the topics command.
type TopicsResponse struct {
	Year   int           `json:"year,omitempty"`
	Method string        `json:"method"`
	Topics []topics.Term `json:"topics"`
}

func runTopics(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	db := mustOpenDatabase(repoRoot)
	defer db.Close()

	resp := TopicsResponse{Year: topicsYear}

	if topicsKeywords {
		counts, err := db.KeywordCounts(topicsYear)
		if err != nil {
			exitWithError(ExitError, "counting keywords: %v", err)
		}
		resp.Method = "keywords"
		resp.Topics = topics.RankKeywords(counts, topicsTop)
	} else {
		subs, err := corpusSubs(db, topicsYear)
		if err != nil {
			exitWithError(ExitError, "loading submissions: %v", err)
		}
		if len(subs) == 0 {
			exitWithError(ExitDataError, "no submissions found")
		}

		docs := make([]string, len(subs))
		for i, sub := range subs {
			docs[i] = sub.CombinedText()
		}
		resp.Method = "tfidf"
		resp.Topics = topics.Extract(newTokenizer(), docs, topicsTop, topics.Options{})
	}

	printTopics(resp)
	return nil
}

// corpusSubs loads one year or the whole corpus.
func corpusSubs(db *storage.DB, year int) ([]submission.Submission, error) {
	if year > 0 {
		return db.ByYear(year, 0)
	}
	return db.List(storage.ListFilters{}, 0)
}

func printTopics(resp TopicsResponse) {
	if humanOutput {
		if len(resp.Topics) == 0 {
			fmt.Println("No topics found")
			return
		}
		for i, term := range resp.Topics {
			fmt.Printf("%3d. %-40s %8.2f  (%d papers)\n", i+1, term.Term, term.Score, term.DocFreq)
		}
	} else {
		outputJSON(resp)
	}
}
