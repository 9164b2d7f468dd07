// Package trend analyzes how research topics evolve across conference
// years: per-topic trend lines, emerging-topic detection, co-occurrence
// networks, and combined reports.
package trend

import (
	"strings"

	"github.com/topiclens/topiclens/internal/submission"
	"github.com/topiclens/topiclens/internal/topics"
)

// Defaults for the analysis parameters.
const (
	DefaultEmergingThreshold = 0.1
	DefaultMinCooccurrence   = 2

	periodTopicCount       = 20
	relationshipTopicCount = 30
	reportKeyTopicCount    = 15
)

// Source provides submissions by publication year. *storage.DB
// satisfies it.
type Source interface {
	ByYear(year, limit int) ([]submission.Submission, error)
}

// Analyzer runs topic evolution analyses over a submission source.
type Analyzer struct {
	src Source
	tok *topics.Tokenizer

	// EmergingThreshold is the minimum growth rate for a topic to
	// count as emerging.
	EmergingThreshold float64
	// MinCooccurrence is the minimum shared-paper count for a
	// co-occurrence edge.
	MinCooccurrence int
}

// NewAnalyzer builds an analyzer with default thresholds.
func NewAnalyzer(src Source, tok *topics.Tokenizer) *Analyzer {
	return &Analyzer{
		src:               src,
		tok:               tok,
		EmergingThreshold: DefaultEmergingThreshold,
		MinCooccurrence:   DefaultMinCooccurrence,
	}
}

// TrendPoint is one year's mention data for a tracked topic.
type TrendPoint struct {
	Year  int `json:"year"`
	Count int `json:"count"`
	// Percentage is mentions per hundred papers; it can exceed 100
	// when a topic appears several times per paper.
	Percentage float64 `json:"percentage"`
}

// TrackTrends counts mentions of each topic per year across the
// inclusive range. Years with no papers are skipped. Counting is
// case-insensitive substring matching over title, abstract, and
// summary, so multi-word topics are tracked as phrases.
func (a *Analyzer) TrackTrends(topicKeywords []string, fromYear, toYear int) (map[string][]TrendPoint, error) {
	trends := make(map[string][]TrendPoint, len(topicKeywords))
	for _, topic := range topicKeywords {
		trends[topic] = []TrendPoint{}
	}

	for year := fromYear; year <= toYear; year++ {
		papers, err := a.src.ByYear(year, 0)
		if err != nil {
			return nil, err
		}
		if len(papers) == 0 {
			continue
		}

		yearText := strings.ToLower(combinedCorpus(papers))
		for _, topic := range topicKeywords {
			count := strings.Count(yearText, strings.ToLower(topic))
			trends[topic] = append(trends[topic], TrendPoint{
				Year:       year,
				Count:      count,
				Percentage: float64(count) / float64(len(papers)) * 100,
			})
		}
	}

	return trends, nil
}

// papersForYears collects submissions across the given years.
func (a *Analyzer) papersForYears(years []int) ([]submission.Submission, error) {
	var papers []submission.Submission
	for _, year := range years {
		subs, err := a.src.ByYear(year, 0)
		if err != nil {
			return nil, err
		}
		papers = append(papers, subs...)
	}
	return papers, nil
}

func combinedTexts(papers []submission.Submission) []string {
	texts := make([]string, len(papers))
	for i, p := range papers {
		texts[i] = p.CombinedText()
	}
	return texts
}

func combinedCorpus(papers []submission.Submission) string {
	return strings.Join(combinedTexts(papers), " ")
}

// topicTerms extracts the top-n topic term strings for a set of texts.
func (a *Analyzer) topicTerms(texts []string, n int) []string {
	terms := topics.Extract(a.tok, texts, n, topics.Options{})
	names := make([]string, len(terms))
	for i, t := range terms {
		names[i] = t.Term
	}
	return names
}
