package trend

import (
	"fmt"
	"time"
)

// Report is the combined trend analysis for a year range.
type Report struct {
	YearRange     [2]int                  `json:"year_range"`
	TotalPapers   int                     `json:"total_papers"`
	PapersPerYear map[int]int             `json:"papers_per_year"`
	KeyTopics     []string                `json:"key_topics"`
	TopicTrends   map[string][]TrendPoint `json:"topic_trends"`
	Emerging      *EmergingReport         `json:"emerging_topics"`
	// Relationships covers the final year of the range; nil when
	// that year has no papers.
	Relationships *RelationshipReport `json:"topic_relationships"`
	GeneratedAt   string              `json:"generated_at"`
}

// GenerateReport runs the full analysis over the inclusive year range:
// trend lines for the key topics, emerging topics comparing the last
// two years against the first two, and the co-occurrence network for
// the final year. When keyTopics is empty the top terms of the whole
// range are used.
func (a *Analyzer) GenerateReport(fromYear, toYear int, keyTopics []string) (*Report, error) {
	if fromYear > toYear {
		return nil, fmt.Errorf("invalid year range %d-%d", fromYear, toYear)
	}

	papersPerYear := make(map[int]int)
	var allTexts []string
	total := 0
	for year := fromYear; year <= toYear; year++ {
		papers, err := a.src.ByYear(year, 0)
		if err != nil {
			return nil, err
		}
		papersPerYear[year] = len(papers)
		total += len(papers)
		allTexts = append(allTexts, combinedTexts(papers)...)
	}
	if total == 0 {
		return nil, fmt.Errorf("no papers found for year range %d-%d", fromYear, toYear)
	}

	if len(keyTopics) == 0 {
		keyTopics = a.topicTerms(allTexts, reportKeyTopicCount)
	}

	trends, err := a.TrackTrends(keyTopics, fromYear, toYear)
	if err != nil {
		return nil, err
	}

	emerging, err := a.EmergingTopics(
		[]int{toYear - 1, toYear},
		[]int{fromYear, fromYear + 1},
	)
	if err != nil {
		return nil, err
	}

	// The final year can be empty even when the range is not
	var relationships *RelationshipReport
	if papersPerYear[toYear] > 0 {
		relationships, err = a.Relationships(toYear)
		if err != nil {
			return nil, err
		}
	}

	return &Report{
		YearRange:     [2]int{fromYear, toYear},
		TotalPapers:   total,
		PapersPerYear: papersPerYear,
		KeyTopics:     keyTopics,
		TopicTrends:   trends,
		Emerging:      emerging,
		Relationships: relationships,
		GeneratedAt:   time.Now().Format(time.RFC3339),
	}, nil
}
