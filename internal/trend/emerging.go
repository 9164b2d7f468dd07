package trend

import (
	"sort"
	"strings"
)

// EmergingTopic is a topic whose per-paper mention rate grew between
// the comparison and recent periods.
type EmergingTopic struct {
	Topic string `json:"topic"`
	// RecentFrequency and ComparisonFrequency are mentions per paper
	// in each period.
	RecentFrequency     float64 `json:"recent_frequency"`
	ComparisonFrequency float64 `json:"comparison_frequency"`
	// GrowthRate is relative growth; for topics absent from the
	// comparison period it is the recent rate itself.
	GrowthRate float64 `json:"growth_rate"`
	IsNew      bool    `json:"is_new"`
}

// EmergingReport lists emerging topics sorted by growth rate.
type EmergingReport struct {
	EmergingTopics        []EmergingTopic `json:"emerging_topics"`
	RecentYears           []int           `json:"recent_years"`
	ComparisonYears       []int           `json:"comparison_years"`
	TotalRecentPapers     int             `json:"total_recent_papers"`
	TotalComparisonPapers int             `json:"total_comparison_papers"`
}

// EmergingTopics compares topic mention rates between two sets of
// years. A topic emerges when its growth rate meets the analyzer's
// threshold; topics unseen in the comparison period are flagged new.
func (a *Analyzer) EmergingTopics(recentYears, comparisonYears []int) (*EmergingReport, error) {
	recentPapers, err := a.papersForYears(recentYears)
	if err != nil {
		return nil, err
	}
	comparisonPapers, err := a.papersForYears(comparisonYears)
	if err != nil {
		return nil, err
	}

	recentTexts := combinedTexts(recentPapers)
	comparisonTexts := combinedTexts(comparisonPapers)

	recentTopics := a.topicTerms(recentTexts, periodTopicCount)
	comparisonTopics := a.topicTerms(comparisonTexts, periodTopicCount)

	recentFreq := countMentions(recentTexts, recentTopics)
	comparisonFreq := countMentions(comparisonTexts, comparisonTopics)

	var emerging []EmergingTopic
	for _, topic := range recentTopics {
		recentRate := rate(recentFreq[topic], len(recentPapers))
		comparisonRate := rate(comparisonFreq[topic], len(comparisonPapers))

		var growth float64
		if comparisonRate > 0 {
			growth = (recentRate - comparisonRate) / comparisonRate
		} else {
			growth = recentRate // Topic absent from the comparison period
		}

		if growth >= a.EmergingThreshold {
			emerging = append(emerging, EmergingTopic{
				Topic:               topic,
				RecentFrequency:     recentRate,
				ComparisonFrequency: comparisonRate,
				GrowthRate:          growth,
				IsNew:               comparisonRate == 0,
			})
		}
	}

	sort.Slice(emerging, func(i, j int) bool {
		if emerging[i].GrowthRate != emerging[j].GrowthRate {
			return emerging[i].GrowthRate > emerging[j].GrowthRate
		}
		return emerging[i].Topic < emerging[j].Topic
	})

	return &EmergingReport{
		EmergingTopics:        emerging,
		RecentYears:           recentYears,
		ComparisonYears:       comparisonYears,
		TotalRecentPapers:     len(recentPapers),
		TotalComparisonPapers: len(comparisonPapers),
	}, nil
}

// countMentions sums case-insensitive substring occurrences of each
// topic across the texts.
func countMentions(texts, topicList []string) map[string]int {
	counts := make(map[string]int, len(topicList))
	for _, text := range texts {
		lower := strings.ToLower(text)
		for _, topic := range topicList {
			counts[topic] += strings.Count(lower, strings.ToLower(topic))
		}
	}
	return counts
}

func rate(count, papers int) float64 {
	if papers == 0 {
		return 0
	}
	return float64(count) / float64(papers)
}
