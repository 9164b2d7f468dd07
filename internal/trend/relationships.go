package trend

import (
	"fmt"
	"strings"
)

// RelationshipReport describes the topic co-occurrence network for one
// year. Two topics co-occur when they appear in the same paper; edges
// below the minimum co-occurrence count are dropped.
type RelationshipReport struct {
	Year             int                       `json:"year"`
	Topics           []string                  `json:"topics"`
	TopicFrequencies map[string]int            `json:"topic_frequencies"`
	Cooccurrence     map[string]map[string]int `json:"cooccurrence_matrix"`
	// Centrality is degree centrality: the number of topics each
	// topic shares an edge with.
	Centrality  map[string]int `json:"centrality"`
	TotalPapers int            `json:"total_papers"`
}

// Relationships builds the topic co-occurrence network for a year.
// It returns an error when the year has no papers.
func (a *Analyzer) Relationships(year int) (*RelationshipReport, error) {
	papers, err := a.src.ByYear(year, 0)
	if err != nil {
		return nil, err
	}
	if len(papers) == 0 {
		return nil, fmt.Errorf("no papers found for year %d", year)
	}

	texts := combinedTexts(papers)
	topicList := a.topicTerms(texts, relationshipTopicCount)

	// Topic -> set of paper indices containing it
	topicPapers := make(map[string]map[int]bool, len(topicList))
	for i, text := range texts {
		lower := strings.ToLower(text)
		for _, topic := range topicList {
			if strings.Contains(lower, strings.ToLower(topic)) {
				if topicPapers[topic] == nil {
					topicPapers[topic] = make(map[int]bool)
				}
				topicPapers[topic][i] = true
			}
		}
	}

	frequencies := make(map[string]int, len(topicList))
	cooccurrence := make(map[string]map[string]int, len(topicList))
	for _, t1 := range topicList {
		frequencies[t1] = len(topicPapers[t1])
		cooccurrence[t1] = make(map[string]int)

		for _, t2 := range topicList {
			if t1 == t2 {
				continue
			}
			shared := intersectionSize(topicPapers[t1], topicPapers[t2])
			if shared >= a.MinCooccurrence {
				cooccurrence[t1][t2] = shared
			}
		}
	}

	centrality := make(map[string]int, len(topicList))
	for _, topic := range topicList {
		centrality[topic] = len(cooccurrence[topic])
	}

	return &RelationshipReport{
		Year:             year,
		Topics:           topicList,
		TopicFrequencies: frequencies,
		Cooccurrence:     cooccurrence,
		Centrality:       centrality,
		TotalPapers:      len(papers),
	}, nil
}

func intersectionSize(a, b map[int]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if b[k] {
			n++
		}
	}
	return n
}
