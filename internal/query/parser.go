// Package query parses natural-language questions about the corpus
// into structured year filters and a topic hint.
package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/topiclens/topiclens/internal/topics"
)

var yearRe = regexp.MustCompile(`(?:19|20)\d{2}`)

// YearFilter restricts submissions by year. Exactly one of Exact or
// the From/To pair is set.
type YearFilter struct {
	Exact int `json:"exact,omitempty"`
	From  int `json:"from,omitempty"`
	To    int `json:"to,omitempty"`
}

// Parsed is the structured form of a natural-language query.
type Parsed struct {
	RawQuery   string      `json:"raw_query"`
	YearFilter *YearFilter `json:"year_filter"`
	TopicHint  string      `json:"topic_hint"`
}

// Parser extracts year filters and topic hints from free-text
// queries.
type Parser struct {
	tok *topics.Tokenizer
}

// NewParser builds a parser sharing the topic tokenizer's stopword
// set.
func NewParser(tok *topics.Tokenizer) *Parser {
	return &Parser{tok: tok}
}

// rangeWords mark a query as describing a year span rather than a
// single year.
var (
	spanWords   = map[string]bool{"to": true, "between": true}
	sinceWords  = map[string]bool{"since": true, "after": true, "from": true}
	beforeWords = map[string]bool{"before": true, "until": true}
	fillerWords = map[string]bool{
		"papers": true, "paper": true, "submissions": true, "about": true,
		"on": true, "trends": true, "trend": true, "in": true, "from": true,
		"to": true, "between": true, "since": true, "after": true,
		"before": true, "until": true, "show": true, "find": true,
		"what": true, "how": true,
	}
)

// Parse extracts years and a topic hint from the query. Year spans
// are recognized from span words ("2020 to 2024", "between 2019 and
// 2022") or a hyphenated pair ("2020-2024"); "since"/"after" open a
// range downward, "before"/"until" upward; a lone year filters
// exactly.
func (p *Parser) Parse(query string) Parsed {
	years := extractYears(query)
	words := strings.Fields(strings.ToLower(query))

	parsed := Parsed{
		RawQuery:  query,
		TopicHint: p.topicHint(query),
	}

	switch {
	case len(years) >= 2 && (containsAny(words, spanWords) || hyphenatedYearPair(query)):
		from, to := years[0], years[0]
		for _, y := range years {
			if y < from {
				from = y
			}
			if y > to {
				to = y
			}
		}
		parsed.YearFilter = &YearFilter{From: from, To: to}
	case len(years) > 0 && containsAny(words, sinceWords):
		parsed.YearFilter = &YearFilter{From: years[0]}
	case len(years) > 0 && containsAny(words, beforeWords):
		parsed.YearFilter = &YearFilter{To: years[0]}
	case len(years) > 0:
		parsed.YearFilter = &YearFilter{Exact: years[0]}
	}

	return parsed
}

func extractYears(query string) []int {
	matches := yearRe.FindAllString(query, -1)
	years := make([]int, 0, len(matches))
	for _, m := range matches {
		y, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	return years
}

func containsAny(words []string, set map[string]bool) bool {
	for _, w := range words {
		if set[strings.Trim(w, ".,?!:;")] {
			return true
		}
	}
	return false
}

var yearPairRe = regexp.MustCompile(`(?:19|20)\d{2}\s*-\s*(?:19|20)\d{2}`)

func hyphenatedYearPair(query string) bool {
	return yearPairRe.MatchString(query)
}

// topicHint returns the longest run of consecutive content words in
// the query, with years, filler words, and stopwords removed. Falls
// back to the lowercased query when nothing survives.
func (p *Parser) topicHint(query string) string {
	lower := strings.ToLower(query)
	cleaned := yearRe.ReplaceAllString(lower, " ")

	var best, current []string
	flush := func() {
		if len(current) > len(best) {
			best = current
		}
		current = nil
	}

	for _, word := range strings.Fields(cleaned) {
		word = strings.Trim(word, ".,?!:;\"'()")
		if word == "" || fillerWords[word] || p.tok.IsStopWord(word) {
			flush()
			continue
		}
		current = append(current, word)
	}
	flush()

	if len(best) == 0 {
		return strings.TrimSpace(lower)
	}
	return strings.Join(best, " ")
}
