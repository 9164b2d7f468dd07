// Package topics extracts topic terms from submission text using
// TF-IDF over unigrams and bigrams, plus author-keyword rankings.
package topics

import (
	"bufio"
	"bytes"
	"embed"
	"regexp"
	"strings"
)

//go:embed stopwords.txt
var stopWordsFS embed.FS

var nonWordRe = regexp.MustCompile(`[^a-z0-9\s-]`)

// Tokenizer splits text into lowercase terms, dropping stopwords and
// single-character tokens. Hyphenated words split into their parts.
type Tokenizer struct {
	stopWords map[string]bool
}

// NewTokenizer builds a tokenizer with the embedded English stopword
// list plus any extra stopwords (e.g. venue boilerplate from config).
func NewTokenizer(extra ...string) *Tokenizer {
	stop := loadStopWords()
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			stop[w] = true
		}
	}
	return &Tokenizer{stopWords: stop}
}

func loadStopWords() map[string]bool {
	stop := make(map[string]bool)

	data, err := stopWordsFS.ReadFile("stopwords.txt")
	if err != nil {
		return stop // Embedded at build time; missing only in broken builds
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" && !strings.HasPrefix(word, "#") {
			stop[word] = true
		}
	}
	return stop
}

// Tokenize returns the filtered terms of text in document order.
func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.ToLower(text)
	text = nonWordRe.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "-", " ")

	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) > 1 && !t.stopWords[word] {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

// TokenizeWithCount returns term frequencies for text.
func (t *Tokenizer) TokenizeWithCount(text string) map[string]int {
	counts := make(map[string]int)
	for _, token := range t.Tokenize(text) {
		counts[token]++
	}
	return counts
}

// IsStopWord reports whether the word is in the stopword set.
func (t *Tokenizer) IsStopWord(word string) bool {
	return t.stopWords[strings.ToLower(word)]
}
