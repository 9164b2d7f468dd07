package topics

import (
	"math"
	"sort"
)

// Default extraction parameters.
const (
	DefaultMinDocFreq  = 2
	DefaultMaxFeatures = 1000
)

// Term is a scored topic term.
type Term struct {
	Term    string  `json:"term"`
	Score   float64 `json:"score"`
	DocFreq int     `json:"doc_freq"`
}

// Options controls TF-IDF extraction. Zero values take the defaults.
type Options struct {
	// MinDocFreq drops terms appearing in fewer documents.
	MinDocFreq int
	// MaxFeatures caps the vocabulary, keeping the most frequent terms.
	MaxFeatures int
	// UnigramsOnly disables bigram candidates.
	UnigramsOnly bool
}

func (o Options) minDocFreq() int {
	if o.MinDocFreq > 0 {
		return o.MinDocFreq
	}
	return DefaultMinDocFreq
}

func (o Options) maxFeatures() int {
	if o.MaxFeatures > 0 {
		return o.MaxFeatures
	}
	return DefaultMaxFeatures
}

// Extract scores unigram and bigram terms across docs by corpus TF-IDF
// and returns the topN highest-scoring terms. A term's score is the sum
// over documents of (1 + ln tf) * ln(N/df). Ties break lexicographically
// so results are stable across runs.
func Extract(tok *Tokenizer, docs []string, topN int, opts Options) []Term {
	if len(docs) == 0 || topN == 0 {
		return nil
	}

	// Per-document term frequencies over unigrams and bigrams
	docCounts := make([]map[string]int, 0, len(docs))
	corpusFreq := make(map[string]int)
	for _, doc := range docs {
		tokens := tok.Tokenize(doc)
		counts := make(map[string]int, len(tokens))
		for i, token := range tokens {
			counts[token]++
			if !opts.UnigramsOnly && i+1 < len(tokens) {
				counts[tokens[i]+" "+tokens[i+1]]++
			}
		}
		docCounts = append(docCounts, counts)
		for term, tf := range counts {
			corpusFreq[term] += tf
		}
	}

	docFreq := make(map[string]int, len(corpusFreq))
	for _, counts := range docCounts {
		for term := range counts {
			docFreq[term]++
		}
	}

	// Vocabulary: min document frequency, then cap at max features by
	// corpus frequency
	vocab := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df >= opts.minDocFreq() {
			vocab = append(vocab, term)
		}
	}
	sort.Slice(vocab, func(i, j int) bool {
		if corpusFreq[vocab[i]] != corpusFreq[vocab[j]] {
			return corpusFreq[vocab[i]] > corpusFreq[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if len(vocab) > opts.maxFeatures() {
		vocab = vocab[:opts.maxFeatures()]
	}

	keep := make(map[string]bool, len(vocab))
	for _, term := range vocab {
		keep[term] = true
	}

	totalDocs := float64(len(docs))
	scores := make(map[string]float64, len(vocab))
	for _, counts := range docCounts {
		for term, tf := range counts {
			if !keep[term] {
				continue
			}
			idf := math.Log(totalDocs / float64(docFreq[term]))
			scores[term] += (1 + math.Log(float64(tf))) * idf
		}
	}

	terms := make([]Term, 0, len(scores))
	for term, score := range scores {
		terms = append(terms, Term{Term: term, Score: score, DocFreq: docFreq[term]})
	}
	sortTerms(terms)

	if topN > 0 && len(terms) > topN {
		terms = terms[:topN]
	}
	return terms
}

// RankKeywords orders author keywords by how many submissions carry
// them and returns the topN. Counts double as scores so keyword and
// TF-IDF results share a shape.
func RankKeywords(counts map[string]int, topN int) []Term {
	terms := make([]Term, 0, len(counts))
	for kw, n := range counts {
		terms = append(terms, Term{Term: kw, Score: float64(n), DocFreq: n})
	}
	sortTerms(terms)

	if topN > 0 && len(terms) > topN {
		terms = terms[:topN]
	}
	return terms
}

func sortTerms(terms []Term) {
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Score != terms[j].Score {
			return terms[i].Score > terms[j].Score
		}
		return terms[i].Term < terms[j].Term
	})
}
