// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/pdiddy/scisearch/pkg/types"
)

// Okapi BM25 parameters, standard values.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// Rerank reorders results by BM25 relevance of each result's document text
// (description, falling back to title) against queryText, then truncates to
// max. The sort is stable: ties keep their pre-rerank relative order. When
// the query shares no vocabulary with any result, every score is zero and
// the original order is preserved. An empty input returns an empty slice.
func Rerank(results []types.SearchResult, queryText string, max int) []types.SearchResult {
	if len(results) == 0 {
		return results
	}

	corpus := make([][]string, len(results))
	for i, r := range results {
		corpus[i] = tokenize(documentText(r))
	}
	scores := bm25Scores(corpus, tokenize(queryText))

	// Sort indices rather than results so the stable sort's tie-break is the
	// original submission order.
	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	ranked := make([]types.SearchResult, len(results))
	for i, j := range order {
		ranked[i] = results[j]
	}
	return Truncate(ranked, max)
}

// documentText returns the text scored for a result: the description when
// present, otherwise the title.
func documentText(r types.SearchResult) string {
	if strings.TrimSpace(r.Description) != "" {
		return r.Description
	}
	return r.Title
}

// bm25Scores computes an Okapi BM25 score for each document against the
// query terms.
func bm25Scores(corpus [][]string, query []string) []float64 {
	n := len(corpus)

	// Document frequency per term and average document length.
	docFreq := make(map[string]int)
	var totalLen int
	termFreqs := make([]map[string]int, n)
	for i, doc := range corpus {
		totalLen += len(doc)
		tf := make(map[string]int, len(doc))
		for _, term := range doc {
			tf[term]++
		}
		termFreqs[i] = tf
		for term := range tf {
			docFreq[term]++
		}
	}
	avgLen := float64(totalLen) / float64(n)
	if avgLen == 0 {
		avgLen = 1
	}

	scores := make([]float64, n)
	for _, term := range query {
		df := docFreq[term]
		if df == 0 {
			continue
		}
		// The +1 inside the log keeps IDF non-negative for very common terms.
		idf := math.Log(1 + (float64(n)-float64(df)+0.5)/(float64(df)+0.5))
		for i := range corpus {
			tf := float64(termFreqs[i][term])
			if tf == 0 {
				continue
			}
			norm := tf * (bm25K1 + 1) / (tf + bm25K1*(1-bm25B+bm25B*float64(len(corpus[i]))/avgLen))
			scores[i] += idf * norm
		}
	}
	return scores
}

// tokenize lowercases s and splits it on every non-alphanumeric rune.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
