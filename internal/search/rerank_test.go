// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"testing"

	"github.com/pdiddy/scisearch/pkg/types"
)

func TestRerankOrdersByRelevance(t *testing.T) {
	results := []types.SearchResult{
		{Title: "A", Href: "https://a", Description: "rust memory safety"},
		{Title: "B", Href: "https://b", Description: "neural network training on GPU clusters with neural architecture search"},
		{Title: "C", Href: "https://c", Description: "neural network pruning"},
	}

	got := Rerank(results, "neural network", 10)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Title == "A" || got[1].Title == "A" {
		t.Errorf("document with no query overlap ranked above matching ones: %v, %v", got[0].Title, got[1].Title)
	}
	if got[2].Title != "A" {
		t.Errorf("last = %q, want A", got[2].Title)
	}
}

func TestRerankStableOnTies(t *testing.T) {
	// Identical documents score identically; original order must survive.
	results := []types.SearchResult{
		{Title: "first", Href: "https://1", Description: "quantum computing basics"},
		{Title: "second", Href: "https://2", Description: "quantum computing basics"},
		{Title: "third", Href: "https://3", Description: "quantum computing basics"},
	}

	got := Rerank(results, "quantum computing", 10)
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if got[i].Title != w {
			t.Errorf("position %d = %q, want %q", i, got[i].Title, w)
		}
	}
}

func TestRerankNoVocabularyOverlap(t *testing.T) {
	results := []types.SearchResult{
		{Title: "one", Href: "https://1", Description: "alpha beta"},
		{Title: "two", Href: "https://2", Description: "gamma delta"},
	}

	got := Rerank(results, "zzz unmatched terms", 10)
	if got[0].Title != "one" || got[1].Title != "two" {
		t.Errorf("zero-overlap query reordered results: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestRerankEmptyInput(t *testing.T) {
	if got := Rerank(nil, "anything", 5); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestRerankTruncation(t *testing.T) {
	results := []types.SearchResult{
		{Title: "a", Description: "x"},
		{Title: "b", Description: "x"},
		{Title: "c", Description: "x"},
	}
	for _, k := range []int{0, 1, 2, 3, 4} {
		got := Rerank(results, "x", k)
		wantLen := k
		if wantLen > len(results) {
			wantLen = len(results)
		}
		if len(got) != wantLen {
			t.Errorf("Rerank(_, _, %d) len = %d, want %d", k, len(got), wantLen)
		}
	}
}

func TestRerankFallsBackToTitle(t *testing.T) {
	results := []types.SearchResult{
		{Title: "unrelated topic", Href: "https://1"},
		{Title: "protein folding dynamics", Href: "https://2"},
	}

	got := Rerank(results, "protein folding", 10)
	if got[0].Title != "protein folding dynamics" {
		t.Errorf("top = %q, want title-matched result", got[0].Title)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"CRISPR-Cas9 editing!", []string{"crispr", "cas9", "editing"}},
		{"", nil},
		{"  spaced   out  ", []string{"spaced", "out"}},
	}
	for _, tt := range tests {
		got := tokenize(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("tokenize(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
