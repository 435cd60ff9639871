// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"testing"
)

func TestMarkdownNumbered(t *testing.T) {
	r := SearchResult{
		ResultType:  SearchScienceGeneral,
		Title:       "  CRISPR   gene editing  ",
		Href:        "https://doi.org/10.1000/xyz",
		Description: "A  study of\nCRISPR systems.",
		Published:   "2024-03-01",
		Authors:     []string{"A. One", "B. Two", "C. Three", "D. Four"},
		Source:      "OpenAlex",
		DOI:         "10.1000/xyz",
	}

	got := r.Markdown(0)

	for _, want := range []string{
		"### 1. CRISPR gene editing",
		"URL: https://doi.org/10.1000/xyz",
		"Authors: A. One, B. Two, C. Three",
		"Published: 2024-03-01",
		"A study of CRISPR systems.",
		"Source: OpenAlex | DOI: 10.1000/xyz",
		"---",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Markdown(0) missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "D. Four") {
		t.Errorf("Markdown(0) should truncate authors past %d", maxMarkdownAuthors)
	}
}

func TestMarkdownUnnumbered(t *testing.T) {
	r := SearchResult{Title: "Plain", Href: "https://example.org"}
	got := r.Markdown(-1)
	if !strings.HasPrefix(got, "## Plain") {
		t.Errorf("Markdown(-1) = %q, want unnumbered heading", got)
	}
}

func TestMarkdownEmptyFields(t *testing.T) {
	r := SearchResult{Href: "https://example.org"}
	got := r.Markdown(2)
	if !strings.Contains(got, "### 3. Untitled Result") {
		t.Errorf("Markdown(2) = %q, want untitled fallback heading", got)
	}
	if strings.Contains(got, "Authors:") || strings.Contains(got, "Source:") {
		t.Errorf("Markdown(2) should omit empty metadata sections:\n%s", got)
	}
}

func TestMarkdownList(t *testing.T) {
	results := []SearchResult{
		{Title: "First", Href: "https://a.example"},
		{Title: "Second", Href: "https://b.example"},
	}
	got := MarkdownList(results)
	if !strings.Contains(got, "### 1. First") || !strings.Contains(got, "### 2. Second") {
		t.Errorf("MarkdownList numbering wrong:\n%s", got)
	}
}

func TestSearchTypeKnown(t *testing.T) {
	if !SearchScienceArxiv.Known() {
		t.Error("science_arxiv should be a known type")
	}
	if SearchType("bogus").Known() {
		t.Error("bogus should not be a known type")
	}
	if SearchZenodo.Description() == "" {
		t.Error("zenodo should carry a description")
	}
}
