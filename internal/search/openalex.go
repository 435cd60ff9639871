// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/pdiddy/scisearch/internal/httputil"
	"github.com/pdiddy/scisearch/pkg/types"
)

// openAlexBase is the OpenAlex Works search endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexBase = "https://api.openalex.org/works"

// openAlexMaxPerPage is the API's per_page ceiling.
const openAlexMaxPerPage = 200

// OpenAlexAdapter queries the OpenAlex Works API.
type OpenAlexAdapter struct {
	Client *httputil.Client
	// Email is sent as the mailto parameter for polite pool access.
	Email string
}

// Name returns the adapter identifier.
func (a *OpenAlexAdapter) Name() string { return "openalex" }

// Search queries OpenAlex and maps works into the unified schema.
func (a *OpenAlexAdapter) Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty OpenAlex query")
	}
	if maxResults > openAlexMaxPerPage {
		maxResults = openAlexMaxPerPage
	}

	params := url.Values{
		"search":   {query},
		"per_page": {fmt.Sprintf("%d", maxResults)},
		"page":     {"1"},
	}
	if a.Email != "" {
		params.Set("mailto", a.Email)
	}

	resp, err := a.Client.Get(ctx, openAlexBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var oar openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	var results []types.SearchResult
	for _, work := range oar.Results {
		if len(results) >= maxResults {
			break
		}
		results = append(results, mapOpenAlexWork(work))
	}
	return results, nil
}

// mapOpenAlexWork converts one OpenAlex work into a SearchResult.
func mapOpenAlexWork(work openAlexWork) types.SearchResult {
	r := types.SearchResult{
		ResultType:  types.SearchScienceGeneral,
		Title:       work.Title,
		Description: reconstructAbstract(work.AbstractInvertedIndex),
		Published:   work.PublicationDate,
		Source:      "OpenAlex",
	}

	for _, authorship := range work.Authorships {
		if authorship.Author.DisplayName != "" {
			r.Authors = append(r.Authors, authorship.Author.DisplayName)
		}
	}

	if work.DOI != "" {
		r.DOI = strings.TrimPrefix(work.DOI, "https://doi.org/")
	}

	// Href prefers the open-access PDF, then the DOI URL, then the work ID.
	var venue string
	pdfURL := work.PrimaryLocation.PDFURL
	if work.PrimaryLocation.Source.DisplayName != "" {
		venue = work.PrimaryLocation.Source.DisplayName
	}
	switch {
	case pdfURL != "":
		r.Href = pdfURL
	case r.DOI != "":
		r.Href = "https://doi.org/" + r.DOI
	default:
		r.Href = work.ID
	}

	var concepts []string
	for _, c := range work.Concepts {
		if c.DisplayName != "" {
			concepts = append(concepts, c.DisplayName)
		}
		if len(concepts) == 5 {
			break
		}
	}

	r.AdditionalFields = map[string]any{
		"citation_count":   work.CitedByCount,
		"publication_year": work.PublicationYear,
		"open_access":      work.OpenAccess.IsOA,
		"concepts":         concepts,
		"primary_topic":    work.PrimaryTopic.DisplayName,
		"venue":            venue,
	}
	return r
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to the positions where it
// appears in the abstract.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	PublicationDate       string               `json:"publication_date"`
	PublicationYear       int                  `json:"publication_year"`
	CitedByCount          int                  `json:"cited_by_count"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
	OpenAccess            openAlexOpenAccess   `json:"open_access"`
	PrimaryLocation       openAlexLocation     `json:"primary_location"`
	PrimaryTopic          openAlexNamed        `json:"primary_topic"`
	Concepts              []openAlexNamed      `json:"concepts"`
}

type openAlexAuthorship struct {
	Author openAlexNamed `json:"author"`
}

type openAlexNamed struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexOpenAccess struct {
	IsOA     bool   `json:"is_oa"`
	OAStatus string `json:"oa_status"`
	OAURL    string `json:"oa_url"`
}

type openAlexLocation struct {
	PDFURL string        `json:"pdf_url"`
	Source openAlexNamed `json:"source"`
}
