// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/scisearch/internal/httputil"
	"github.com/pdiddy/scisearch/pkg/types"
)

// arxivBase is the arXiv search endpoint. Declared as a var so tests can
// substitute an httptest server.
var arxivBase = "https://export.arxiv.org/api/query"

// ArxivAdapter queries the arXiv Atom API.
type ArxivAdapter struct {
	Client *httputil.Client
}

// Name returns the adapter identifier.
func (a *ArxivAdapter) Name() string { return "arxiv" }

// Search queries arXiv and maps feed entries into the unified schema.
func (a *ArxivAdapter) Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}

	params := url.Values{
		"search_query": {"all:" + query},
		"start":        {"0"},
		"max_results":  {fmt.Sprintf("%d", maxResults)},
		"sortBy":       {"relevance"},
		"sortOrder":    {"descending"},
	}

	resp, err := a.Client.Get(ctx, arxivBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var results []types.SearchResult
	for _, entry := range feed.Entries {
		if len(results) >= maxResults {
			break
		}
		if entry.ID == "" {
			continue
		}

		r := types.SearchResult{
			ResultType:  types.SearchScienceArxiv,
			Title:       strings.TrimSpace(entry.Title),
			Href:        entry.ID,
			Description: strings.TrimSpace(entry.Summary),
			Published:   entry.Published,
			Source:      "arXiv",
			DOI:         entry.DOI,
		}
		for _, au := range entry.Authors {
			r.Authors = append(r.Authors, strings.TrimSpace(au.Name))
		}

		var categories []string
		for _, c := range entry.Categories {
			if c.Term != "" {
				categories = append(categories, c.Term)
			}
		}
		r.AdditionalFields = map[string]any{"categories": categories}

		results = append(results, r)
	}
	return results, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID         string          `xml:"id"`
	Title      string          `xml:"title"`
	Summary    string          `xml:"summary"`
	Published  string          `xml:"published"`
	DOI        string          `xml:"doi"`
	Authors    []arxivAuthor   `xml:"author"`
	Categories []arxivCategory `xml:"category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}
