// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/scisearch/internal/httputil"
	"github.com/pdiddy/scisearch/pkg/types"
)

// substackBase is the Substack post-search endpoint. Declared as a var so
// tests can substitute an httptest server.
var substackBase = "https://substack.com/api/v1/post/search"

// SubstackAdapter searches Substack posts for independent-news coverage.
type SubstackAdapter struct {
	Client *httputil.Client
}

// Name returns the adapter identifier.
func (a *SubstackAdapter) Name() string { return "substack" }

// Search queries the post-search API and merges its focused and general
// result lists in that order.
func (a *SubstackAdapter) Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty Substack query")
	}

	params := url.Values{
		"query":         {query},
		"page":          {"0"},
		"numberFocused": {"3"},
	}

	resp, err := a.Client.Get(ctx, substackBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("Substack API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Substack API returned HTTP %d", resp.StatusCode)
	}

	var sr substackResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Substack response: %w", err)
	}

	combined := append(sr.Focused, sr.Results...)
	var results []types.SearchResult
	for _, post := range combined {
		if len(results) >= maxResults {
			break
		}
		if post.CanonicalURL == "" {
			continue
		}
		results = append(results, mapSubstackPost(post))
	}
	return results, nil
}

// mapSubstackPost converts one post into a SearchResult.
func mapSubstackPost(post substackPost) types.SearchResult {
	title := post.Title
	if title == "" {
		title = "Untitled Post"
	}
	desc := post.Description
	if desc == "" {
		desc = post.TruncatedBodyText
	}

	var authors []string
	for _, b := range post.PublishedBylines {
		if b.Name != "" {
			authors = append(authors, b.Name)
		}
	}

	source := "Substack"
	if post.Publication.Name != "" {
		source = post.Publication.Name
	}

	return types.SearchResult{
		ResultType:  types.SearchIndependentNews,
		Title:       title,
		Href:        post.CanonicalURL,
		Description: desc,
		Published:   post.PostDate,
		Authors:     authors,
		Source:      source,
	}
}

// Substack API JSON structures.
type substackResponse struct {
	Focused []substackPost `json:"focused"`
	Results []substackPost `json:"results"`
}

type substackPost struct {
	Title             string `json:"title"`
	CanonicalURL      string `json:"canonical_url"`
	Description       string `json:"description"`
	TruncatedBodyText string `json:"truncated_body_text"`
	PostDate          string `json:"post_date"`
	PublishedBylines  []struct {
		Name string `json:"name"`
	} `json:"publishedBylines"`
	Publication struct {
		Name string `json:"name"`
	} `json:"publication"`
}
