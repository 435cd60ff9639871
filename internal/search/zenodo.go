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

// zenodoBase is the Zenodo records endpoint. Declared as a var so tests can
// substitute an httptest server.
var zenodoBase = "https://zenodo.org/api/records"

// ZenodoAdapter queries the Zenodo repository API.
type ZenodoAdapter struct {
	Client *httputil.Client
}

// Name returns the adapter identifier.
func (a *ZenodoAdapter) Name() string { return "zenodo" }

// Search queries Zenodo and maps records into the unified schema.
func (a *ZenodoAdapter) Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty Zenodo query")
	}

	params := url.Values{
		"q":    {query},
		"size": {fmt.Sprintf("%d", maxResults)},
	}

	resp, err := a.Client.Get(ctx, zenodoBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("Zenodo API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Zenodo API returned HTTP %d", resp.StatusCode)
	}

	var zr zenodoResponse
	if err := json.NewDecoder(resp.Body).Decode(&zr); err != nil {
		return nil, fmt.Errorf("parsing Zenodo response: %w", err)
	}

	var results []types.SearchResult
	for _, hit := range zr.Hits.Hits {
		if len(results) >= maxResults {
			break
		}
		results = append(results, mapZenodoRecord(hit))
	}
	return results, nil
}

// mapZenodoRecord converts one Zenodo record into a SearchResult.
func mapZenodoRecord(rec zenodoRecord) types.SearchResult {
	href := rec.Links.DOI
	if href == "" {
		href = rec.Links.HTML
	}
	if href == "" {
		href = fmt.Sprintf("https://zenodo.org/record/%d", rec.ID)
	}

	title := rec.Metadata.Title
	if title == "" {
		title = "Untitled Dataset"
	}

	var authors []string
	for _, c := range rec.Metadata.Creators {
		if c.Name != "" {
			authors = append(authors, c.Name)
		}
	}

	var fileTypes []string
	for _, f := range rec.Files {
		if f.Type != "" {
			fileTypes = append(fileTypes, f.Type)
		}
	}

	return types.SearchResult{
		ResultType:  types.SearchZenodo,
		Title:       title,
		Href:        href,
		Description: rec.Metadata.Description,
		Published:   rec.Metadata.PublicationDate,
		Authors:     authors,
		Source:      "Zenodo",
		DOI:         rec.DOI,
		AdditionalFields: map[string]any{
			"file_types":    fileTypes,
			"keywords":      rec.Metadata.Keywords,
			"resource_type": rec.Metadata.ResourceType.Type,
		},
	}
}

// Zenodo API JSON structures.
type zenodoResponse struct {
	Hits struct {
		Total int            `json:"total"`
		Hits  []zenodoRecord `json:"hits"`
	} `json:"hits"`
}

type zenodoRecord struct {
	ID       int            `json:"id"`
	DOI      string         `json:"doi"`
	Metadata zenodoMetadata `json:"metadata"`
	Links    zenodoLinks    `json:"links"`
	Files    []zenodoFile   `json:"files"`
}

type zenodoMetadata struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	PublicationDate string          `json:"publication_date"`
	Keywords        []string        `json:"keywords"`
	Creators        []zenodoCreator `json:"creators"`
	ResourceType    struct {
		Type string `json:"type"`
	} `json:"resource_type"`
}

type zenodoCreator struct {
	Name string `json:"name"`
}

type zenodoLinks struct {
	DOI  string `json:"doi"`
	HTML string `json:"html"`
}

type zenodoFile struct {
	Type string `json:"type"`
}
