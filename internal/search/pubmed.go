// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/scisearch/internal/httputil"
	"github.com/pdiddy/scisearch/pkg/types"
)

// pubmedBase is the PubMed search endpoint. Declared as a var so tests can
// substitute an httptest server.
var pubmedBase = "https://pubmed.ncbi.nlm.nih.gov/"

// pubmedRecordRe captures PMID, title, abstract, and DOI from PubMed's
// MEDLINE text format (format=pubmed). Field values continue across lines,
// hence the dot-matches-newline flag.
var pubmedRecordRe = regexp.MustCompile(
	`(?s)PMID-\s*(\d+).*?TI\s*-\s*(.*?)\s*AB\s*-\s*(.*?)\s*AID\s*-\s*(10\.\d{4,9}/\S+)\s*\[doi\]`)

// PubMedAdapter queries PubMed's MEDLINE-format search surface.
type PubMedAdapter struct {
	Client *httputil.Client
}

// Name returns the adapter identifier.
func (a *PubMedAdapter) Name() string { return "pubmed" }

// Search queries PubMed sorted by relevance and parses the MEDLINE records.
func (a *PubMedAdapter) Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty PubMed query")
	}

	params := url.Values{
		"term":          {query},
		"sort":          {"relevance"},
		"sort_order":    {"desc"},
		"format":        {"pubmed"},
		"show_snippets": {"on"},
		"size":          {fmt.Sprintf("%d", maxResults)},
	}

	resp, err := a.Client.Get(ctx, pubmedBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("PubMed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading PubMed response: %w", err)
	}

	var results []types.SearchResult
	for _, m := range pubmedRecordRe.FindAllStringSubmatch(string(body), -1) {
		if len(results) >= maxResults {
			break
		}
		pmid, title, abstract, doi := m[1], m[2], m[3], m[4]
		results = append(results, types.SearchResult{
			ResultType:  types.SearchSciencePubMed,
			Title:       collapseWhitespace(title),
			Href:        fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", pmid),
			Description: collapseWhitespace(abstract),
			Source:      "PubMed",
			DOI:         doi,
			AdditionalFields: map[string]any{
				"pmid": pmid,
			},
		})
	}
	return results, nil
}

// collapseWhitespace normalizes MEDLINE line continuations into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
