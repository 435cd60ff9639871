// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metasearch provides point lookups against the Crossref works
// API. Unlike the multi-source search pipeline, these are single
// request/response calls for resolving known metadata: a title, a DOI,
// an author, or a keyword.
package metasearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/scisearch/internal/httputil"
	"github.com/pdiddy/scisearch/pkg/types"
)

// crossrefBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefBase = "https://api.crossref.org/works"

// Client queries the Crossref works API.
type Client struct {
	HTTP *httputil.Client

	// Mailto joins the Crossref polite pool when set. Requests carrying
	// a mailto parameter get more generous rate limits.
	Mailto string

	// MaxResults caps list lookups. Zero means the default of 5.
	MaxResults int
}

// NewClient builds a Crossref client from the metasearch configuration.
func NewClient(httpClient *httputil.Client, cfg types.MetasearchConfig) *Client {
	return &Client{
		HTTP:       httpClient,
		Mailto:     cfg.ContactEmail,
		MaxResults: cfg.MaxResults,
	}
}

// ByTitle searches Crossref for works matching a title.
func (c *Client) ByTitle(ctx context.Context, title string) ([]types.SearchResult, error) {
	return c.list(ctx, url.Values{"query.title": {title}})
}

// ByAuthor searches Crossref for works by an author name.
func (c *Client) ByAuthor(ctx context.Context, author string) ([]types.SearchResult, error) {
	return c.list(ctx, url.Values{"query.author": {author}})
}

// ByKeyword searches Crossref for works matching free-text terms.
func (c *Client) ByKeyword(ctx context.Context, keyword string) ([]types.SearchResult, error) {
	return c.list(ctx, url.Values{"query": {keyword}})
}

// ByDOI resolves a single DOI to its Crossref metadata. An unknown DOI
// is an error, not an empty result.
func (c *Client) ByDOI(ctx context.Context, doi string) (types.SearchResult, error) {
	doi = strings.TrimSpace(doi)
	if doi == "" {
		return types.SearchResult{}, fmt.Errorf("empty DOI")
	}

	reqURL := crossrefBase + "/" + url.PathEscape(doi)
	if c.Mailto != "" {
		reqURL += "?" + url.Values{"mailto": {c.Mailto}}.Encode()
	}

	var cr crossrefSingleResponse
	if err := c.get(ctx, reqURL, &cr); err != nil {
		return types.SearchResult{}, fmt.Errorf("resolving DOI %s: %w", doi, err)
	}
	return mapCrossrefWork(cr.Message), nil
}

func (c *Client) list(ctx context.Context, params url.Values) ([]types.SearchResult, error) {
	for _, vals := range params {
		for _, v := range vals {
			if strings.TrimSpace(v) == "" {
				return nil, fmt.Errorf("empty Crossref query")
			}
		}
	}

	rows := c.MaxResults
	if rows <= 0 {
		rows = 5
	}
	params.Set("rows", strconv.Itoa(rows))
	if c.Mailto != "" {
		params.Set("mailto", c.Mailto)
	}

	var cr crossrefListResponse
	if err := c.get(ctx, crossrefBase+"?"+params.Encode(), &cr); err != nil {
		return nil, fmt.Errorf("Crossref works request: %w", err)
	}

	results := make([]types.SearchResult, 0, len(cr.Message.Items))
	for _, work := range cr.Message.Items {
		results = append(results, mapCrossrefWork(work))
	}
	return results, nil
}

func (c *Client) get(ctx context.Context, reqURL string, out any) error {
	resp, err := c.HTTP.Get(ctx, reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Crossref returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing Crossref response: %w", err)
	}
	return nil
}

func mapCrossrefWork(work crossrefWork) types.SearchResult {
	r := types.SearchResult{
		ResultType:  types.SearchScienceGeneral,
		Description: stripJATS(work.Abstract),
		Source:      "Crossref",
		DOI:         work.DOI,
	}

	if len(work.Title) > 0 {
		r.Title = work.Title[0]
	}

	if work.URL != "" {
		r.Href = work.URL
	} else if work.DOI != "" {
		r.Href = "https://doi.org/" + work.DOI
	}

	for _, a := range work.Author {
		name := strings.TrimSpace(a.Given + " " + a.Family)
		if name != "" {
			r.Authors = append(r.Authors, name)
		}
	}

	if len(work.Issued.DateParts) > 0 {
		r.Published = formatDateParts(work.Issued.DateParts[0])
	}

	extras := map[string]any{}
	if len(work.ContainerTitle) > 0 {
		extras["venue"] = work.ContainerTitle[0]
	}
	if work.Type != "" {
		extras["work_type"] = work.Type
	}
	if work.IsReferencedByCount > 0 {
		extras["citation_count"] = work.IsReferencedByCount
	}
	if work.Publisher != "" {
		extras["publisher"] = work.Publisher
	}
	if len(extras) > 0 {
		r.AdditionalFields = extras
	}
	return r
}

// jatsTagRe matches JATS XML markup embedded in Crossref abstracts.
var jatsTagRe = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

func stripJATS(abstract string) string {
	if abstract == "" {
		return ""
	}
	return strings.Join(strings.Fields(jatsTagRe.ReplaceAllString(abstract, " ")), " ")
}

// formatDateParts renders Crossref date-parts ([year month day], with
// month and day optional) as YYYY, YYYY-MM, or YYYY-MM-DD.
func formatDateParts(parts []int) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%04d", parts[0])
	case 2:
		return fmt.Sprintf("%04d-%02d", parts[0], parts[1])
	default:
		return fmt.Sprintf("%04d-%02d-%02d", parts[0], parts[1], parts[2])
	}
}

type crossrefListResponse struct {
	Message struct {
		Items []crossrefWork `json:"items"`
	} `json:"message"`
}

type crossrefSingleResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	DOI                 string            `json:"DOI"`
	URL                 string            `json:"URL"`
	Type                string            `json:"type"`
	Title               []string          `json:"title"`
	ContainerTitle      []string          `json:"container-title"`
	Abstract            string            `json:"abstract"`
	Publisher           string            `json:"publisher"`
	IsReferencedByCount int               `json:"is-referenced-by-count"`
	Author              []crossrefAuthor  `json:"author"`
	Issued              crossrefDateParts `json:"issued"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDateParts struct {
	DateParts [][]int `json:"date-parts"`
}
