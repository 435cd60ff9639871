// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/pdiddy/scisearch/internal/httputil"
	"github.com/pdiddy/scisearch/pkg/types"
)

// scrapeBase is the DuckDuckGo HTML search endpoint. Declared as a var so
// tests can substitute an httptest server.
var scrapeBase = "https://html.duckduckgo.com/html/"

// scrapeTemplate decorates the caller's query for one scrape-backed search
// type, narrowing the general web surface with site restrictions and
// keyword riders.
type scrapeTemplate struct {
	decorate func(q string) string
	params   url.Values
}

func plainQuery(q string) string { return q }

func siteQuery(site string) func(string) string {
	return func(q string) string { return q + " site:" + site }
}

func orSitesQuery(rider string, sites ...string) func(string) string {
	restrictions := make([]string, len(sites))
	for i, s := range sites {
		restrictions[i] = "site:" + s
	}
	joined := "(" + strings.Join(restrictions, " OR ") + ")"
	return func(q string) string {
		if rider == "" {
			return q + " " + joined
		}
		return q + " " + rider + " " + joined
	}
}

// scrapeTemplates maps each scrape-backed search type to its query
// decoration. The site lists mirror the upstream surfaces each type covers.
var scrapeTemplates = map[types.SearchType]scrapeTemplate{
	types.SearchWeb:  {decorate: plainQuery},
	types.SearchNews: {decorate: plainQuery, params: url.Values{"df": {"w"}}},
	types.SearchSemanticScholar: {
		decorate: func(q string) string { return q + " TLDR site:semanticscholar.org" },
	},
	types.SearchResearchGate: {decorate: siteQuery("researchgate.net")},
	types.SearchPaperity:     {decorate: siteQuery("paperity.org")},
	types.SearchScholar:      {decorate: siteQuery("scholar.google.com")},
	types.SearchAcademicSources: {
		decorate: orSitesQuery("conclusion",
			"scholar.google.com", "ncbi.nlm.nih.gov/pubmed", "onlinelibrary.wiley.com",
			"ieeexplore.ieee.org", "dl.acm.org", "link.springer.com",
			"sciencedirect.com", "biorxiv.org"),
	},
	types.SearchOpenScience: {
		decorate: orSitesQuery("conclusion",
			"semanticscholar.org", "paperity.org", "researchgate.net"),
	},
	types.SearchReference: {
		decorate: orSitesQuery("(statistics OR data OR figures)",
			"*.gov", "*.edu", "data.worldbank.org", "data.un.org", "oecd.org",
			"eurostat.ec.europa.eu", "census.gov", "bls.gov", "who.int/data"),
	},
	types.SearchAcademicProfiles: {
		decorate: orSitesQuery("(professor OR researcher OR faculty OR academic)",
			"*.edu/faculty", "*.edu/people", "*.ac.uk/people",
			"researchgate.net/profile", "scholar.google.com/citations",
			"orcid.org", "europepmc.org/authors"),
	},
}

// ScrapeAdapter serves the search types backed by a scraped web search
// surface. One instance per type; the template narrows the query.
type ScrapeAdapter struct {
	Client   *httputil.Client
	Type     types.SearchType
	Template scrapeTemplate
}

// Name returns the adapter identifier.
func (a *ScrapeAdapter) Name() string { return "scrape:" + string(a.Type) }

// Search fetches the HTML result page for the decorated query and extracts
// title, link, and snippet per result.
func (a *ScrapeAdapter) Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty scrape query")
	}

	params := url.Values{"q": {a.Template.decorate(query)}}
	for k, vs := range a.Template.params {
		for _, v := range vs {
			params.Add(k, v)
		}
	}

	resp, err := a.Client.Get(ctx, scrapeBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("scrape request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scrape surface returned HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing scrape response: %w", err)
	}

	raw := extractScrapeHits(doc)
	var results []types.SearchResult
	for _, hit := range raw {
		if len(results) >= maxResults {
			break
		}
		href := resolveRedirect(hit.href)
		if href == "" {
			continue
		}
		source := ""
		if u, err := url.Parse(href); err == nil {
			source = u.Host
		}
		results = append(results, types.SearchResult{
			ResultType:  a.Type,
			Title:       hit.title,
			Href:        href,
			Description: hit.snippet,
			Source:      source,
		})
	}
	return results, nil
}

// scrapeHit is one raw result extracted from the HTML page.
type scrapeHit struct {
	title   string
	href    string
	snippet string
}

// extractScrapeHits walks the parsed document collecting result links
// (class result__a) and their snippets (class result__snippet).
func extractScrapeHits(doc *html.Node) []scrapeHit {
	var hits []scrapeHit

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			class := attrValue(n, "class")
			switch {
			case strings.Contains(class, "result__a"):
				hits = append(hits, scrapeHit{
					title: nodeText(n),
					href:  attrValue(n, "href"),
				})
				return
			case strings.Contains(class, "result__snippet") && len(hits) > 0:
				if hits[len(hits)-1].snippet == "" {
					hits[len(hits)-1].snippet = nodeText(n)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return hits
}

// resolveRedirect unwraps the search surface's redirect links (the target
// URL rides in the uddg query parameter) and returns a usable absolute URL.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if !u.IsAbs() {
		return ""
	}
	return href
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// nodeText concatenates the text content beneath n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
