// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures for scisearch: the
// search-type taxonomy, the query unit submitted by callers, and the unified
// result schema every source adapter maps into.
package types

// SearchType identifies which source (or source category) a query targets
// and which adapter produced a result.
type SearchType string

const (
	SearchWeb              SearchType = "web"
	SearchNews             SearchType = "news"
	SearchIndependentNews  SearchType = "independent_news"
	SearchSciencePubMed    SearchType = "science_pubmed"
	SearchScienceGeneral   SearchType = "science_general"
	SearchScienceArxiv     SearchType = "science_arxiv"
	SearchSemanticScholar  SearchType = "semantic_scholar"
	SearchResearchGate     SearchType = "researchgate"
	SearchPaperity         SearchType = "paperity"
	SearchScholar          SearchType = "scholar"
	SearchAcademicSources  SearchType = "academic_sources"
	SearchOpenScience      SearchType = "open_science"
	SearchReference        SearchType = "reference"
	SearchAcademicProfiles SearchType = "academic_profiles"
	SearchZenodo           SearchType = "zenodo"
)

// searchTypeDescriptions holds the agent-facing description of each search
// type. These strings are surfaced to the LLM driving the search so it can
// pick appropriate types, and by `scisearch sources` for humans.
var searchTypeDescriptions = map[SearchType]string{
	SearchWeb: "General web search that finds relevant web pages, documents, and resources " +
		"across the entire internet. Accepts site:domain.com restrictions.",
	SearchNews: "Recent news articles from major news organizations and press outlets. " +
		"Focuses on current events, breaking news, and recent developments.",
	SearchIndependentNews: "Articles from independent journalists, newsletters, and alternative media sources. " +
		"Good for diverse perspectives and in-depth analysis.",
	SearchSciencePubMed: "Medical and biomedical research papers from the PubMed database. " +
		"Includes clinical studies, medical journals, and healthcare research.",
	SearchScienceGeneral: "Scientific papers and citations across all fields. " +
		"Covers physics, chemistry, biology, and interdisciplinary research.",
	SearchScienceArxiv: "Preprints from arXiv covering physics, mathematics, computer science, and related fields. " +
		"Latest research before formal peer review.",
	SearchSemanticScholar: "Academic papers with AI-powered relevance ranking. " +
		"Smart search across multiple disciplines with citation analysis.",
	SearchResearchGate: "Scientific papers and researcher profiles from ResearchGate. " +
		"Includes preprints, technical reports, and researcher networking.",
	SearchPaperity: "Open access academic papers across multiple disciplines. " +
		"Free full-text research papers and journals.",
	SearchScholar: "Academic papers and citations from Google Scholar. " +
		"Comprehensive academic search with citation metrics.",
	SearchAcademicSources: "Combined search across multiple academic databases. " +
		"Broad coverage of scholarly content and research outputs.",
	SearchOpenScience: "Open access repositories and databases. " +
		"Freely available research papers and datasets.",
	SearchReference: "Reference materials, statistics, and official data sources. " +
		"Background information from government and institutional publishers.",
	SearchAcademicProfiles: "Research profiles, citations, and academic credentials. " +
		"Find researchers, their work, and institutional affiliations.",
	SearchZenodo: "Research outputs from the Zenodo repository. " +
		"Includes datasets, software, presentations, and papers.",
}

// Description returns the agent-facing description of the search type, or
// an empty string for unknown types.
func (t SearchType) Description() string {
	return searchTypeDescriptions[t]
}

// Known reports whether t is one of the recognized search types.
func (t SearchType) Known() bool {
	_, ok := searchTypeDescriptions[t]
	return ok
}

func (t SearchType) String() string { return string(t) }

// SearchQuery pairs a search type with a query string. A list of these is
// the input unit of a multi-search call.
type SearchQuery struct {
	Type  SearchType `json:"search_type" yaml:"search_type"`
	Query string     `json:"query" yaml:"query"`
}

// SearchResult is the unified result schema populated by every adapter.
// Constructed fresh per adapter call and never mutated afterwards.
type SearchResult struct {
	// ResultType tags which search type produced this result.
	ResultType SearchType `json:"result_type" yaml:"result_type"`

	// Title is the display title; may be empty for untitled resources.
	Title string `json:"title" yaml:"title"`

	// Href is the canonical URL. Required; used for display and dedup.
	Href string `json:"href" yaml:"href"`

	// Description is the abstract or snippet text. It doubles as the
	// document for relevance reranking.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Published is the publication date as reported by the source. Sources
	// disagree on format, so it is carried as a date-like string.
	Published string `json:"published,omitempty" yaml:"published,omitempty"`

	// Authors lists author names in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Source is the human-readable origin label (e.g. "OpenAlex", "arXiv").
	Source string `json:"source" yaml:"source"`

	// DOI is the digital object identifier when the source reports one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// AdditionalFields carries source-specific extras (citation counts,
	// categories, venues) that do not fit the common schema.
	AdditionalFields map[string]any `json:"additional_fields,omitempty" yaml:"additional_fields,omitempty"`
}
