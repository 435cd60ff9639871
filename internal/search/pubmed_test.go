// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/pdiddy/scisearch/pkg/types"
)

const pubmedSample = `PMID- 36000001
OWN - NLM
TI  - Gene therapy approaches for sickle cell
      disease in adults.
AB  - Recent advances in gene therapy have enabled
      durable correction of the sickle mutation.
AID - 10.1000/sickle.2023 [doi]

PMID- 36000002
TI  - CRISPR correction of beta-thalassemia.
AB  - Base editors restore hemoglobin expression.
AID - 10.1000/thal.2023 [doi]

PMID- 36000003
OWN - NLM
TI  - Trailing record without a DOI tag.
AB  - This one should not match.
`

func TestPubMedSearch(t *testing.T) {
	var gotTerm, gotFormat string
	swapEndpoint(t, &pubmedBase, func(w http.ResponseWriter, r *http.Request) {
		gotTerm = r.URL.Query().Get("term")
		gotFormat = r.URL.Query().Get("format")
		fmt.Fprint(w, pubmedSample)
	})

	a := &PubMedAdapter{Client: newTestClient(t)}
	results, err := a.Search(context.Background(), "sickle cell", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotTerm != "sickle cell" || gotFormat != "pubmed" {
		t.Errorf("params = term:%q format:%q", gotTerm, gotFormat)
	}
	if len(results) != 2 {
		t.Fatalf("len = %d, want 2 (records with DOI only)", len(results))
	}

	r := results[0]
	if r.ResultType != types.SearchSciencePubMed {
		t.Errorf("result type = %q, want science_pubmed", r.ResultType)
	}
	if r.Href != "https://pubmed.ncbi.nlm.nih.gov/36000001/" {
		t.Errorf("href = %q", r.Href)
	}
	if r.Title != "Gene therapy approaches for sickle cell disease in adults." {
		t.Errorf("title = %q, want continuation lines collapsed", r.Title)
	}
	if r.DOI != "10.1000/sickle.2023" {
		t.Errorf("doi = %q", r.DOI)
	}
	if r.AdditionalFields["pmid"] != "36000001" {
		t.Errorf("pmid = %v", r.AdditionalFields["pmid"])
	}
}

func TestPubMedMaxResults(t *testing.T) {
	swapEndpoint(t, &pubmedBase, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, pubmedSample)
	})

	a := &PubMedAdapter{Client: newTestClient(t)}
	results, err := a.Search(context.Background(), "q", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("len = %d, want 1", len(results))
	}
}

func TestPubMedNoMatches(t *testing.T) {
	swapEndpoint(t, &pubmedBase, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "no records here")
	})

	a := &PubMedAdapter{Client: newTestClient(t)}
	results, err := a.Search(context.Background(), "q", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len = %d, want 0", len(results))
	}
}
