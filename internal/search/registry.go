// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search implements the multi-source search pipeline: a registry of
// source adapters, a concurrent dispatcher with per-call timeouts and
// fail-soft error isolation, and a BM25 relevance reranker.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/pdiddy/scisearch/internal/httputil"
	"github.com/pdiddy/scisearch/pkg/types"
)

// Adapter translates one external source into the unified result schema.
// Implementations return at most maxResults items, honor ctx cancellation on
// their network calls, and report failures through the error return; the
// dispatcher converts errors into empty contributions.
type Adapter interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error)
}

// Tier selects which registry a query may resolve against.
type Tier int

const (
	// TierStable restricts resolution to the curated always-working subset.
	TierStable Tier = iota
	// TierAlpha allows any registered search type, reliable or not.
	TierAlpha
)

func (t Tier) String() string {
	if t == TierStable {
		return "stable"
	}
	return "alpha"
}

// ErrUnknownSearchType marks a configuration error: the caller requested a
// search type that is not registered for the selected tier.
var ErrUnknownSearchType = errors.New("unknown search type")

// Registry maps search types to adapters. It is built once at startup and
// read-only afterwards. The stable map is always a subset of the full map
// with identical adapter bindings.
type Registry struct {
	full   map[types.SearchType]Adapter
	stable map[types.SearchType]Adapter
}

// NewRegistry builds a registry from the full adapter set and the list of
// search types curated as stable. Every stable type must be present in the
// full set; the stable bindings are taken from the full map, so the
// identical-binding invariant holds by construction.
func NewRegistry(full map[types.SearchType]Adapter, stableTypes []types.SearchType) (*Registry, error) {
	stable := make(map[types.SearchType]Adapter, len(stableTypes))
	for _, st := range stableTypes {
		adapter, ok := full[st]
		if !ok {
			return nil, fmt.Errorf("stable search type %q not in full registry", st)
		}
		stable[st] = adapter
	}
	return &Registry{full: full, stable: stable}, nil
}

// Resolve returns the adapter bound to st in the given tier.
func (r *Registry) Resolve(st types.SearchType, tier Tier) (Adapter, error) {
	m := r.full
	if tier == TierStable {
		m = r.stable
	}
	adapter, ok := m[st]
	if !ok {
		return nil, fmt.Errorf("%w: %q (tier %s)", ErrUnknownSearchType, st, tier)
	}
	return adapter, nil
}

// Types lists the search types registered for the tier, sorted for stable
// CLI and prompt output.
func (r *Registry) Types(tier Tier) []types.SearchType {
	m := r.full
	if tier == TierStable {
		m = r.stable
	}
	out := make([]types.SearchType, 0, len(m))
	for st := range m {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// stableTypes is the curated set of search types known to be reliable:
// plain REST APIs without rate-limit trouble. Scrape-backed types stay
// alpha-only.
var stableTypes = []types.SearchType{
	types.SearchScienceGeneral,
	types.SearchScienceArxiv,
	types.SearchZenodo,
}

// NewDefaultRegistry wires every production adapter onto the shared HTTP
// client and returns the registry used by the CLI.
func NewDefaultRegistry(client *httputil.Client, cfg types.SearchConfig) *Registry {
	full := map[types.SearchType]Adapter{
		types.SearchScienceGeneral:  &OpenAlexAdapter{Client: client, Email: cfg.ContactEmail},
		types.SearchScienceArxiv:    &ArxivAdapter{Client: client},
		types.SearchZenodo:          &ZenodoAdapter{Client: client},
		types.SearchSciencePubMed:   &PubMedAdapter{Client: client},
		types.SearchIndependentNews: &SubstackAdapter{Client: client},
	}
	for st, tpl := range scrapeTemplates {
		full[st] = &ScrapeAdapter{Client: client, Type: st, Template: tpl}
	}

	reg, err := NewRegistry(full, stableTypes)
	if err != nil {
		// Static wiring above; only reachable through a programming error.
		panic(err)
	}
	return reg
}
