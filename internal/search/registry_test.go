// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"testing"

	"github.com/pdiddy/scisearch/internal/httputil"
	"github.com/pdiddy/scisearch/pkg/types"
)

func TestNewRegistryRejectsUnknownStableType(t *testing.T) {
	full := map[types.SearchType]Adapter{
		types.SearchScienceArxiv: &mockAdapter{name: "a"},
	}
	_, err := NewRegistry(full, []types.SearchType{types.SearchZenodo})
	if err == nil {
		t.Fatal("NewRegistry accepted a stable type missing from the full set")
	}
}

func TestRegistrySubsetInvariant(t *testing.T) {
	client, err := httputil.NewClient(types.HTTPConfig{UserAgent: "test/0.1"}, 100, 10)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	reg := NewDefaultRegistry(client, types.SearchConfig{})

	for _, st := range reg.Types(TierStable) {
		stable, err := reg.Resolve(st, TierStable)
		if err != nil {
			t.Fatalf("Resolve(%q, stable): %v", st, err)
		}
		full, err := reg.Resolve(st, TierAlpha)
		if err != nil {
			t.Fatalf("stable type %q missing from full registry", st)
		}
		if stable != full {
			t.Errorf("type %q bound to different adapters across tiers", st)
		}
	}
}

func TestDefaultRegistryCoversAllKnownTypes(t *testing.T) {
	client, err := httputil.NewClient(types.HTTPConfig{}, 100, 10)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	reg := NewDefaultRegistry(client, types.SearchConfig{})

	for _, st := range reg.Types(TierAlpha) {
		if !st.Known() {
			t.Errorf("registered type %q has no description", st)
		}
	}

	for _, st := range []types.SearchType{
		types.SearchScienceGeneral, types.SearchScienceArxiv, types.SearchZenodo,
		types.SearchSciencePubMed, types.SearchIndependentNews, types.SearchWeb,
		types.SearchScholar, types.SearchResearchGate, types.SearchPaperity,
		types.SearchSemanticScholar, types.SearchAcademicSources,
		types.SearchOpenScience, types.SearchReference, types.SearchAcademicProfiles,
		types.SearchNews,
	} {
		if _, err := reg.Resolve(st, TierAlpha); err != nil {
			t.Errorf("type %q not registered: %v", st, err)
		}
	}
}

func TestResolveUnknownType(t *testing.T) {
	reg := testRegistry(t, map[types.SearchType]Adapter{
		types.SearchScienceArxiv: &mockAdapter{name: "a"},
	}, nil)

	_, err := reg.Resolve(types.SearchType("made_up"), TierAlpha)
	if !errors.Is(err, ErrUnknownSearchType) {
		t.Errorf("err = %v, want ErrUnknownSearchType", err)
	}
}

func TestTypesSorted(t *testing.T) {
	reg := testRegistry(t, map[types.SearchType]Adapter{
		types.SearchZenodo:       &mockAdapter{name: "z"},
		types.SearchScienceArxiv: &mockAdapter{name: "a"},
		types.SearchWeb:          &mockAdapter{name: "w"},
	}, nil)

	got := reg.Types(TierAlpha)
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Errorf("Types not sorted: %v", got)
		}
	}
}
