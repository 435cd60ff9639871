// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/scisearch/pkg/types"
)

// Event kinds passed to the caller's EventFunc. These are the sole
// observability hook for adapter-level outcomes; partial failure is visible
// only here and in the log.
const (
	EventResultsFound   = "results_found"
	EventNoResults      = "no_results"
	EventSearchError    = "search_error"
	EventTimeout        = "timeout"
	EventSearchComplete = "search_complete"
)

// EventFunc receives (kind, message) for each notable dispatch event.
type EventFunc func(kind, message string)

// Options controls one MultiSearch invocation.
type Options struct {
	// MaxResults caps each adapter call and the final merged list.
	MaxResults int

	// Timeout bounds each individual adapter call. A timed-out call
	// contributes an empty segment; siblings are unaffected.
	Timeout time.Duration

	// Rerank enables BM25 reranking of the merged list against the
	// combined query text.
	Rerank bool

	// Tier selects the stable or alpha registry.
	Tier Tier

	// Events, when non-nil, is invoked for each notable event.
	Events EventFunc
}

const (
	defaultMaxResults = 10
	defaultTimeout    = 15 * time.Second
)

// Searcher dispatches typed queries to registered adapters concurrently and
// merges their results. Safe for concurrent use.
type Searcher struct {
	registry *Registry
	log      *slog.Logger
}

// NewSearcher returns a Searcher over the given registry. A nil logger
// disables logging.
func NewSearcher(registry *Registry, log *slog.Logger) *Searcher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Searcher{registry: registry, log: log}
}

// MultiSearch resolves each query to its adapter, runs all adapter calls
// concurrently with individual timeouts, and returns their results merged in
// query-submission order. Adapter failures and timeouts contribute empty
// segments; an unregistered search type is a configuration error and fails
// the whole call before any network traffic. Total upstream failure yields
// an empty, non-error result.
func (s *Searcher) MultiSearch(ctx context.Context, queries []types.SearchQuery, opts Options) ([]types.SearchResult, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultMaxResults
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	// Resolve everything up front so a misconfigured query aborts the call
	// before any adapter runs.
	adapters := make([]Adapter, len(queries))
	for i, q := range queries {
		adapter, err := s.registry.Resolve(q.Type, opts.Tier)
		if err != nil {
			return nil, err
		}
		adapters[i] = adapter
	}

	// One slot per query: output order is submission order, never adapter
	// completion order. Events are collected per slot and emitted after the
	// join so the caller's callback never runs concurrently.
	segments := make([][]types.SearchResult, len(queries))
	events := make([]dispatchEvent, len(queries))
	var wg sync.WaitGroup
	for i := range queries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			segments[i], events[i] = s.runOne(ctx, adapters[i], queries[i], opts)
		}(i)
	}
	wg.Wait()

	// A cancelled dispatch discards partial data.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, ev := range events {
		s.emit(opts.Events, ev.kind, ev.message)
	}

	var merged []types.SearchResult
	for _, seg := range segments {
		merged = append(merged, seg...)
	}

	if opts.Rerank && len(merged) > 0 {
		queryTexts := make([]string, len(queries))
		for i, q := range queries {
			queryTexts[i] = q.Query
		}
		merged = Rerank(merged, strings.Join(queryTexts, " "), opts.MaxResults)
	} else {
		merged = Truncate(merged, opts.MaxResults)
	}

	s.emit(opts.Events, EventSearchComplete,
		fmt.Sprintf("search complete: %d results", len(merged)))
	return merged, nil
}

// dispatchEvent is one adapter outcome, queued for sequential emission.
type dispatchEvent struct {
	kind    string
	message string
}

// runOne executes a single adapter call with its own timeout and converts
// every failure into an empty segment plus an event.
func (s *Searcher) runOne(ctx context.Context, adapter Adapter, q types.SearchQuery, opts Options) ([]types.SearchResult, dispatchEvent) {
	callCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	results, err := adapter.Search(callCtx, q.Query, opts.MaxResults)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		s.log.Warn("adapter timed out", "adapter", adapter.Name(), "query", q.Query, "timeout", opts.Timeout)
		return nil, dispatchEvent{EventTimeout,
			fmt.Sprintf("%s timed out after %v for: %q", adapter.Name(), opts.Timeout, q.Query)}
	case err != nil:
		s.log.Warn("adapter failed", "adapter", adapter.Name(), "query", q.Query, "error", err)
		return nil, dispatchEvent{EventSearchError,
			fmt.Sprintf("%s failed for %q: %v", adapter.Name(), q.Query, err)}
	case len(results) == 0:
		s.log.Debug("no results", "adapter", adapter.Name(), "query", q.Query)
		return nil, dispatchEvent{EventNoResults,
			fmt.Sprintf("no results from %s for: %q", adapter.Name(), q.Query)}
	}

	s.log.Debug("results found", "adapter", adapter.Name(), "query", q.Query, "count", len(results))
	return results, dispatchEvent{EventResultsFound,
		fmt.Sprintf("found %d results from %s for: %q", len(results), adapter.Name(), q.Query)}
}

func (s *Searcher) emit(f EventFunc, kind, message string) {
	if f != nil {
		f(kind, message)
	}
}

// Truncate returns the prefix of results with at most max items. A negative
// max means no cap.
func Truncate(results []types.SearchResult, max int) []types.SearchResult {
	if max < 0 || len(results) <= max {
		return results
	}
	return results[:max]
}
