// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scisearch/internal/httputil"
	"github.com/pdiddy/scisearch/internal/logging"
	"github.com/pdiddy/scisearch/internal/search"
	"github.com/pdiddy/scisearch/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search scientific sources concurrently",
	Long: `Search dispatches the query to one or more source adapters concurrently
and merges their results in submission order. Failing or timed-out sources
contribute nothing; the rest still return.

Repeat --type to fan the same query out to several sources:

  scisearch search --type science_general --type science_arxiv "CRISPR base editing"

By default only the stable sources are available; pass --alpha to allow
every registered type, including the scrape-backed ones. Use --save to
write the session to a YAML file and --load to reformat a saved session
without re-querying.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringArray("type", []string{string(types.SearchScienceGeneral)}, "search type to query (repeatable)")
	searchCmd.Flags().Int("max-results", 0, "maximum number of merged results (default from config)")
	searchCmd.Flags().Duration("timeout", 0, "per-source timeout (default from config)")
	searchCmd.Flags().Bool("rerank", true, "rerank merged results by BM25 relevance")
	searchCmd.Flags().Bool("alpha", false, "allow alpha (unreliable) search types")
	searchCmd.Flags().Bool("json", false, "output results as JSON instead of Markdown")
	searchCmd.Flags().Bool("quiet", false, "suppress per-source progress events on stderr")
	searchCmd.Flags().String("save", "", "write queries, options, and results to a YAML file")
	searchCmd.Flags().String("load", "", "render results from a saved YAML file instead of searching")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if loadPath, _ := cmd.Flags().GetString("load"); loadPath != "" {
		return renderSavedSearch(cmd, loadPath)
	}

	if len(args) == 0 {
		return fmt.Errorf("query required: scisearch search \"your query\"")
	}
	queryText := strings.Join(args, " ")

	typeNames, _ := cmd.Flags().GetStringArray("type")
	queries := make([]types.SearchQuery, 0, len(typeNames))
	for _, name := range typeNames {
		st := types.SearchType(name)
		if !st.Known() {
			return fmt.Errorf("unknown search type %q (run \"scisearch sources\" for the list)", name)
		}
		queries = append(queries, types.SearchQuery{Type: st, Query: queryText})
	}

	cfg := loadConfig()
	opts := searchOptions(cmd, cfg)

	client, err := httputil.NewClient(cfg.Search.HTTPConfig, cfg.Search.RequestsPerSecond, cfg.Search.RequestBurst)
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, "scisearch", cfg.LogLevel)
	searcher := search.NewSearcher(search.NewDefaultRegistry(client, cfg.Search), log)

	results, err := searcher.MultiSearch(context.Background(), queries, opts)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := search.WriteQueryFile(savePath, queries, opts, results); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved search to", savePath)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return writeResults(results, jsonOutput)
}

// searchOptions merges config defaults with command-line overrides.
func searchOptions(cmd *cobra.Command, cfg types.Config) search.Options {
	opts := search.Options{
		MaxResults: cfg.Search.MaxResults,
		Timeout:    cfg.Search.Timeout,
		Rerank:     cfg.Search.Rerank,
		Tier:       search.TierStable,
	}

	if maxResults, _ := cmd.Flags().GetInt("max-results"); maxResults > 0 {
		opts.MaxResults = maxResults
	}
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		opts.Timeout = timeout
	}
	if cmd.Flags().Changed("rerank") {
		opts.Rerank, _ = cmd.Flags().GetBool("rerank")
	}
	if alpha, _ := cmd.Flags().GetBool("alpha"); alpha {
		opts.Tier = search.TierAlpha
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		opts.Events = func(kind, message string) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", kind, message)
		}
	}
	return opts
}

// renderSavedSearch reformats a previously saved query file.
func renderSavedSearch(cmd *cobra.Command, path string) error {
	qf, err := search.ReadQueryFile(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Loaded %d results saved %s\n",
		qf.Summary.Total, qf.Summary.Timestamp.Format(time.RFC3339))

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return writeResults(qf.Results, jsonOutput)
}

func writeResults(results []types.SearchResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	fmt.Println(types.MarkdownList(results))
	return nil
}
