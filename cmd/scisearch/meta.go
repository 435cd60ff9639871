// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scisearch/internal/httputil"
	"github.com/pdiddy/scisearch/internal/metasearch"
	"github.com/pdiddy/scisearch/pkg/types"
)

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Look up publication metadata on Crossref",
	Long: `Meta resolves publication metadata through the Crossref works API.
Look up a work by title, author, keyword, or exact DOI. Unlike "search",
each lookup is a single request against one source.`,
}

var metaTitleCmd = &cobra.Command{
	Use:   "title [title]",
	Short: "Find works matching a title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMetaList(cmd, func(ctx context.Context, c *metasearch.Client) ([]types.SearchResult, error) {
			return c.ByTitle(ctx, strings.Join(args, " "))
		})
	},
}

var metaAuthorCmd = &cobra.Command{
	Use:   "author [name]",
	Short: "Find works by an author",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMetaList(cmd, func(ctx context.Context, c *metasearch.Client) ([]types.SearchResult, error) {
			return c.ByAuthor(ctx, strings.Join(args, " "))
		})
	},
}

var metaKeywordCmd = &cobra.Command{
	Use:   "keyword [terms]",
	Short: "Find works matching free-text terms",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMetaList(cmd, func(ctx context.Context, c *metasearch.Client) ([]types.SearchResult, error) {
			return c.ByKeyword(ctx, strings.Join(args, " "))
		})
	},
}

var metaDOICmd = &cobra.Command{
	Use:   "doi [doi]",
	Short: "Resolve a DOI to its metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newMetaClient()
		if err != nil {
			return err
		}
		result, err := client.ByDOI(context.Background(), args[0])
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return writeResults([]types.SearchResult{result}, jsonOutput)
	},
}

func init() {
	metaCmd.PersistentFlags().Bool("json", false, "output results as JSON instead of Markdown")
	metaCmd.PersistentFlags().Int("max-results", 0, "maximum number of results (default from config)")

	metaCmd.AddCommand(metaTitleCmd, metaAuthorCmd, metaKeywordCmd, metaDOICmd)
	rootCmd.AddCommand(metaCmd)
}

func newMetaClient() (*metasearch.Client, error) {
	cfg := loadConfig()
	httpClient, err := httputil.NewClient(cfg.Metasearch.HTTPConfig, cfg.Search.RequestsPerSecond, cfg.Search.RequestBurst)
	if err != nil {
		return nil, err
	}
	return metasearch.NewClient(httpClient, cfg.Metasearch), nil
}

func runMetaList(cmd *cobra.Command, lookup func(context.Context, *metasearch.Client) ([]types.SearchResult, error)) error {
	client, err := newMetaClient()
	if err != nil {
		return err
	}
	if maxResults, _ := cmd.Flags().GetInt("max-results"); maxResults > 0 {
		client.MaxResults = maxResults
	}

	results, err := lookup(context.Background(), client)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No matching works found.")
		return nil
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return writeResults(results, jsonOutput)
}
