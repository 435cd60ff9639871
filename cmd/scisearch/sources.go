// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scisearch/internal/httputil"
	"github.com/pdiddy/scisearch/internal/search"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the available search types",
	Long: `Sources lists the registered search types with their descriptions.
By default only the stable tier is shown; pass --alpha to include every
registered type.`,
	RunE: runSources,
}

func init() {
	sourcesCmd.Flags().Bool("alpha", false, "include alpha (unreliable) search types")

	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	client, err := httputil.NewClient(cfg.Search.HTTPConfig, cfg.Search.RequestsPerSecond, cfg.Search.RequestBurst)
	if err != nil {
		return err
	}
	registry := search.NewDefaultRegistry(client, cfg.Search)

	tier := search.TierStable
	if alpha, _ := cmd.Flags().GetBool("alpha"); alpha {
		tier = search.TierAlpha
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "TYPE\tDESCRIPTION\n")
	for _, st := range registry.Types(tier) {
		fmt.Fprintf(w, "%s\t%s\n", st, st.Description())
	}
	return w.Flush()
}
