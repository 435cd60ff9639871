// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the scisearch CLI: concurrent
// multi-source scientific search with relevance reranking, plus Crossref
// metadata lookups.
package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scisearch/internal/secrets"
	"github.com/pdiddy/scisearch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the scisearch CLI.
var rootCmd = &cobra.Command{
	Use:   "scisearch",
	Short: "Concurrent multi-source scientific search",
	Long: `scisearch queries scientific sources (OpenAlex, arXiv, Zenodo, PubMed,
and scraped web sources) concurrently, merges the results into a unified
schema, and optionally reranks them by BM25 relevance.

Use "search" for multi-source queries, "meta" for Crossref metadata
lookups, and "sources" to list the available search types.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if keys := s.Keys(); len(keys) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./scisearch.yaml or ~/.config/scisearch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("scisearch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "scisearch"))
		}
	}

	viper.SetEnvPrefix("SCISEARCH")
	viper.AutomaticEnv()

	viper.SetDefault("log_level", "info")
	viper.SetDefault("search.timeout", 15*time.Second)
	viper.SetDefault("search.user_agent", "scisearch/"+version)
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.rerank", true)
	viper.SetDefault("search.requests_per_second", 5.0)
	viper.SetDefault("search.request_burst", 5)
	viper.SetDefault("metasearch.timeout", 15*time.Second)
	viper.SetDefault("metasearch.user_agent", "scisearch/"+version)
	viper.SetDefault("metasearch.max_results", 5)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the runtime configuration from viper and the
// secrets directory. Secrets fill in values the config file leaves empty.
func loadConfig() types.Config {
	cfg := types.Config{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("search.timeout"),
				UserAgent: viper.GetString("search.user_agent"),
				ProxyURL:  viper.GetString("search.proxy_url"),
			},
			MaxResults:        viper.GetInt("search.max_results"),
			ContactEmail:      viper.GetString("search.contact_email"),
			Rerank:            viper.GetBool("search.rerank"),
			RequestsPerSecond: viper.GetFloat64("search.requests_per_second"),
			RequestBurst:      viper.GetInt("search.request_burst"),
		},
		Metasearch: types.MetasearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("metasearch.timeout"),
				UserAgent: viper.GetString("metasearch.user_agent"),
				ProxyURL:  viper.GetString("metasearch.proxy_url"),
			},
			ContactEmail: viper.GetString("metasearch.contact_email"),
			MaxResults:   viper.GetInt("metasearch.max_results"),
		},
		LogLevel: viper.GetString("log_level"),
	}

	if cfg.Search.ContactEmail == "" {
		cfg.Search.ContactEmail = loadedSecrets.OpenAlexEmail
	}
	if cfg.Metasearch.ContactEmail == "" {
		cfg.Metasearch.ContactEmail = loadedSecrets.CrossrefMailto
	}

	if auth := loadedSecrets.ProxyAuth; auth != "" {
		cfg.Search.ProxyURL = withProxyAuth(cfg.Search.ProxyURL, auth)
		cfg.Metasearch.ProxyURL = withProxyAuth(cfg.Metasearch.ProxyURL, auth)
	}
	return cfg
}

// withProxyAuth splices "user:pass" credentials into a proxy URL that does
// not already carry userinfo.
func withProxyAuth(proxyURL, auth string) string {
	if proxyURL == "" {
		return proxyURL
	}
	u, err := url.Parse(proxyURL)
	if err != nil || u.User != nil {
		return proxyURL
	}
	user, pass, ok := strings.Cut(auth, ":")
	if !ok {
		return proxyURL
	}
	u.User = url.UserPassword(user, pass)
	return u.String()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
