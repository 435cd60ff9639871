// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scisearch/pkg/types"
)

// QueryFile is the on-disk representation of a multi-search and its results.
// The caller can save a search to a file and reformat or inspect it later
// without re-querying the sources.
type QueryFile struct {
	Queries []types.SearchQuery  `yaml:"queries"`
	Config  QueryFileConfig      `yaml:"config"`
	Results []types.SearchResult `yaml:"results"`
	Summary QuerySummary         `yaml:"summary"`
}

// QueryFileConfig stores the options that produced the results.
type QueryFileConfig struct {
	MaxResults int           `yaml:"max_results"`
	Timeout    time.Duration `yaml:"timeout"`
	Rerank     bool          `yaml:"rerank"`
	Tier       string        `yaml:"tier"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves queries, options, and results to a YAML file.
func WriteQueryFile(path string, queries []types.SearchQuery, opts Options, results []types.SearchResult) error {
	qf := QueryFile{
		Queries: queries,
		Config: QueryFileConfig{
			MaxResults: opts.MaxResults,
			Timeout:    opts.Timeout,
			Rerank:     opts.Rerank,
			Tier:       opts.Tier.String(),
		},
		Results: results,
		Summary: QuerySummary{
			Total:     len(results),
			Timestamp: time.Now(),
		},
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
