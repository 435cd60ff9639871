// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// maxMarkdownAuthors caps how many authors appear in the rendered metadata line.
const maxMarkdownAuthors = 3

// Markdown renders the result as a minimal, token-efficient markdown block
// for direct inclusion in LLM-facing text. When index >= 0 the title becomes
// a numbered sub-heading (1-based); pass a negative index for an unnumbered
// heading. Pure formatting; the receiver is not modified.
func (r SearchResult) Markdown(index int) string {
	title := strings.Join(strings.Fields(r.Title), " ")
	if title == "" {
		title = "Untitled Result"
	}

	var sections []string
	if index >= 0 {
		sections = append(sections, fmt.Sprintf("### %d. %s", index+1, title))
	} else {
		sections = append(sections, "## "+title)
	}

	sections = append(sections, "URL: "+r.Href)

	var meta []string
	if len(r.Authors) > 0 {
		shown := r.Authors
		if len(shown) > maxMarkdownAuthors {
			shown = shown[:maxMarkdownAuthors]
		}
		meta = append(meta, "Authors: "+strings.Join(shown, ", "))
	}
	if r.Published != "" {
		meta = append(meta, "Published: "+r.Published)
	}
	if len(meta) > 0 {
		sections = append(sections, strings.Join(meta, " | "))
	}

	if desc := strings.Join(strings.Fields(r.Description), " "); desc != "" {
		sections = append(sections, desc)
	}

	var footer []string
	if r.Source != "" {
		footer = append(footer, "Source: "+r.Source)
	}
	if r.DOI != "" {
		footer = append(footer, "DOI: "+r.DOI)
	}
	if len(footer) > 0 {
		sections = append(sections, strings.Join(footer, " | "))
	}

	sections = append(sections, "---")
	return strings.Join(sections, "\n\n")
}

// MarkdownList renders a slice of results as numbered markdown blocks.
func MarkdownList(results []SearchResult) string {
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = r.Markdown(i)
	}
	return strings.Join(blocks, "\n\n")
}
