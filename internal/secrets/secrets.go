// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API credentials from a directory of plain-text files.
// Each file holds one value: the filename is the key name and the file
// contents (trimmed) are the value.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Key filenames recognized in the secrets directory.
const (
	KeyOpenAlexEmail  = "openalex-email"
	KeyCrossrefMailto = "crossref-mailto"
	KeyProxyAuth      = "proxy-auth"
)

// Secrets holds the credentials the CLI consumes. Empty fields mean the
// corresponding key file was absent or empty.
type Secrets struct {
	// OpenAlexEmail joins the OpenAlex polite pool (mailto parameter).
	OpenAlexEmail string

	// CrossrefMailto joins the Crossref polite pool.
	CrossrefMailto string

	// ProxyAuth is "user:pass" credentials for the outbound proxy.
	ProxyAuth string
}

// Keys returns the names of the populated keys in directory order.
func (s Secrets) Keys() []string {
	var keys []string
	if s.CrossrefMailto != "" {
		keys = append(keys, KeyCrossrefMailto)
	}
	if s.OpenAlexEmail != "" {
		keys = append(keys, KeyOpenAlexEmail)
	}
	if s.ProxyAuth != "" {
		keys = append(keys, KeyProxyAuth)
	}
	return keys
}

// Load reads the recognized key files from dir. A missing directory or
// missing key files are not errors; Load returns zero-value Secrets.
// Unreadable or unrecognized files produce a warning on stderr but do
// not abort, so a typo in a key name is visible instead of silent.
func Load(dir string) (Secrets, error) {
	var s Secrets

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		value := strings.TrimSpace(string(data))
		if value == "" {
			continue
		}

		switch name {
		case KeyOpenAlexEmail:
			s.OpenAlexEmail = value
		case KeyCrossrefMailto:
			s.CrossrefMailto = value
		case KeyProxyAuth:
			s.ProxyAuth = value
		default:
			fmt.Fprintf(os.Stderr, "warning: unrecognized secret %s (expected %s, %s, or %s)\n",
				name, KeyOpenAlexEmail, KeyCrossrefMailto, KeyProxyAuth)
		}
	}

	return s, nil
}
