// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Secrets
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyOpenAlexEmail, "  user@example.com  \n")
				writeFile(t, dir, KeyCrossrefMailto, "meta@example.org")
				writeFile(t, dir, KeyProxyAuth, "user:pass\n")
				return dir
			},
			want: Secrets{
				OpenAlexEmail:  "user@example.com",
				CrossrefMailto: "meta@example.org",
				ProxyAuth:      "user:pass",
			},
		},
		{
			name: "returns zero value for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Secrets{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyCrossrefMailto, "meta@example.org")
				writeFile(t, dir, KeyOpenAlexEmail, "")
				writeFile(t, dir, KeyProxyAuth, "   \n\t  ")
				return dir
			},
			want: Secrets{CrossrefMailto: "meta@example.org"},
		},
		{
			name: "skips dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, KeyOpenAlexEmail, "user@example.com")
				return dir
			},
			want: Secrets{OpenAlexEmail: "user@example.com"},
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyProxyAuth, "user:pass")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: Secrets{ProxyAuth: "user:pass"},
		},
		{
			name: "warns on unrecognized key files without loading them",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "openalx-email", "typo@example.com")
				writeFile(t, dir, KeyCrossrefMailto, "meta@example.org")
				return dir
			},
			want: Secrets{CrossrefMailto: "meta@example.org"},
		},
		{
			name: "returns zero value for empty directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			want: Secrets{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := tt.setup(t)
			got, err := Load(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeys(t *testing.T) {
	assert.Empty(t, Secrets{}.Keys())

	s := Secrets{
		OpenAlexEmail:  "user@example.com",
		CrossrefMailto: "meta@example.org",
		ProxyAuth:      "user:pass",
	}
	assert.Equal(t, []string{KeyCrossrefMailto, KeyOpenAlexEmail, KeyProxyAuth}, s.Keys())

	partial := Secrets{OpenAlexEmail: "user@example.com"}
	assert.Equal(t, []string{KeyOpenAlexEmail}, partial.Keys())
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("chmod 0000 is still readable by root")
	}

	dir := t.TempDir()
	writeFile(t, dir, KeyOpenAlexEmail, "user@example.com")

	// Create a file then remove read permission.
	badPath := filepath.Join(dir, KeyProxyAuth)
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	got, err := Load(dir)
	require.NoError(t, err)
	// The readable file should still load; the bad file is skipped with a warning.
	assert.Equal(t, "user@example.com", got.OpenAlexEmail)
	assert.Empty(t, got.ProxyAuth, "unreadable file should not populate a field")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
