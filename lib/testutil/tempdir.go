// Copyright 2026 The Literate Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// WriteTree writes files into a fresh temporary directory and returns
// its path. Keys are slash separated paths relative to the directory.
//
//	root := testutil.WriteTree(t, map[string]string{
//		".cloudbees.md":  "# Build\n\n    make\n",
//		"src/main.c":     "int main() {}\n",
//	})
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return root
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
