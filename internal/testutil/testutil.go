// Package testutil provides shared test helpers for building directory trees.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteFileSized creates path holding size zero bytes, making parent
// directories as needed.
func WriteFileSized(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

// MkDirs creates the named subdirectories under root.
func MkDirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.MkdirAll(filepath.Join(root, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

// Touch sets both timestamps of path to ts.
func Touch(t *testing.T, path string, ts time.Time) {
	t.Helper()
	if err := os.Chtimes(path, ts, ts); err != nil {
		t.Fatal(err)
	}
}
