// Package scan provides the read-only directory queries shared by the
// qcheck inspectors. All functions observe the filesystem without
// modifying it.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/qcut/qcheck/internal/apperr"
)

// Entry is one immediate subdirectory of a scanned root.
type Entry struct {
	Name    string
	ModTime time.Time
}

// TreeStats aggregates a recursive walk of a directory.
type TreeStats struct {
	Dirs    int
	Files   int
	Bytes   int64
	Skipped int // entries that vanished while the walk was in flight
}

// Subdirs returns the immediate subdirectories of dir with their
// modification times. Non-directory entries are ignored. A missing dir
// is reported as apperr.ErrNotFound; entries removed between listing
// and stat are dropped silently (the directory under inspection may be
// mutated by the application being tested).
func Subdirs(dir string) ([]Entry, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("scan: %s: %w", dir, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("scan: read dir %s: %w", dir, err)
	}

	out := make([]Entry, 0, len(ents))
	for _, e := range ents {
		if !e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("scan: stat %s: %w", filepath.Join(dir, e.Name()), err)
		}
		out = append(out, Entry{Name: e.Name(), ModTime: info.ModTime()})
	}
	return out, nil
}

// Recent returns up to n entries sorted most-recently-modified first.
// The input slice is not modified.
func Recent(entries []Entry, n int) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ModTime.After(sorted[j].ModTime)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Tree walks dir recursively and returns directory count, regular-file
// count, and the byte sum of regular files. The root itself is not
// counted. A missing dir is reported as apperr.ErrNotFound. Entries
// that disappear mid-walk are tallied in Skipped; any other filesystem
// error aborts the walk.
func Tree(dir string) (TreeStats, error) {
	var stats TreeStats

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats, fmt.Errorf("scan: %s: %w", dir, apperr.ErrNotFound)
		}
		return stats, fmt.Errorf("scan: stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("scan: not a directory: %s", dir)
	}

	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				stats.Skipped++
				return nil
			}
			return walkErr
		}
		if p == dir {
			return nil
		}
		if d.IsDir() {
			stats.Dirs++
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				stats.Skipped++
				return nil
			}
			return err
		}
		if fi.Mode().IsRegular() {
			stats.Files++
			stats.Bytes += fi.Size()
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("scan: walk %s: %w", dir, err)
	}
	return stats, nil
}

// CountFilesExt counts the regular files directly under dir whose name
// carries the given extension (e.g. ".json"). The scan is not
// recursive. A missing dir is reported as apperr.ErrNotFound.
func CountFilesExt(dir, ext string) (int, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("scan: %s: %w", dir, apperr.ErrNotFound)
		}
		return 0, fmt.Errorf("scan: read dir %s: %w", dir, err)
	}

	count := 0
	for _, e := range ents {
		if !e.Type().IsRegular() {
			continue
		}
		if filepath.Ext(e.Name()) == ext {
			count++
		}
	}
	return count, nil
}
