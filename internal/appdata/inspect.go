// Package appdata inspects the QCut per-user application-data
// directory and classifies how much project state it still holds.
package appdata

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/qcut/qcheck/internal/apperr"
	"github.com/qcut/qcheck/internal/scan"
)

const (
	// ProjectsDirName holds one JSON document per saved project.
	ProjectsDirName = "projects"
	ProjectExt      = ".json"
	// StoreDirName is the browser-engine database backing project media.
	StoreDirName = "IndexedDB"
)

// ExtraStorageDirs are the auxiliary browser-engine storage areas worth
// reporting, in report order. Absent ones are skipped silently.
var ExtraStorageDirs = []string{"Local Storage", "Session Storage", "blob_storage", "File System"}

// StorageArea is one storage directory under the app-data root.
type StorageArea struct {
	Name   string
	Exists bool
	Stats  scan.TreeStats
}

// State classifies the app-data root after a test run.
type State int

const (
	// Clean means no project files and no store database.
	Clean State = iota
	// PartiallyClean means project files are gone but the store
	// database is still on disk.
	PartiallyClean
	// HasData means project files survived.
	HasData
)

// Inspection is a read-only snapshot of the QCut app-data root.
type Inspection struct {
	Root         string
	RootExists   bool
	ProjectFiles int         // *.json directly under projects/
	Projects     StorageArea // projects/ tree
	Store        StorageArea // IndexedDB tree
	Extra        []StorageArea
}

// State returns the cleanliness classification. Project files trump
// everything else; the store database alone downgrades to partially
// clean.
func (in *Inspection) State() State {
	switch {
	case in.ProjectFiles > 0:
		return HasData
	case in.Store.Exists:
		return PartiallyClean
	default:
		return Clean
	}
}

// Inspect gathers the snapshot. The independent storage trees are
// scanned concurrently; each result lands in its own slot so report
// order never depends on scheduling. A missing root returns an
// Inspection with RootExists false and no error.
func Inspect(root string, logger *slog.Logger) (*Inspection, error) {
	in := &Inspection{Root: root}

	fi, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return in, nil
	}
	if err != nil {
		return nil, fmt.Errorf("appdata: %s: %w", root, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("appdata: %s: not a directory", root)
	}
	in.RootExists = true
	in.Extra = make([]StorageArea, len(ExtraStorageDirs))

	scanArea := func(name string, dst *StorageArea) func() error {
		return func() error {
			st, err := scan.Tree(filepath.Join(root, name))
			if errors.Is(err, apperr.ErrNotFound) {
				*dst = StorageArea{Name: name}
				return nil
			}
			if err != nil {
				return err
			}
			if st.Skipped > 0 {
				logger.Debug("entries vanished during scan",
					slog.String("dir", name),
					slog.Int("skipped", st.Skipped))
			}
			*dst = StorageArea{Name: name, Exists: true, Stats: st}
			return nil
		}
	}

	var g errgroup.Group
	g.Go(func() error {
		if err := scanArea(ProjectsDirName, &in.Projects)(); err != nil {
			return err
		}
		if !in.Projects.Exists {
			return nil
		}
		n, err := scan.CountFilesExt(filepath.Join(root, ProjectsDirName), ProjectExt)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		in.ProjectFiles = n
		return nil
	})
	g.Go(scanArea(StoreDirName, &in.Store))
	for i, name := range ExtraStorageDirs {
		g.Go(scanArea(name, &in.Extra[i]))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}
