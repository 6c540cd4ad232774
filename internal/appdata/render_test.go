package appdata

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/qcut/qcheck/internal/scan"
)

func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestRender_CleanGolden(t *testing.T) {
	disableColor(t)

	in := &Inspection{
		Root:       "/data/qcut",
		RootExists: true,
		Projects:   StorageArea{Name: ProjectsDirName},
		Store:      StorageArea{Name: StoreDirName},
		Extra: []StorageArea{
			{Name: "Local Storage"},
			{Name: "Session Storage"},
			{Name: "blob_storage"},
			{Name: "File System"},
		},
	}

	var buf bytes.Buffer
	Render(&buf, in)

	rule := strings.Repeat("=", 70)
	want := strings.Join([]string{
		rule,
		"QCut Project Counter - Understanding Database State",
		rule,
		"",
		"Checking directory: /data/qcut",
		"",
		"📁 Projects folder: does not exist",
		"💾 IndexedDB: does not exist (clean)",
		"",
		rule,
		"SUMMARY",
		rule,
		"✅ DATABASE IS CLEAN - No projects found",
		rule,
		"",
		"💡 TIP: Run this check BEFORE and AFTER tests to verify cleanup",
		"   Before: qcheck projects > before.txt",
		"   After:  qcheck projects > after.txt",
		"   Compare: diff before.txt after.txt",
		"",
	}, "\n") + "\n"

	if got := buf.String(); got != want {
		t.Errorf("clean report mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_MissingRoot(t *testing.T) {
	disableColor(t)

	in := &Inspection{Root: "/data/qcut"}

	var buf bytes.Buffer
	Render(&buf, in)

	rule := strings.Repeat("=", 70)
	want := strings.Join([]string{
		rule,
		"QCut Project Counter - Understanding Database State",
		rule,
		"",
		"Checking directory: /data/qcut",
		"",
		"❌ QCut directory does not exist - no projects found",
	}, "\n") + "\n"

	if got := buf.String(); got != want {
		t.Errorf("missing-root report mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(buf.String(), "SUMMARY") {
		t.Error("missing root should not print a summary")
	}
}

func TestRender_HasData(t *testing.T) {
	disableColor(t)

	in := &Inspection{
		Root:         "/data/qcut",
		RootExists:   true,
		ProjectFiles: 3,
		Projects:     StorageArea{Name: ProjectsDirName, Exists: true},
		Store: StorageArea{
			Name:   StoreDirName,
			Exists: true,
			Stats:  scan.TreeStats{Dirs: 2, Files: 5, Bytes: 1572864},
		},
		Extra: []StorageArea{
			{Name: "Local Storage", Exists: true, Stats: scan.TreeStats{Files: 4}},
			{Name: "Session Storage"},
			{Name: "blob_storage", Exists: true, Stats: scan.TreeStats{Files: 1}},
			{Name: "File System"},
		},
	}

	var buf bytes.Buffer
	Render(&buf, in)
	out := buf.String()

	for _, line := range []string{
		"📁 Projects folder: 3 JSON files",
		"💾 IndexedDB exists:",
		"   - 2 directories",
		"   - 5 files",
		"   - Total size: 1.50 MB",
		"📦 Local Storage: 4 files",
		"📦 blob_storage: 1 files",
		"❌ DATABASE HAS DATA - 3 project files found",
		"   Cleanup may not be working correctly",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("report missing %q in:\n%s", line, out)
		}
	}
	for _, absent := range []string{"Session Storage", "File System"} {
		if strings.Contains(out, absent) {
			t.Errorf("absent area %q should not be reported", absent)
		}
	}
}

func TestRender_PartiallyClean(t *testing.T) {
	disableColor(t)

	in := &Inspection{
		Root:       "/data/qcut",
		RootExists: true,
		Projects:   StorageArea{Name: ProjectsDirName, Exists: true},
		Store: StorageArea{
			Name:   StoreDirName,
			Exists: true,
			Stats:  scan.TreeStats{Dirs: 1, Files: 2, Bytes: 4096},
		},
	}

	var buf bytes.Buffer
	Render(&buf, in)
	out := buf.String()

	for _, line := range []string{
		"📁 Projects folder: 0 JSON files",
		"⚠️  PARTIALLY CLEAN - No project files, but IndexedDB exists",
		"   This means cleanup deleted files but not the database",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("report missing %q in:\n%s", line, out)
		}
	}
}

func TestRenderDetail(t *testing.T) {
	disableColor(t)

	in := &Inspection{
		Root:         "/data/qcut",
		RootExists:   true,
		ProjectFiles: 1,
		Projects: StorageArea{
			Name:   ProjectsDirName,
			Exists: true,
			Stats:  scan.TreeStats{Files: 1, Bytes: 512},
		},
		Store: StorageArea{
			Name:   StoreDirName,
			Exists: true,
			Stats:  scan.TreeStats{Dirs: 2, Files: 5, Bytes: 1572864},
		},
		Extra: []StorageArea{
			{Name: "Local Storage"},
			{Name: "Session Storage"},
			{Name: "blob_storage"},
			{Name: "File System"},
		},
	}

	var buf bytes.Buffer
	RenderDetail(&buf, in)
	out := buf.String()

	if !strings.Contains(out, "Storage breakdown:") {
		t.Fatalf("detail table missing in:\n%s", out)
	}
	for _, want := range []string{"AREA", "IndexedDB", "1.5 MiB", "512 B"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail table missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Session Storage") {
		t.Error("absent area should not get a table row")
	}
}

func TestRenderDetail_MissingRoot(t *testing.T) {
	disableColor(t)

	var buf bytes.Buffer
	RenderDetail(&buf, &Inspection{Root: "/data/qcut"})

	if strings.Contains(buf.String(), "Storage breakdown:") {
		t.Error("missing root should not print a table")
	}
}
