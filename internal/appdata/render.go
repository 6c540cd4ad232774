package appdata

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

var banner = strings.Repeat("=", 70)

// Render writes the project-state report to w. A missing root stops
// after the not-found line; the summary and tip are skipped.
func Render(w io.Writer, in *Inspection) {
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "QCut Project Counter - Understanding Database State")
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "\nChecking directory: %s\n\n", in.Root)

	if !in.RootExists {
		color.New(color.FgRed).Fprintln(w, "❌ QCut directory does not exist - no projects found")
		return
	}

	if in.Projects.Exists {
		fmt.Fprintf(w, "📁 Projects folder: %d JSON files\n", in.ProjectFiles)
	} else {
		fmt.Fprintln(w, "📁 Projects folder: does not exist")
	}

	if in.Store.Exists {
		fmt.Fprintln(w, "💾 IndexedDB exists:")
		fmt.Fprintf(w, "   - %d directories\n", in.Store.Stats.Dirs)
		fmt.Fprintf(w, "   - %d files\n", in.Store.Stats.Files)
		fmt.Fprintf(w, "   - Total size: %.2f MB\n", float64(in.Store.Stats.Bytes)/(1024*1024))
	} else {
		fmt.Fprintln(w, "💾 IndexedDB: does not exist (clean)")
	}

	for _, area := range in.Extra {
		if !area.Exists {
			continue
		}
		fmt.Fprintf(w, "📦 %s: %d files\n", area.Name, area.Stats.Files)
	}

	fmt.Fprintln(w, "\n"+banner)
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintln(w, banner)

	switch in.State() {
	case Clean:
		color.New(color.FgGreen).Fprintln(w, "✅ DATABASE IS CLEAN - No projects found")
	case PartiallyClean:
		color.New(color.FgYellow).Fprintln(w, "⚠️  PARTIALLY CLEAN - No project files, but IndexedDB exists")
		fmt.Fprintln(w, "   This means cleanup deleted files but not the database")
	default:
		color.New(color.FgRed).Fprintf(w, "❌ DATABASE HAS DATA - %d project files found\n", in.ProjectFiles)
		fmt.Fprintln(w, "   Cleanup may not be working correctly")
	}

	fmt.Fprintln(w, banner)

	fmt.Fprintln(w, "\n💡 TIP: Run this check BEFORE and AFTER tests to verify cleanup")
	fmt.Fprintln(w, "   Before: qcheck projects > before.txt")
	fmt.Fprintln(w, "   After:  qcheck projects > after.txt")
	fmt.Fprintln(w, "   Compare: diff before.txt after.txt")
	fmt.Fprintln(w)
}

// RenderDetail writes the report followed by a per-area breakdown
// table. Only areas present on disk get a row.
func RenderDetail(w io.Writer, in *Inspection) {
	Render(w, in)
	if !in.RootExists {
		return
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Options.SeparateHeader = false
	t.AppendHeader(table.Row{"AREA", "DIRS", "FILES", "SIZE"})
	for _, area := range allAreas(in) {
		if !area.Exists {
			continue
		}
		t.AppendRow(table.Row{
			area.Name,
			area.Stats.Dirs,
			area.Stats.Files,
			humanize.IBytes(uint64(area.Stats.Bytes)),
		})
	}

	fmt.Fprintln(w, "Storage breakdown:")
	fmt.Fprintln(w, t.Render())
}

func allAreas(in *Inspection) []StorageArea {
	out := make([]StorageArea, 0, len(in.Extra)+2)
	out = append(out, in.Projects, in.Store)
	return append(out, in.Extra...)
}
