// Package progress implements the test-run progress report: completed
// result directories measured against a recorded checkpoint.
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/qcut/qcheck/internal/scan"
)

const (
	timeLayout  = "2006-01-02 15:04:05"
	clockLayout = "15:04:05"

	maxRecent  = 5
	maxNameLen = 70
	ruleWidth  = 60
)

var (
	thinRule  = strings.Repeat("-", ruleWidth)
	thickRule = strings.Repeat("=", ruleWidth)
)

// Checkpoint is a manually recorded progress baseline.
type Checkpoint struct {
	Time      time.Time
	Completed int
	Total     int
	// Percent is the completion percentage as it was recorded when the
	// checkpoint was taken. It is printed verbatim, never derived from
	// Completed/Total.
	Percent int
}

// Report is a single observation of the results directory.
type Report struct {
	Now        time.Time
	Checkpoint Checkpoint
	Completed  int
	Recent     []scan.Entry // most recent first, at most maxRecent
}

// Build scans resultsDir and assembles a Report against cp. A missing
// directory surfaces as apperr.ErrNotFound (wrapped by scan).
func Build(resultsDir string, cp Checkpoint, now time.Time) (*Report, error) {
	entries, err := scan.Subdirs(resultsDir)
	if err != nil {
		return nil, err
	}
	return &Report{
		Now:        now,
		Checkpoint: cp,
		Completed:  len(entries),
		Recent:     scan.Recent(entries, maxRecent),
	}, nil
}

// Render writes the full report to w.
func Render(w io.Writer, r *Report) {
	renderHeader(w, r.Now, r.Checkpoint)

	cp := r.Checkpoint
	fmt.Fprintf(w, "Tests Completed: %d/%d (%d%%)\n", r.Completed, cp.Total, percent(r.Completed, cp.Total))
	fmt.Fprintf(w, "Checkpoint Count: %d/%d (%d%%)\n", cp.Completed, cp.Total, cp.Percent)
	fmt.Fprintln(w, thinRule)

	switch {
	case r.Completed > cp.Completed:
		color.New(color.FgGreen).Fprintf(w, "✅ Progress: +%d tests since checkpoint\n", r.Completed-cp.Completed)
		fmt.Fprintf(w, "⏳ Remaining: %d tests\n", cp.Total-r.Completed)
	case r.Completed == cp.Completed:
		color.New(color.FgYellow).Fprintln(w, "⚠️  No progress since checkpoint (tests may have stalled or be slow)")
	default:
		color.New(color.FgRed).Fprintln(w, "❌ Test count decreased (unexpected)")
	}

	fmt.Fprintln(w, "\n"+thickRule)
	fmt.Fprintf(w, "Most Recent Test Results (last %d):\n", maxRecent)
	fmt.Fprintln(w, thickRule)
	for i, e := range r.Recent {
		fmt.Fprintf(w, "%d. [%s] %s\n", i+1, e.ModTime.Format(clockLayout), truncateName(e.Name, maxNameLen))
	}

	fmt.Fprintln(w, "\n"+thickRule)
}

// RenderMissing writes the reduced report for a missing results
// directory: the header, the not-found notice, and the closing banner.
// The count, comparison, and recent-results sections are skipped.
func RenderMissing(w io.Writer, resultsDir string, now time.Time, cp Checkpoint) {
	renderHeader(w, now, cp)
	color.New(color.FgRed).Fprintf(w, "❌ Results directory not found: %s\n", resultsDir)
	fmt.Fprintln(w, "\n"+thickRule)
}

func renderHeader(w io.Writer, now time.Time, cp Checkpoint) {
	fmt.Fprintf(w, "Current Time: %s\n", now.Format(timeLayout))
	fmt.Fprintf(w, "Checkpoint Time: %s (%s)\n",
		cp.Time.Format(timeLayout), humanize.RelTime(cp.Time, now, "ago", "from now"))
	fmt.Fprintln(w, thinRule)
}

// percent floors to whole percents, matching how completion has
// historically been reported.
func percent(count, total int) int {
	if total <= 0 {
		return 0
	}
	return count * 100 / total
}

func truncateName(name string, limit int) string {
	r := []rune(name)
	if len(r) <= limit {
		return name
	}
	return string(r[:limit])
}
