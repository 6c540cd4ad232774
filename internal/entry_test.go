package internal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/qcut/qcheck/internal/apperr"
	"github.com/qcut/qcheck/internal/testutil"
)

func mkResults(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.MkDirs(t, dir, names...)
	return dir
}

func TestRunProgress_WritesReport(t *testing.T) {
	dir := mkResults(t, "t1", "t2", "t3")

	var buf bytes.Buffer
	err := RunProgress(context.Background(),
		WithConfig(NewDefaultConfig()),
		WithOutput(&buf),
		WithResultsDir(dir),
		WithNoColor())
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "Tests Completed: 3/66 (4%)") {
		t.Errorf("missing completion line in:\n%s", out)
	}
	if !strings.Contains(out, "Checkpoint Count: 40/66 (61%)") {
		t.Errorf("missing checkpoint line in:\n%s", out)
	}
	if !strings.Contains(out, "❌ Test count decreased (unexpected)") {
		t.Errorf("missing decrease notice in:\n%s", out)
	}
}

func TestRunProgress_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "absent")

	var buf bytes.Buffer
	err := RunProgress(context.Background(),
		WithConfig(NewDefaultConfig()),
		WithOutput(&buf),
		WithResultsDir(dir),
		WithNoColor())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(buf.String(), "❌ Results directory not found: "+dir) {
		t.Errorf("missing not-found notice in:\n%s", buf.String())
	}
}

func TestRunProgress_RequiresConfig(t *testing.T) {
	err := RunProgress(context.Background())
	if err == nil || !strings.Contains(err.Error(), "config is required") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestRunProgress_WatchStopsOnCancel(t *testing.T) {
	dir := mkResults(t, "t1")

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- RunProgress(ctx,
			WithConfig(NewDefaultConfig()),
			WithOutput(io.Discard),
			WithResultsDir(dir),
			WithNoColor(),
			WithWatch(50*time.Millisecond))
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("cancelled watch returned %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestRunProjects_CleanRoot(t *testing.T) {
	var buf bytes.Buffer
	err := RunProjects(context.Background(),
		WithConfig(NewDefaultConfig()),
		WithOutput(&buf),
		WithAppDataRoot(t.TempDir()),
		WithNoColor())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "✅ DATABASE IS CLEAN - No projects found") {
		t.Errorf("missing clean verdict in:\n%s", buf.String())
	}
}

func TestRunProjects_MissingRootIsNotAnError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "qcut")

	var buf bytes.Buffer
	err := RunProjects(context.Background(),
		WithConfig(NewDefaultConfig()),
		WithOutput(&buf),
		WithAppDataRoot(root),
		WithNoColor())
	if err != nil {
		t.Fatalf("missing root should not error: %v", err)
	}
	if !strings.Contains(buf.String(), "❌ QCut directory does not exist - no projects found") {
		t.Errorf("missing absence notice in:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "SUMMARY") {
		t.Error("missing root should skip the summary")
	}
}

func TestRunProjects_Detail(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFileSized(t, filepath.Join(root, "projects", "a.json"), 2)

	var buf bytes.Buffer
	err := RunProjects(context.Background(),
		WithConfig(NewDefaultConfig()),
		WithOutput(&buf),
		WithAppDataRoot(root),
		WithNoColor(),
		WithDetail())
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "❌ DATABASE HAS DATA - 1 project files found") {
		t.Errorf("missing verdict in:\n%s", out)
	}
	if !strings.Contains(out, "Storage breakdown:") {
		t.Errorf("missing breakdown table in:\n%s", out)
	}
}

func TestRunProjects_RootOverrideWins(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.AppData.Root = filepath.Join(t.TempDir(), "ignored")
	root := t.TempDir()

	var buf bytes.Buffer
	err := RunProjects(context.Background(),
		WithConfig(cfg),
		WithOutput(&buf),
		WithAppDataRoot(root),
		WithNoColor())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Checking directory: "+root) {
		t.Errorf("report not using overridden root:\n%s", buf.String())
	}
}
