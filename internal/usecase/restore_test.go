package usecase

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestRestore_PreparesThenCopiesBack(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	base := mkdirAll(t, root, "2025-07-01")
	mkdirAll(t, base, "incr1")
	dataDir := t.TempDir()

	tool := newFakeTool()
	cfg := &Config{BackupRoot: root, DataDir: dataDir}
	deps := &Dependencies{FileSystem: newTestFileSystem(), Tool: tool}

	if err := Restore(ctx, cfg, deps, slog.Default(), "2025-07-01"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// apply-log-only(base), final(incr1), copy-back.
	if len(tool.Calls) != 3 {
		t.Fatalf("expected 3 tool calls, got %+v", tool.Calls)
	}
	last := tool.Calls[2]
	if last.Op != "copyback" || last.TargetDir != base || last.DataDir != dataDir {
		t.Fatalf("unexpected copy-back call: %+v", last)
	}
}

func TestRestore_RefusesNonEmptyDataDir(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	mkdirAll(t, root, "2025-07-01")
	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "ibdata1"), []byte("live data"), 0o600); err != nil {
		t.Fatal(err)
	}

	tool := newFakeTool()
	cfg := &Config{BackupRoot: root, DataDir: dataDir}
	deps := &Dependencies{FileSystem: newTestFileSystem(), Tool: tool}

	err := Restore(ctx, cfg, deps, slog.Default(), "2025-07-01")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if len(tool.Calls) != 0 {
		t.Fatalf("tool must not run against a non-empty data directory, got %+v", tool.Calls)
	}
}

func TestRestore_HaltsWhenPrepareFails(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	base := mkdirAll(t, root, "2025-07-01")
	mkdirAll(t, base, "incr1")

	tool := newFakeTool()
	tool.FailAt = 1
	cfg := &Config{BackupRoot: root, DataDir: t.TempDir()}
	deps := &Dependencies{FileSystem: newTestFileSystem(), Tool: tool}

	err := Restore(ctx, cfg, deps, slog.Default(), "2025-07-01")
	if !errors.Is(err, ErrCritical) {
		t.Fatalf("expected critical error, got %v", err)
	}
	for _, call := range tool.Calls {
		if call.Op == "copyback" {
			t.Fatal("copy-back must never run after a failed prepare")
		}
	}
}

func TestRestore_RejectsUnknownDate(t *testing.T) {
	ctx := context.Background()
	cfg := &Config{BackupRoot: t.TempDir(), DataDir: t.TempDir()}
	deps := newTestDependencies()

	err := Restore(ctx, cfg, deps, slog.Default(), "2025-07-01")
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
