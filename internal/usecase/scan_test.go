package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func mkdirAll(t *testing.T, elems ...string) string {
	t.Helper()
	path := filepath.Join(elems...)
	if err := os.MkdirAll(path, 0o750); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanLineage_Absent(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	deps := newTestDependencies()

	_, found, err := ScanLineage(ctx, deps, root, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected lineage to be absent in empty root")
	}
}

func TestScanLineage_NumericOrder(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	deps := newTestDependencies()
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	base := mkdirAll(t, root, "2025-07-01")
	// Created out of order on purpose; lexicographic order would put
	// incr10 before incr2.
	mkdirAll(t, base, "incr2")
	mkdirAll(t, base, "incr10")
	mkdirAll(t, base, "incr1")

	lineage, found, err := ScanLineage(ctx, deps, root, date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected lineage to be found")
	}
	if lineage.BaseDir != base {
		t.Fatalf("expected base dir %s, got %s", base, lineage.BaseDir)
	}
	want := []int{1, 2, 10}
	if len(lineage.Incrementals) != len(want) {
		t.Fatalf("expected %d incrementals, got %d", len(want), len(lineage.Incrementals))
	}
	for i, seq := range want {
		if lineage.Incrementals[i].Seq != seq {
			t.Errorf("position %d: expected seq %d, got %d", i, seq, lineage.Incrementals[i].Seq)
		}
	}
}

func TestScanLineage_IgnoresForeignEntries(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	deps := newTestDependencies()
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	base := mkdirAll(t, root, "2025-07-01")
	mkdirAll(t, base, "incr1")
	mkdirAll(t, base, "incr01")
	mkdirAll(t, base, "logs")
	mkdirAll(t, base, "incrx")
	if err := os.WriteFile(filepath.Join(base, "incr2"), []byte("a file, not a dir"), 0o600); err != nil {
		t.Fatal(err)
	}

	lineage, _, err := ScanLineage(ctx, deps, root, date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lineage.Incrementals) != 1 || lineage.Incrementals[0].Seq != 1 {
		t.Fatalf("expected only incr1, got %+v", lineage.Incrementals)
	}
}

func TestScanLineage_Idempotent(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	deps := newTestDependencies()
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	base := mkdirAll(t, root, "2025-07-01")
	mkdirAll(t, base, "incr1")
	mkdirAll(t, base, "incr2")

	first, _, err := ScanLineage(ctx, deps, root, date)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := ScanLineage(ctx, deps, root, date)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Incrementals) != len(second.Incrementals) {
		t.Fatal("repeated scans disagree")
	}
	for i := range first.Incrementals {
		if first.Incrementals[i] != second.Incrementals[i] {
			t.Fatalf("repeated scans disagree at %d: %+v != %+v", i, first.Incrementals[i], second.Incrementals[i])
		}
	}
}

func TestScanAllBases(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	deps := newTestDependencies()

	mkdirAll(t, root, "2025-07-03")
	mkdirAll(t, root, "2025-07-01")
	mkdirAll(t, root, "2025-07-02")
	mkdirAll(t, root, "lost+found")
	mkdirAll(t, root, "not-a-date")

	dates, err := ScanAllBases(ctx, deps, root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 3 {
		t.Fatalf("expected 3 bases, got %d", len(dates))
	}
	for i, day := range []int{1, 2, 3} {
		if dates[i].Day() != day {
			t.Errorf("position %d: expected day %d, got %d", i, day, dates[i].Day())
		}
	}
}

func TestScanAllBases_MissingRoot(t *testing.T) {
	ctx := context.Background()
	deps := newTestDependencies()

	_, err := ScanAllBases(ctx, deps, filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if !errors.Is(err, ErrCritical) {
		t.Fatalf("expected critical error, got %v", err)
	}
}

func TestNextIncrementalLocation_Empty(t *testing.T) {
	ctx := context.Background()
	deps := newTestDependencies()
	base := mkdirAll(t, t.TempDir(), "2025-07-01")

	path, err := NextIncrementalLocation(ctx, deps, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(base, "incr1") {
		t.Fatalf("expected incr1 path, got %s", path)
	}
}

func TestNextIncrementalLocation_Highest(t *testing.T) {
	ctx := context.Background()
	deps := newTestDependencies()
	base := mkdirAll(t, t.TempDir(), "2025-07-01")
	mkdirAll(t, base, "incr1")
	mkdirAll(t, base, "incr2")

	path, err := NextIncrementalLocation(ctx, deps, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(base, "incr3") {
		t.Fatalf("expected incr3 path, got %s", path)
	}
}

func TestNextIncrementalLocation_MissingDir(t *testing.T) {
	ctx := context.Background()
	deps := newTestDependencies()

	_, err := NextIncrementalLocation(ctx, deps, filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for unreadable directory")
	}
	if !errors.Is(err, ErrCritical) {
		t.Fatalf("expected critical error, got %v", err)
	}
}
