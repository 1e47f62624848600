package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// The backup root is the source of truth: there is no index, and every scan
// derives state fresh from directory listings. Entries that are neither a
// valid date name nor a valid incremental name are skipped silently, since
// the root may be shared with unrelated directories. I/O failures are fatal
// and never read as "no data".

// ScanLineage discovers the lineage for one calendar date under root. found
// is false when no base snapshot directory exists for the date. Incrementals
// are returned sorted numerically ascending by sequence number.
func ScanLineage(ctx context.Context, deps *Dependencies, root string, date time.Time) (Lineage, bool, error) {
	fs := deps.FileSystem
	baseDir := fs.Join(root, FormatDateName(date))

	info, err := fs.Stat(ctx, baseDir)
	if err != nil {
		if fs.IsNotExist(err) {
			return Lineage{}, false, nil
		}
		return Lineage{}, false, fmt.Errorf("stat %s: %v: %w", baseDir, err, ErrCritical)
	}
	if !info.IsDir() {
		return Lineage{}, false, nil
	}

	entries, err := fs.ReadDir(ctx, baseDir)
	if err != nil {
		return Lineage{}, false, fmt.Errorf("read backup directory %s: %v: %w", baseDir, err, ErrCritical)
	}

	lineage := Lineage{
		Date:    civilDate(date),
		BaseDir: baseDir,
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		seq, ok := ParseIncrName(entry.Name())
		if !ok {
			continue
		}
		lineage.Incrementals = append(lineage.Incrementals, Incremental{
			Seq:  seq,
			Path: fs.Join(baseDir, entry.Name()),
		})
	}
	sort.Slice(lineage.Incrementals, func(i, j int) bool {
		return lineage.Incrementals[i].Seq < lineage.Incrementals[j].Seq
	})

	return lineage, true, nil
}

// ScanAllBases lists the dates of every base snapshot under root, sorted
// ascending. Non-date entries are ignored.
func ScanAllBases(ctx context.Context, deps *Dependencies, root string) ([]time.Time, error) {
	entries, err := deps.FileSystem.ReadDir(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("read backup root %s: %v: %w", root, err, ErrCritical)
	}

	var dates []time.Time
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		d, ok := ParseDateName(entry.Name())
		if !ok {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// NextIncrementalLocation computes the path the next incremental backup of a
// lineage must write to: the highest existing sequence number plus one, or
// incr1 when the base has no incrementals yet. An unreadable base directory
// is a fatal I/O error, distinct from the normal zero-incrementals case.
func NextIncrementalLocation(ctx context.Context, deps *Dependencies, baseDir string) (string, error) {
	fs := deps.FileSystem
	entries, err := fs.ReadDir(ctx, baseDir)
	if err != nil {
		return "", fmt.Errorf("read backup directory %s: %v: %w", baseDir, err, ErrCritical)
	}

	highest := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if seq, ok := ParseIncrName(entry.Name()); ok && seq > highest {
			highest = seq
		}
	}
	return fs.Join(baseDir, FormatIncrName(highest+1)), nil
}
