package usecase

import (
	"context"
	"fmt"
	"time"
)

// ResolveBackupState inspects the backup root and decides what the next
// backup operation for today must be and where it must write. A root that
// does not exist or is not a directory is a configuration error.
func ResolveBackupState(ctx context.Context, deps *Dependencies, root string, today time.Time) (BackupState, error) {
	fs := deps.FileSystem

	info, err := fs.Stat(ctx, root)
	if err != nil {
		if fs.IsNotExist(err) {
			return BackupState{}, fmt.Errorf("backup root does not exist: %s: %w", root, ErrCritical)
		}
		return BackupState{}, fmt.Errorf("stat backup root %s: %v: %w", root, err, ErrCritical)
	}
	if !info.IsDir() {
		return BackupState{}, fmt.Errorf("backup root is not a directory: %s: %w", root, ErrCritical)
	}

	lineage, found, err := ScanLineage(ctx, deps, root, today)
	if err != nil {
		return BackupState{}, err
	}
	if !found {
		return BackupState{
			Kind:   NeedsFull,
			Target: fs.Join(root, FormatDateName(today)),
		}, nil
	}

	target, err := NextIncrementalLocation(ctx, deps, lineage.BaseDir)
	if err != nil {
		return BackupState{}, err
	}
	return BackupState{
		Kind:             NeedsIncremental,
		Target:           target,
		BaseDir:          lineage.BaseDir,
		ChainFrom:        lineage.LastSnapshotDir(),
		FirstIncremental: len(lineage.Incrementals) == 0,
	}, nil
}
