package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// FullBackup performs today's full (base) backup. It refuses to run when a
// base snapshot already exists for today: overwriting an existing base would
// silently destroy the day's lineage.
func FullBackup(ctx context.Context, cfg *Config, deps *Dependencies, logger *slog.Logger) error {
	if logger == nil {
		panic("logger is required")
	}
	if err := validateBackupDependencies(deps); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Starting full backup", "backup_root", cfg.BackupRoot)

	state, err := ResolveBackupState(ctx, deps, cfg.BackupRoot, time.Now())
	if err != nil {
		return err
	}
	if state.Kind != NeedsFull {
		return fmt.Errorf(
			"a base backup already exists for today at %s; run an incremental backup instead: %w",
			state.BaseDir, ErrConflict,
		)
	}

	if err := preflightDiskSpace(ctx, cfg, deps, logger); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Backup target", "target", state.Target)
	res, err := deps.Tool.FullBackup(ctx, state.Target)
	logToolOutput(ctx, logger, res)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("full backup to %s interrupted: %w", state.Target, ErrInterrupted)
		}
		notify(ctx, cfg, deps, logger,
			"Full backup FAILED",
			fmt.Sprintf("Full backup to %s failed: %v\n\n%s", state.Target, err, res.Output),
		)
		return fmt.Errorf("full backup to %s failed: %v: %w", state.Target, err, ErrCritical)
	}

	logger.InfoContext(ctx, "Full backup completed", "target", state.Target)
	notify(ctx, cfg, deps, logger,
		"Full backup completed",
		fmt.Sprintf("Full backup written to %s.", state.Target),
	)
	return nil
}

// IncrementalBackup performs the next incremental backup of today's lineage,
// chained off the newest existing snapshot. It refuses to run when no base
// exists for today: there is nothing to chain from.
func IncrementalBackup(ctx context.Context, cfg *Config, deps *Dependencies, logger *slog.Logger) error {
	if logger == nil {
		panic("logger is required")
	}
	if err := validateBackupDependencies(deps); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Starting incremental backup", "backup_root", cfg.BackupRoot)

	state, err := ResolveBackupState(ctx, deps, cfg.BackupRoot, time.Now())
	if err != nil {
		return err
	}
	if state.Kind != NeedsIncremental {
		return fmt.Errorf(
			"no base backup exists for today (expected at %s); run a full backup first: %w",
			state.Target, ErrConflict,
		)
	}

	if err := preflightDiskSpace(ctx, cfg, deps, logger); err != nil {
		return err
	}

	if state.FirstIncremental {
		logger.InfoContext(ctx, "First incremental of today's lineage", "base", state.BaseDir)
	}
	logger.InfoContext(ctx, "Backup target", "target", state.Target, "basedir", state.ChainFrom)

	res, err := deps.Tool.IncrementalBackup(ctx, state.Target, state.ChainFrom)
	logToolOutput(ctx, logger, res)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("incremental backup to %s interrupted: %w", state.Target, ErrInterrupted)
		}
		notify(ctx, cfg, deps, logger,
			"Incremental backup FAILED",
			fmt.Sprintf("Incremental backup to %s failed: %v\n\n%s", state.Target, err, res.Output),
		)
		return fmt.Errorf("incremental backup to %s failed: %v: %w", state.Target, err, ErrCritical)
	}

	logger.InfoContext(ctx, "Incremental backup completed", "target", state.Target)
	notify(ctx, cfg, deps, logger,
		"Incremental backup completed",
		fmt.Sprintf("Incremental backup written to %s (basedir %s).", state.Target, state.ChainFrom),
	)
	return nil
}

func validateBackupDependencies(deps *Dependencies) error {
	if deps.FileSystem == nil {
		return fmt.Errorf("filesystem adapter not available: %w", ErrCritical)
	}
	if deps.Tool == nil {
		return fmt.Errorf("backup tool adapter not available: %w", ErrCritical)
	}
	return nil
}

// preflightDiskSpace refuses to start a backup when the backup root's
// filesystem has less than the configured minimum free space. A failing
// free-space probe is logged and ignored rather than blocking the backup.
func preflightDiskSpace(ctx context.Context, cfg *Config, deps *Dependencies, logger *slog.Logger) error {
	if cfg.MinFreeGB <= 0 || deps.Disk == nil {
		return nil
	}
	free, err := deps.Disk.FreeBytes(ctx, cfg.BackupRoot)
	if err != nil {
		logger.WarnContext(ctx, "Cannot determine free disk space", "path", cfg.BackupRoot, "error", err)
		return nil
	}
	minFree := uint64(cfg.MinFreeGB) * 1 << 30
	if free < minFree {
		return fmt.Errorf(
			"insufficient disk space on %s: %d bytes free, %d GB required: %w",
			cfg.BackupRoot, free, cfg.MinFreeGB, ErrCritical,
		)
	}
	logger.DebugContext(ctx, "Disk space preflight passed", "free_bytes", free, "min_free_gb", cfg.MinFreeGB)
	return nil
}
