package usecase

import (
	"context"
	"fmt"
	"log/slog"
)

// Restore prepares the lineage for the requested date and copies it back
// into the database data directory. The data directory must be empty: the
// external tool refuses to overwrite live data, and so do we, with a clearer
// message. The database server must be stopped before restoring.
func Restore(ctx context.Context, cfg *Config, deps *Dependencies, logger *slog.Logger, dateArg string) error {
	if logger == nil {
		panic("logger is required")
	}
	if err := validateBackupDependencies(deps); err != nil {
		return err
	}

	lineage, err := lineageForDateArg(ctx, cfg, deps, dateArg)
	if err != nil {
		return err
	}

	if err := ensureEmptyDataDir(ctx, deps, cfg.DataDir); err != nil {
		return err
	}

	if err := RunPrepare(ctx, deps, lineage, logger); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Copying prepared backup into data directory",
		"backup", lineage.BaseDir,
		"data_dir", cfg.DataDir,
	)
	res, err := deps.Tool.CopyBack(ctx, lineage.BaseDir, cfg.DataDir)
	logToolOutput(ctx, logger, res)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("restore of %s interrupted: %w", lineage.BaseDir, ErrInterrupted)
		}
		notify(ctx, cfg, deps, logger,
			"Restore FAILED",
			fmt.Sprintf("Restore of %s into %s failed: %v\n\n%s", lineage.BaseDir, cfg.DataDir, err, res.Output),
		)
		return fmt.Errorf("restore of %s failed: %v: %w", lineage.BaseDir, err, ErrCritical)
	}

	logger.InfoContext(ctx, "Restore completed", "data_dir", cfg.DataDir)
	notify(ctx, cfg, deps, logger,
		"Restore completed",
		fmt.Sprintf("Backup %s restored into %s. Fix file ownership before starting the server.", lineage.BaseDir, cfg.DataDir),
	)
	return nil
}

func ensureEmptyDataDir(ctx context.Context, deps *Dependencies, dataDir string) error {
	fs := deps.FileSystem
	entries, err := fs.ReadDir(ctx, dataDir)
	if err != nil {
		if fs.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read data directory %s: %v: %w", dataDir, err, ErrCritical)
	}
	if len(entries) > 0 {
		return fmt.Errorf(
			"data directory %s is not empty; stop the server and move its contents aside before restoring: %w",
			dataDir, ErrConflict,
		)
	}
	return nil
}
