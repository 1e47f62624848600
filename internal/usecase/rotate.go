package usecase

import (
	"context"
	"fmt"
	"log/slog"
)

// Rotate enumerates all base snapshots, classifies them under the retention
// policy and deletes the lineages not retained. The plan is computed in full
// before any deletion runs. Deletion stops at the first failure; snapshots
// not yet deleted remain classified and are retried on the next rotation.
// With dryRun set the plan is returned without deleting anything.
func Rotate(ctx context.Context, cfg *Config, deps *Dependencies, logger *slog.Logger, dryRun bool) (RotationPlan, error) {
	if logger == nil {
		panic("logger is required")
	}
	if deps.FileSystem == nil {
		return RotationPlan{}, fmt.Errorf("filesystem adapter not available: %w", ErrCritical)
	}

	dates, err := ScanAllBases(ctx, deps, cfg.BackupRoot)
	if err != nil {
		return RotationPlan{}, err
	}

	plan := PlanRotation(dates, cfg.Policy)
	logger.InfoContext(ctx, "Rotation plan computed",
		"bases", len(dates),
		"retain", len(plan.Retain),
		"delete", len(plan.Delete),
		"dry_run", dryRun,
	)
	for _, d := range plan.Retain {
		logger.DebugContext(ctx, "Retaining", "date", FormatDateName(d))
	}

	if dryRun {
		for _, d := range plan.Delete {
			logger.InfoContext(ctx, "Would delete", "date", FormatDateName(d))
		}
		return plan, nil
	}

	for _, d := range plan.Delete {
		path := deps.FileSystem.Join(cfg.BackupRoot, FormatDateName(d))
		logger.InfoContext(ctx, "Deleting lineage", "path", path)
		if err := deps.FileSystem.RemoveAll(ctx, path); err != nil {
			return plan, fmt.Errorf("delete %s: %v: %w", path, err, ErrCritical)
		}
	}

	logger.InfoContext(ctx, "Rotation complete", "deleted", len(plan.Delete))
	return plan, nil
}
