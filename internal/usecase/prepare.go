package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// PlanPrepare produces the ordered external-tool invocations that make a
// lineage restorable. A base-only lineage needs a single final step. With
// incrementals, the base and every incremental except the last are applied
// with log application held open; the last incremental is the final step.
// The order is mandatory: applying logs out of order corrupts the data set.
func PlanPrepare(lineage Lineage) []PrepareStep {
	if len(lineage.Incrementals) == 0 {
		return []PrepareStep{{TargetDir: lineage.BaseDir}}
	}

	steps := make([]PrepareStep, 0, len(lineage.Incrementals)+1)
	steps = append(steps, PrepareStep{
		TargetDir:    lineage.BaseDir,
		ApplyLogOnly: true,
	})
	for i, incr := range lineage.Incrementals {
		steps = append(steps, PrepareStep{
			TargetDir:      lineage.BaseDir,
			IncrementalDir: incr.Path,
			Seq:            incr.Seq,
			ApplyLogOnly:   i < len(lineage.Incrementals)-1,
		})
	}
	return steps
}

// chainGap returns the first missing sequence number in the incremental
// chain, or 0 when the chain is contiguous from 1.
func chainGap(lineage Lineage) int {
	for i, incr := range lineage.Incrementals {
		if incr.Seq != i+1 {
			return i + 1
		}
	}
	return 0
}

// RunPrepare executes a prepare plan in order, halting on the first failure.
// The incremental chain must be contiguous from 1: replaying logs across a
// missing increment silently corrupts the restored data set, so a gapped
// lineage is refused before any step runs. Later steps are never attempted
// after a failure, and a lineage must not be re-entered from the middle; a
// failed prepare means starting over from a fresh copy.
func RunPrepare(ctx context.Context, deps *Dependencies, lineage Lineage, logger *slog.Logger) error {
	if seq := chainGap(lineage); seq != 0 {
		return fmt.Errorf(
			"incremental chain of %s is broken: %s is missing; the lineage cannot be prepared safely: %w",
			lineage.BaseDir, FormatIncrName(seq), ErrCritical,
		)
	}

	steps := PlanPrepare(lineage)
	logger.InfoContext(ctx, "Preparing backup for restore",
		"base", lineage.BaseDir,
		"incrementals", len(lineage.Incrementals),
		"steps", len(steps),
	)

	for i, step := range steps {
		logger.InfoContext(ctx, "Prepare step",
			"step", fmt.Sprintf("%d/%d", i+1, len(steps)),
			"snapshot", step.Describe(),
			"apply_log_only", step.ApplyLogOnly,
		)
		res, err := deps.Tool.Prepare(ctx, step.TargetDir, step.IncrementalDir, step.ApplyLogOnly)
		logToolOutput(ctx, logger, res)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("prepare interrupted at step %d (%s): %w", i+1, step.Describe(), ErrInterrupted)
			}
			return fmt.Errorf("prepare failed at step %d (%s): %v: %w", i+1, step.Describe(), err, ErrCritical)
		}
	}

	logger.InfoContext(ctx, "Prepare complete, lineage is restorable", "base", lineage.BaseDir)
	return nil
}

// PrepareForRestore validates the requested date, scans its lineage and runs
// the prepare sequence.
func PrepareForRestore(ctx context.Context, cfg *Config, deps *Dependencies, logger *slog.Logger, dateArg string) error {
	lineage, err := lineageForDateArg(ctx, cfg, deps, dateArg)
	if err != nil {
		return err
	}
	return RunPrepare(ctx, deps, lineage, logger)
}

// lineageForDateArg resolves a user-supplied date argument to an existing
// lineage, rejecting malformed dates and dates with no backup.
func lineageForDateArg(ctx context.Context, cfg *Config, deps *Dependencies, dateArg string) (Lineage, error) {
	date, ok := ParseDateName(strings.TrimSpace(dateArg))
	if !ok {
		return Lineage{}, fmt.Errorf("invalid date %q: expected format YYYY-MM-DD: %w", dateArg, ErrUsage)
	}
	lineage, found, err := ScanLineage(ctx, deps, cfg.BackupRoot, date)
	if err != nil {
		return Lineage{}, err
	}
	if !found {
		return Lineage{}, fmt.Errorf(
			"no backup exists for %s under %s: %w",
			FormatDateName(date), cfg.BackupRoot, ErrUsage,
		)
	}
	return lineage, nil
}

func logToolOutput(ctx context.Context, logger *slog.Logger, res ToolResult) {
	out := strings.TrimSpace(res.Output)
	if out == "" {
		return
	}
	logger.DebugContext(ctx, "Tool output", "output", out)
}
