package xtrabackup

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/dcbrown/clusterback/internal/usecase"
)

// Adapter implements BackupToolPort by invoking Percona XtraBackup as a
// subprocess. Every invocation is synchronous; stdout and stderr are
// captured combined and returned for logging, never parsed.
type Adapter struct {
	logger *slog.Logger
	binary string
}

// New creates a new xtrabackup adapter. binary is the tool path from
// configuration; an empty value falls back to "xtrabackup" on PATH.
func New(logger *slog.Logger, binary string) *Adapter {
	if logger == nil {
		panic("xtrabackup adapter requires logger")
	}
	if binary == "" {
		binary = "xtrabackup"
	}
	return &Adapter{logger: logger, binary: binary}
}

// FullBackup writes a compressed full backup into targetDir.
func (a *Adapter) FullBackup(ctx context.Context, targetDir string) (usecase.ToolResult, error) {
	return a.run(ctx, fullBackupArgs(targetDir))
}

// IncrementalBackup writes a compressed delta against baseDir into targetDir.
func (a *Adapter) IncrementalBackup(ctx context.Context, targetDir, baseDir string) (usecase.ToolResult, error) {
	return a.run(ctx, incrementalBackupArgs(targetDir, baseDir))
}

// Prepare applies transaction logs onto targetDir, optionally layering an
// incremental directory, optionally holding log application open.
func (a *Adapter) Prepare(ctx context.Context, targetDir, incrementalDir string, applyLogOnly bool) (usecase.ToolResult, error) {
	return a.run(ctx, prepareArgs(targetDir, incrementalDir, applyLogOnly))
}

// CopyBack restores a prepared backup into the database data directory.
func (a *Adapter) CopyBack(ctx context.Context, backupDir, dataDir string) (usecase.ToolResult, error) {
	return a.run(ctx, copyBackArgs(backupDir, dataDir))
}

func (a *Adapter) run(ctx context.Context, args []string) (usecase.ToolResult, error) {
	a.logger.DebugContext(ctx, "Invoking backup tool", "binary", a.binary, "args", args)

	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, a.binary, args...) // #nosec G204 - binary comes from config
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	res := usecase.ToolResult{Output: buf.String()}
	if err != nil {
		return res, fmt.Errorf("%s %s: %w", a.binary, args[0], err)
	}
	return res, nil
}

func fullBackupArgs(targetDir string) []string {
	return []string{"--backup", "--compress", "--target-dir=" + targetDir}
}

func incrementalBackupArgs(targetDir, baseDir string) []string {
	return []string{
		"--backup", "--compress",
		"--target-dir=" + targetDir,
		"--incremental-basedir=" + baseDir,
	}
}

func prepareArgs(targetDir, incrementalDir string, applyLogOnly bool) []string {
	args := []string{"--prepare"}
	if applyLogOnly {
		args = append(args, "--apply-log-only")
	}
	args = append(args, "--target-dir="+targetDir)
	if incrementalDir != "" {
		args = append(args, "--incremental-dir="+incrementalDir)
	}
	return args
}

func copyBackArgs(backupDir, dataDir string) []string {
	return []string{"--copy-back", "--target-dir=" + backupDir, "--datadir=" + dataDir}
}
