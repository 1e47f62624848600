package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dcbrown/clusterback/internal/usecase"
)

// Adapter implements ConfigPort using TOML files on disk.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new config adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("config adapter requires logger")
	}
	return &Adapter{logger: logger}
}

// Load reads config from path. A missing file is an error: running backups
// against defaults would silently target the wrong directories.
func (a *Adapter) Load(ctx context.Context, path string) (usecase.ConfigFile, error) {
	_ = ctx
	if strings.TrimSpace(path) == "" {
		return usecase.ConfigFile{}, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is controlled by usecase
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return usecase.ConfigFile{}, fmt.Errorf("configuration file not found: %s", path)
		}
		return usecase.ConfigFile{}, err
	}

	cfg := usecase.DefaultConfigFile()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return usecase.ConfigFile{}, fmt.Errorf("parse config toml: %w", err)
	}

	return cfg, nil
}

// Save writes config to path in TOML format with inline documentation.
func (a *Adapter) Save(ctx context.Context, path string, cfg usecase.ConfigFile) error {
	_ = ctx
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is empty")
	}

	content := renderCommentedTOML(cfg)

	// #nosec G306 G304 - config is not secret, path is controlled by usecase.
	return os.WriteFile(path, []byte(content), 0o644)
}

//nolint:lll // template readability is more important than line length.
func renderCommentedTOML(cfg usecase.ConfigFile) string {
	return fmt.Sprintf(`# clusterback configuration

# ── MySQL ────────────────────────────────────────────────────────
[mysql]

# MySQL data directory (restore target).
data_dir = %[1]q

# ── Backup ───────────────────────────────────────────────────────
[backup]

# Root directory for backups (required). One YYYY-MM-DD directory
# per day, incrN subdirectories for incremental backups.
root = %[2]q

# Path to the xtrabackup binary.
tool_path = %[3]q

# Refuse to start a backup when the backup root's filesystem has
# less free space than this (GB). 0 disables the check.
min_free_gb = %[4]d

# ── Email Notifications ──────────────────────────────────────────
[notifications]

# Send an email after each backup/restore (and on failure).
enabled = %[5]t

to = %[6]q
from = %[7]q
smtp_server = %[8]q
smtp_port = %[9]d

# ── Logging ──────────────────────────────────────────────────────
[logging]

# Log directory. Log files rotate at 10 MB, keeping 5 old files.
dir = %[10]q

# Minimum log level: debug, info, warn, error.
level = %[11]q

# ── Rotation ─────────────────────────────────────────────────────
[rotation]

# Weekday a retention week begins on: 0 = Sunday .. 6 = Saturday.
week_starts_on = %[12]d

# Day of year (1-366) the yearly retention rule targets.
yearly_anchor_day = %[13]d

# How many weekly / monthly / yearly backups to keep.
weekly_keep = %[14]d
monthly_keep = %[15]d
yearly_keep = %[16]d
`,
		cfg.MySQL.DataDir,
		cfg.Backup.Root,
		cfg.Backup.ToolPath,
		cfg.Backup.MinFreeGB,
		cfg.Notifications.Enabled,
		cfg.Notifications.To,
		cfg.Notifications.From,
		cfg.Notifications.SMTPServer,
		cfg.Notifications.SMTPPort,
		cfg.Logging.Dir,
		cfg.Logging.Level,
		cfg.Rotation.WeekStartsOn,
		cfg.Rotation.YearlyAnchorDay,
		cfg.Rotation.WeeklyKeep,
		cfg.Rotation.MonthlyKeep,
		cfg.Rotation.YearlyKeep,
	)
}
