package usecase

import (
	"fmt"
	"strings"
	"time"
)

// RuntimeConfigFromFile validates TOML config and converts it into runtime
// config. Validation failures are configuration errors: they are reported
// before any operation runs.
func RuntimeConfigFromFile(cfg ConfigFile) (*Config, error) {
	root := strings.TrimSpace(cfg.Backup.Root)
	if root == "" {
		return nil, fmt.Errorf("backup.root is not configured: %w", ErrCritical)
	}

	toolPath := strings.TrimSpace(cfg.Backup.ToolPath)
	if toolPath == "" {
		toolPath = "xtrabackup"
	}

	rot := cfg.Rotation
	if rot.WeekStartsOn < 0 || rot.WeekStartsOn > 6 {
		return nil, fmt.Errorf("rotation.week_starts_on must be 0-6, got %d: %w", rot.WeekStartsOn, ErrCritical)
	}
	if rot.YearlyAnchorDay < 1 || rot.YearlyAnchorDay > 366 {
		return nil, fmt.Errorf("rotation.yearly_anchor_day must be 1-366, got %d: %w", rot.YearlyAnchorDay, ErrCritical)
	}
	if rot.WeeklyKeep < 0 || rot.MonthlyKeep < 0 || rot.YearlyKeep < 0 {
		return nil, fmt.Errorf("rotation keep counts must not be negative: %w", ErrCritical)
	}

	if cfg.Notifications.Enabled {
		if strings.TrimSpace(cfg.Notifications.To) == "" {
			return nil, fmt.Errorf("notifications.to is required when notifications are enabled: %w", ErrCritical)
		}
		if strings.TrimSpace(cfg.Notifications.From) == "" {
			return nil, fmt.Errorf("notifications.from is required when notifications are enabled: %w", ErrCritical)
		}
		if strings.TrimSpace(cfg.Notifications.SMTPServer) == "" {
			return nil, fmt.Errorf("notifications.smtp_server is required when notifications are enabled: %w", ErrCritical)
		}
	}
	smtpPort := cfg.Notifications.SMTPPort
	if smtpPort == 0 {
		smtpPort = 25
	}

	return &Config{
		DataDir:    strings.TrimSpace(cfg.MySQL.DataDir),
		BackupRoot: root,
		ToolPath:   toolPath,
		MinFreeGB:  cfg.Backup.MinFreeGB,
		Policy: RetentionPolicy{
			WeekStart:       time.Weekday(rot.WeekStartsOn),
			YearlyAnchorDay: rot.YearlyAnchorDay,
			WeeklyKeep:      rot.WeeklyKeep,
			MonthlyKeep:     rot.MonthlyKeep,
			YearlyKeep:      rot.YearlyKeep,
		},
		NotifyEnabled: cfg.Notifications.Enabled,
		NotifyTo:      strings.TrimSpace(cfg.Notifications.To),
		NotifyFrom:    strings.TrimSpace(cfg.Notifications.From),
		SMTPServer:    strings.TrimSpace(cfg.Notifications.SMTPServer),
		SMTPPort:      smtpPort,
	}, nil
}
