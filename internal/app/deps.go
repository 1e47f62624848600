package app

import (
	"log/slog"

	"github.com/dcbrown/clusterback/internal/adapters/config"
	"github.com/dcbrown/clusterback/internal/adapters/diskfree"
	"github.com/dcbrown/clusterback/internal/adapters/filesystem"
	"github.com/dcbrown/clusterback/internal/adapters/notify"
	"github.com/dcbrown/clusterback/internal/adapters/xtrabackup"
	"github.com/dcbrown/clusterback/internal/usecase"
)

// NewConfigDependencies creates the minimal dependencies needed before
// runtime configuration is available.
func NewConfigDependencies(logger *slog.Logger) *usecase.Dependencies {
	if logger == nil {
		panic("dependencies require logger")
	}
	return &usecase.Dependencies{
		FileSystem: filesystem.New(logger),
		Config:     config.New(logger),
	}
}

// NewDefaultDependencies creates dependencies with real adapters wired from
// runtime configuration.
func NewDefaultDependencies(logger *slog.Logger, cfg *usecase.Config) *usecase.Dependencies {
	if logger == nil {
		panic("default dependencies require logger")
	}

	deps := NewConfigDependencies(logger)
	deps.Tool = xtrabackup.New(logger, cfg.ToolPath)
	deps.Disk = diskfree.New(logger)
	if cfg.NotifyEnabled {
		deps.Notifier = notify.New(logger, cfg.SMTPServer, cfg.SMTPPort, cfg.NotifyFrom, cfg.NotifyTo)
	}
	return deps
}
