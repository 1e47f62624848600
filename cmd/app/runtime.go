package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dcbrown/clusterback/internal/adapters/loghandler"
	"github.com/dcbrown/clusterback/internal/app"
	"github.com/dcbrown/clusterback/internal/usecase"
)

// appRuntime bundles everything an operation command needs after bootstrap.
type appRuntime struct {
	cfg     *usecase.Config
	deps    *usecase.Dependencies
	logger  *slog.Logger
	cleanup func()
}

// newAppRuntime loads configuration and wires logging and adapters.
// Configuration failures happen before file logging exists and are reported
// on stderr only.
func newAppRuntime(ctx context.Context, opts *rootOptions) (*appRuntime, error) {
	logger := setupLogger(opts.verbose)

	configDeps := app.NewConfigDependencies(logger)
	configFile, err := configDeps.Config.Load(ctx, opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %v: %w", err, usecase.ErrCritical)
	}
	cfg, err := usecase.RuntimeConfigFromFile(configFile)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = opts.verbose

	logger, cleanup := withFileLogging(logger, configFile.Logging, opts.verbose)
	deps := app.NewDefaultDependencies(logger, cfg)

	return &appRuntime{
		cfg:     cfg,
		deps:    deps,
		logger:  logger,
		cleanup: cleanup,
	}, nil
}

func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := loghandler.NewHandler(os.Stderr, &loghandler.Options{
		Level:    level,
		UseColor: shouldUseColor(os.Stderr),
	})
	return slog.New(handler)
}

// withFileLogging fans the console logger out to a rotating log file in the
// configured log directory. Problems with the log directory degrade to
// console-only logging with a warning; they never block the operation.
func withFileLogging(logger *slog.Logger, logCfg usecase.LoggingConfig, verbose bool) (*slog.Logger, func()) {
	dir := strings.TrimSpace(logCfg.Dir)
	if dir == "" {
		return logger, func() {}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		logger.Warn("Cannot create log directory", "path", dir, "error", err)
		return logger, func() {}
	}

	fileLevel := parseLogLevel(logCfg.Level)
	if verbose && fileLevel > slog.LevelDebug {
		fileLevel = slog.LevelDebug
	}

	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "clusterback.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 5,
	}
	fileHandler := loghandler.NewHandler(rotating, &loghandler.Options{
		Level:      fileLevel,
		UseColor:   false,
		Timestamps: true,
	})

	combined := loghandler.NewMultiHandler(logger.Handler(), fileHandler)
	return slog.New(combined), func() { _ = rotating.Close() }
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func shouldUseColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
