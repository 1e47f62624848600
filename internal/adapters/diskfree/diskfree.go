// Package diskfree reports free disk space for backup preflight checks.
package diskfree

import "log/slog"

// Adapter implements DiskPort.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new diskfree adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("diskfree adapter requires logger")
	}
	return &Adapter{logger: logger}
}
