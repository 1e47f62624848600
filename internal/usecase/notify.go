package usecase

import (
	"context"
	"log/slog"
)

// notify sends an operator notification when notifications are configured.
// Notification failures are logged and never fail the operation itself.
func notify(ctx context.Context, cfg *Config, deps *Dependencies, logger *slog.Logger, subject, body string) {
	if !cfg.NotifyEnabled || deps.Notifier == nil {
		return
	}
	if err := deps.Notifier.Send(ctx, subject, body); err != nil {
		logger.WarnContext(ctx, "Failed to send notification", "subject", subject, "error", err)
		return
	}
	logger.DebugContext(ctx, "Notification sent", "subject", subject, "to", cfg.NotifyTo)
}
