// Package notify adapts the external mail capability. Transport mechanics
// (SMTP, provider APIs) live behind the service.Notifier interface; this
// package ships the implementation used in development and tests.
package notify

import (
	"context"
	"log/slog"

	"leasehold/internal/household/service"
)

// LogNotifier records outbound mail as structured log lines instead of
// delivering it. Used for local development and as the default when no real
// transport is configured.
type LogNotifier struct {
	logger *slog.Logger
	from   string
}

func NewLogNotifier(logger *slog.Logger, from string) *LogNotifier {
	return &LogNotifier{logger: logger, from: from}
}

func (n *LogNotifier) SendEmail(ctx context.Context, to, subject, htmlBody string, attachments ...service.Attachment) error {
	n.logger.InfoContext(ctx, "email dispatched",
		"from", n.from,
		"to", to,
		"subject", subject,
		"body_bytes", len(htmlBody),
		"attachments", len(attachments),
	)
	return nil
}
