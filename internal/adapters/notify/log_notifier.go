package notify

// Package notify delivers one-time codes out of band.

import (
	"context"
	"log/slog"

	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
)

// LogNotifier "delivers" codes by writing them to the log.
// It stands in for the mail channel, which lives outside this client.
type LogNotifier struct {
	logger *slog.Logger
}

var _ ports.CodeNotifier = (*LogNotifier)(nil)

// NewLogNotifier creates a notifier writing to logger, or slog.Default when nil.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Deliver(ctx context.Context, in ports.CodeDelivery) error {
	n.logger.InfoContext(ctx, "verification code issued",
		"identifier", in.Identifier,
		"purpose", string(in.Purpose),
		"code", in.Code,
		"expires_at", in.ExpiresAt,
	)
	return nil
}
