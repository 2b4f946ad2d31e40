package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/elaattia/MyEcologicCrowsourcingfront-sub001/internal/ports"
)

// Channel pairs a notifier with a name for logging.
type Channel struct {
	Name     string
	Notifier ports.CodeNotifier
}

// Fanout delivers each code to every registered channel in order.
type Fanout struct {
	logger   *slog.Logger
	channels []Channel
}

var _ ports.CodeNotifier = (*Fanout)(nil)

// NewFanout drops nil notifiers and names unnamed channels.
func NewFanout(logger *slog.Logger, channels ...Channel) *Fanout {
	if logger == nil {
		logger = slog.Default()
	}

	kept := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		if ch.Notifier == nil {
			continue
		}
		if ch.Name == "" {
			ch.Name = "channel"
		}
		kept = append(kept, ch)
	}

	return &Fanout{
		logger:   logger.With("component", "code_fanout"),
		channels: kept,
	}
}

// Deliver tries every channel even when an earlier one fails.
// The joined error names each failing channel.
func (f *Fanout) Deliver(ctx context.Context, in ports.CodeDelivery) error {
	var errs []error
	for _, ch := range f.channels {
		if err := ch.Notifier.Deliver(ctx, in); err != nil {
			f.logger.WarnContext(ctx, "code delivery failed",
				"channel", ch.Name,
				"purpose", string(in.Purpose),
				"error", err,
			)
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Len reports how many channels are active.
func (f *Fanout) Len() int {
	return len(f.channels)
}

// Names lists the active channels in delivery order.
func (f *Fanout) Names() []string {
	names := make([]string, 0, len(f.channels))
	for _, ch := range f.channels {
		names = append(names, ch.Name)
	}
	return names
}
