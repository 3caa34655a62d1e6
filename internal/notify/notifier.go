package notify

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Notifier delivers a formatted message to a single recipient. Delivery
// failure never rolls back a booking; callers only report it.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// ConsoleNotifier logs messages instead of delivering them. It stands in
// for the mail transport when no SMTP credentials are configured.
type ConsoleNotifier struct {
	logger *zerolog.Logger
}

func NewConsole(logger *zerolog.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{logger: logger}
}

func (c *ConsoleNotifier) Send(_ context.Context, recipient, subject, _ string) error {
	c.logger.Info().Str("recipient", recipient).Str("subject", subject).Msg("notification (console)")
	return nil
}

// Multi fans a message out to several channels. It fails if any channel
// fails, after attempting all of them.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, recipient, subject, body string) error {
	var errs []error
	for _, n := range m {
		if err := n.Send(ctx, recipient, subject, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
