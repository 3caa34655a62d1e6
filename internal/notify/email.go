package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// EmailConfig holds SMTP transport settings.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailNotifier sends plain-text mail over SMTP with PLAIN auth.
// Outbound sends are rate limited so a burst of bookings cannot trip
// provider limits.
type EmailNotifier struct {
	cfg      EmailConfig
	limiter  *rate.Limiter
	logger   *zerolog.Logger
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmail(cfg EmailConfig, logger *zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Limit(1), 3),
		logger:   logger,
		sendMail: smtp.SendMail,
	}
}

func (n *EmailNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	msg := buildMessage(n.cfg.From, recipient, subject, body)
	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)

	if err := n.sendMail(addr, auth, n.cfg.From, []string{recipient}, msg); err != nil {
		n.logger.Error().Err(err).Str("recipient", recipient).Msg("email send failed")
		return fmt.Errorf("send mail: %w", err)
	}

	n.logger.Info().Str("recipient", recipient).Str("subject", subject).Msg("email sent")
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
