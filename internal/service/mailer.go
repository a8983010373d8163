package service

import (
	"context"
	"log/slog"
)

// Mailer delivers confirmation codes to users.
type Mailer interface {
	SendConfirmationCode(ctx context.Context, email, code string) error
}

// LogMailer writes the mail to the log instead of sending it. Good enough
// for development; swap in a real SMTP implementation in production.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendConfirmationCode(ctx context.Context, email, code string) error {
	m.logger.InfoContext(ctx, "Activate your account",
		"to", email,
		"confirmation_code", code,
	)
	return nil
}
