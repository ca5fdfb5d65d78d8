// Package email delivers account emails over SMTP.
package email

import "chamado/internal/shared/logger"

// Sender delivers password reset instructions to a user.
type Sender interface {
	SendPasswordResetEmail(to, token string) error
}

// NoopSender stands in when SMTP is not configured. Sends are logged and
// reported as undeliverable.
type NoopSender struct {
	logger logger.Interface
}

func NewNoopSender(log logger.Interface) *NoopSender {
	return &NoopSender{logger: log}
}

func (s *NoopSender) SendPasswordResetEmail(to, token string) error {
	s.logger.Warnw("email delivery not configured, reset token not sent", "to", to)
	return ErrNotConfigured
}
