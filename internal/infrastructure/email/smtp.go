package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"chamado/internal/shared/config"
)

// ErrNotConfigured indicates there is no usable SMTP configuration.
var ErrNotConfigured = errors.New("email service not configured")

type SMTPSender struct {
	config config.EmailConfig
	dialer *gomail.Dialer
}

var _ Sender = (*SMTPSender)(nil)

func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	return &SMTPSender{
		config: cfg,
		dialer: dialer,
	}
}

func (s *SMTPSender) SendPasswordResetEmail(to, token string) error {
	subject := "Redefinição de senha"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Redefinição de senha</h2>
			<p>Use o código abaixo para redefinir sua senha:</p>
			<p><b>%s</b></p>
			<p>Se você não solicitou a redefinição, ignore este e-mail.</p>
		</body>
		</html>
	`, token)

	plainBody := fmt.Sprintf(`
Redefinição de senha

Use o código abaixo para redefinir sua senha:
%s

Se você não solicitou a redefinição, ignore este e-mail.
	`, token)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPSender) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
