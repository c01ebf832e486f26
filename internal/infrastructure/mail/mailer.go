// Package mail sends transactional email over SMTP.
package mail

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/trackwise/trackwise-api/pkg/config"
)

// SMTPMailer delivers verification codes through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds the mailer from SMTP settings.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

// SendVerificationCode emails the 6-digit code with plain-text and HTML parts.
func (m *SMTPMailer) SendVerificationCode(ctx context.Context, toEmail, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Your TrackWise verification code")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your TrackWise verification code is %s.\n\nIt expires in 10 minutes. If you did not request it, ignore this email.\n", code))
	msg.AddAlternative("text/html", fmt.Sprintf(`<html><body>
<p>Your TrackWise verification code is:</p>
<p style="font-size:28px;font-weight:bold;letter-spacing:4px">%s</p>
<p>It expires in 10 minutes. If you did not request it, ignore this email.</p>
</body></html>`, code))

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}
