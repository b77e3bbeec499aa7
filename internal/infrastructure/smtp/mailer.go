package smtp

import (
	"context"

	"github.com/go-otp-mailer/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends HTML emails through the configured relay.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, html string) error
}

// sender is the part of *gomail.Dialer the mailer relies on.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type mailer struct {
	from   string
	dialer sender
}

// NewMailer builds the relay dialer once; it is read-only afterwards and
// shared across requests. EMAIL_USER is both the login and the From address.
func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		from:   cfg.MailUser,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.MailUser, cfg.MailPass),
	}
}

func (m *mailer) SendEmail(ctx context.Context, to, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	return m.dialer.DialAndSend(msg)
}
