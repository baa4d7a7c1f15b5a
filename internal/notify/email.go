package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"
)

// EmailConfig carries the SMTP settings for the daily-manager mailbox.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	Username   string
	Password   string
	To         []string
}

// Email mails audible alerts to the duty manager. Silent zone entries are
// skipped; mail is reserved for danger and critical.
type Email struct {
	cfg    EmailConfig
	logger *logrus.Logger
}

func NewEmail(cfg EmailConfig, logger *logrus.Logger) (*Email, error) {
	if cfg.SMTPServer == "" || cfg.SMTPPort == 0 || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("missing email configuration: SMTPServer, SMTPPort, Username, or Password is empty")
	}
	if len(cfg.To) == 0 {
		return nil, fmt.Errorf("missing email recipients")
	}
	return &Email{cfg: cfg, logger: logger}, nil
}

func (e *Email) Notify(_ context.Context, a Alert) error {
	if !a.Audible {
		return nil
	}

	subject := fmt.Sprintf("HACCP-varsel %s: %s", a.Date, a.Zone)
	body := fmt.Sprintf("%s\n\nDato: %s\nGjenstår: %d oppgaver\nTidspunkt: %s",
		a.Message, a.Date, a.Incomplete, a.At.Format("15:04"))
	message := fmt.Sprintf("Subject: %s\n\n%s", subject, body)

	auth := smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.SMTPServer)
	addr := fmt.Sprintf("%s:%d", e.cfg.SMTPServer, e.cfg.SMTPPort)

	if err := smtp.SendMail(addr, auth, e.cfg.Username, e.cfg.To, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %v: %w", e.cfg.To, err)
	}
	return nil
}
