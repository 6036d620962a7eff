package mailer

import (
	"log"

	"lms/config"
)

// Mailer sends a single HTML email. Delivery is fire-and-forget from the
// caller's perspective; failures are logged, never propagated into the
// operation that triggered the send.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// New picks a transport from configuration.
func New(cfg *config.Config) Mailer {
	switch cfg.MailBackend {
	case "smtp":
		return &SMTPMailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.EmailSender,
			FromName: cfg.SenderName,
			Password: cfg.SMTPPassword,
		}
	case "sendgrid":
		return NewSendGridMailer(cfg.SendGridKey, cfg.EmailSender, cfg.SenderName)
	default:
		return &ConsoleMailer{}
	}
}

// ConsoleMailer prints outgoing mail to the log. Dev default.
type ConsoleMailer struct{}

func (m *ConsoleMailer) Send(to, subject, htmlBody string) error {
	log.Printf("--- Sending Email ---\nTo: %s\nSubject: %s\n%s\n--- End Email ---", to, subject, htmlBody)
	return nil
}
