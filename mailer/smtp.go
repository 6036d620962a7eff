package mailer

import (
	"fmt"
	"net/smtp"
)

// SMTPMailer delivers mail through a plain-auth SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	From     string
	FromName string
	Password string
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: %s <%s>\r\n", m.FromName, m.From)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(msg))
}
