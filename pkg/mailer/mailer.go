// Package mailer delivers notification email over SMTP. Callers treat
// delivery as best-effort: a failed send is logged and otherwise
// ignored, it never fails the request that triggered it.
package mailer

import (
	"review-hub/pkg/utils"

	"gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	cfg utils.EmailConfig
}

func NewSMTPMailer(cfg utils.EmailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(
		m.cfg.Host,
		m.cfg.Port,
		m.cfg.User,
		m.cfg.Password,
	)

	return d.DialAndSend(msg)
}
