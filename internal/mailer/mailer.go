// Package mailer sends the transactional email the booking flow produces:
// guest confirmations and cancellations, venue notifications, generated
// credentials and password recovery. Delivery failures are reported to the
// caller but must never corrupt booking state; handlers log and continue.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Sender delivers a rendered HTML message. Implementations must be safe for
// concurrent use. Tests substitute an in-memory fake.
type Sender interface {
	Send(to []string, subject, htmlBody string) error
}

// SMTPSender sends email via unauthenticated SMTP (Mailpit-compatible in
// dev, a relay in production).
type SMTPSender struct {
	addr string
	from string
}

// NewSMTPSender builds a sender for host:port with the given From address.
func NewSMTPSender(host, port, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "reservas@limoncello.local"
	}
	return &SMTPSender{addr: fmt.Sprintf("%s:%s", host, port), from: from}
}

// Send delivers one message to all recipients.
func (s *SMTPSender) Send(to []string, subject, htmlBody string) error {
	recipients := make([]string, 0, len(to))
	for _, r := range to {
		if r = strings.TrimSpace(r); r != "" {
			recipients = append(recipients, r)
		}
	}
	if len(recipients) == 0 {
		return fmt.Errorf("mailer: no recipients")
	}
	msg := buildMessage(s.from, recipients, subject, htmlBody)
	return smtp.SendMail(s.addr, nil, s.from, recipients, []byte(msg))
}

func buildMessage(from string, to []string, subject, body string) string {
	// Minimal RFC 5322 message with an HTML body; enough for Mailpit and
	// most SMTP relays.
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n",
		from,
		strings.Join(to, ", "),
		subject,
		body,
	)
}
