package notify

import (
	"fmt"

	"github.com/wneessen/go-mail"
)

// Mailer sends one plain-text message. Both the email alert and the
// SMS-via-gateway alert go through this.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers messages through an authenticated SMTP account.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer connects alert delivery to an SMTP account. STARTTLS is
// required; gmail app passwords work here.
func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("creating SMTP client: %w", err)
	}
	return &SMTPMailer{
		client: client,
		from:   from,
	}, nil
}

// Send delivers one message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending message to %s: %w", to, err)
	}
	return nil
}
