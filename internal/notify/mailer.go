// Package notify delivers plain-text operator alerts over SMTP.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Config holds mail relay settings.
type Config struct {
	Host       string
	Port       int
	Sender     string
	Password   string
	Recipients []string
}

// Mailer sends one message per call over a connection scoped to that
// call: dial, send, close. Nothing is kept open across pipeline stages,
// so a long-running stage can never leave the notifier on a stale
// half-closed connection.
type Mailer struct {
	config Config
}

// NewMailer creates a new mailer.
func NewMailer(config Config) *Mailer {
	return &Mailer{config: config}
}

// Send delivers a plain-text message to the fixed recipient list.
func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	if m.config.Host == "" {
		return errors.New("mail relay host is not configured")
	}
	if len(m.config.Recipients) == 0 {
		return errors.New("no notification recipients configured")
	}

	msg, err := m.buildMessage(subject, body)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(m.config.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if m.config.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.config.Sender),
			mail.WithPassword(m.config.Password),
		)
	}

	client, err := mail.NewClient(m.config.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	// DialAndSend closes the connection whether or not the send worked.
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

func (m *Mailer) buildMessage(subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.config.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(m.config.Recipients...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}
