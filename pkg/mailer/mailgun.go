package mailer

import (
	"context"
	"fmt"

	mg "github.com/mailgun/mailgun-go/v4"
)

// MailgunSender delivers through one Mailgun domain.
type MailgunSender struct {
	client *mg.MailgunImpl
	from   string
	tag    string
}

// NewMailgunSender builds a sender. tag labels every message for Mailgun analytics; empty skips it.
func NewMailgunSender(domain, apiKey, from, tag string) *MailgunSender {
	return &MailgunSender{client: mg.NewMailgun(domain, apiKey), from: from, tag: tag}
}

func (m *MailgunSender) Send(ctx context.Context, to, subject, text, html string) error {
	msg := m.client.NewMessage(m.from, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if m.tag != "" {
		if err := msg.AddTag(m.tag); err != nil {
			return err
		}
	}
	if _, _, err := m.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("mailgun send to %s: %w", to, err)
	}
	return nil
}

var _ Sender = (*MailgunSender)(nil)
