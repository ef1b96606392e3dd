package mailer

import (
	"context"
	"errors"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends rendered emails through the Mailgun HTTP API. It satisfies Sender.
type Mailgun struct {
	Sender string
	Tag    string
	client *mg.MailgunImpl
}

// NewMailgun builds a sender for domain. eu selects the EU API region.
func NewMailgun(domain, apiKey, sender string, eu bool) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	if eu {
		client.SetAPIBase(mg.APIBaseEU)
	}
	return &Mailgun{Sender: sender, client: client}
}

// Send delivers one message. html is optional; text is always set as the fallback body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	if to == "" {
		return errors.New("mailgun: empty recipient")
	}
	msg := m.client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if m.Tag != "" {
		if err := msg.AddTag(m.Tag); err != nil {
			return err
		}
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}
	_, _, err := m.client.Send(ctx, msg)
	return err
}
