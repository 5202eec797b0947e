package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"visitor-alert-srv/pkg/log"
)

// New creates a Resend-backed mailer.
func New(l log.Logger, cfg Config) (IMailer, error) {
	if cfg.APIKey == "" {
		return nil, errAPIKeyRequired
	}
	if cfg.From == "" {
		return nil, errFromRequired
	}

	return &resendMailer{
		l:      l,
		client: resend.NewClient(cfg.APIKey),
		from:   cfg.From,
	}, nil
}

func (m *resendMailer) Send(ctx context.Context, to, subject, html string) error {
	if to == "" {
		return fmt.Errorf("mailer: recipient is required")
	}
	if !strings.Contains(to, "@") {
		return fmt.Errorf("mailer: invalid recipient address %q", to)
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("mailer: send failed: %w", err)
	}

	if m.l != nil {
		m.l.Debugf(ctx, "pkg.mailer.Send: sent email %s to %s", sent.Id, to)
	}
	return nil
}
