package usecase

import (
	"context"
	"sync"
	"time"

	"visitor-alert-srv/internal/alert/render"
	"visitor-alert-srv/internal/model"
	"visitor-alert-srv/pkg/chatwebhook"
	"visitor-alert-srv/pkg/webhook"
)

// channelResult is the outcome of one channel attempt. Attempts are
// independent tasks, not pipeline stages; results are joined only so the
// coordinator can return after everything settled.
type channelResult struct {
	channel model.AlertChannel
	sent    bool
	err     error
}

type channelAttempt struct {
	channel model.AlertChannel
	send    func(ctx context.Context) error
}

// fanOut launches every channel attempt the recipient's settings allow and
// blocks until all of them settle. Each attempt runs under its own timeout;
// a failure in one never blocks, cancels or rolls back another, nor the
// persisted alert.
func (uc *implUseCase) fanOut(ctx context.Context, alrt model.Alert, recipient model.Recipient) []channelResult {
	settings := recipient.Settings

	var attempts []channelAttempt
	if settings.EmailEnabled && recipient.Email != "" && settings.EmailDigest != model.EmailModeDaily {
		attempts = append(attempts, channelAttempt{
			channel: model.ChannelEmail,
			send: func(ctx context.Context) error {
				return uc.sendEmail(ctx, alrt, recipient.Email)
			},
		})
	}
	if settings.SlackEnabled && settings.SlackWebhookURL.Valid && settings.SlackWebhookURL.String != "" {
		url := settings.SlackWebhookURL.String
		attempts = append(attempts, channelAttempt{
			channel: model.ChannelChat,
			send: func(ctx context.Context) error {
				return uc.sendChat(ctx, alrt, url)
			},
		})
	}
	// The generic webhook is gated only by the URL being configured; there
	// is no dedicated settings flag for it.
	if settings.WebhookURL.Valid && settings.WebhookURL.String != "" {
		url := settings.WebhookURL.String
		attempts = append(attempts, channelAttempt{
			channel: model.ChannelWebhook,
			send: func(ctx context.Context) error {
				return uc.sendWebhook(ctx, alrt, url)
			},
		})
	}

	results := make([]channelResult, len(attempts))
	var wg sync.WaitGroup
	for i, attempt := range attempts {
		wg.Add(1)
		go func(i int, attempt channelAttempt) {
			defer wg.Done()
			results[i] = uc.attemptChannel(ctx, alrt, attempt)
		}(i, attempt)
	}
	wg.Wait()

	return results
}

func (uc *implUseCase) attemptChannel(ctx context.Context, alrt model.Alert, attempt channelAttempt) channelResult {
	sendCtx, cancel := context.WithTimeout(ctx, uc.cfg.SendTimeout)
	defer cancel()

	if err := attempt.send(sendCtx); err != nil {
		// No retry here on purpose: the digest path is the only redelivery
		// mechanism in the system, and it covers email alone.
		uc.l.Warnf(ctx, "internal.alert.usecase.attemptChannel: %s send failed for alert %s: %v", attempt.channel, alrt.ID, err)
		return channelResult{channel: attempt.channel, err: err}
	}

	if err := uc.repo.MarkSent(ctx, alrt.ID, attempt.channel); err != nil {
		// The send went out; losing the flag is acceptable, the dedup
		// window suppresses most repeats.
		uc.l.Errorf(ctx, "internal.alert.usecase.attemptChannel.MarkSent: %v", err)
	}
	return channelResult{channel: attempt.channel, sent: true}
}

func (uc *implUseCase) sendEmail(ctx context.Context, alrt model.Alert, to string) error {
	html, err := render.AlertEmail(render.Email{
		Title:        alrt.Title,
		Message:      alrt.Message,
		Fields:       visitorFields(alrt.Data),
		DashboardURL: uc.cfg.DashboardURL,
		SettingsURL:  uc.cfg.SettingsURL,
	})
	if err != nil {
		return err
	}
	return uc.mailer.Send(ctx, to, alrt.Title, html)
}

func (uc *implUseCase) sendChat(ctx context.Context, alrt model.Alert, url string) error {
	fields := make([]chatwebhook.Field, 0, 4)
	for _, f := range visitorFields(alrt.Data) {
		fields = append(fields, chatwebhook.Field{Label: f.Label, Value: f.Value})
	}

	return uc.chat.Send(ctx, url, chatwebhook.Message{
		Title:      alrt.Title,
		Text:       alrt.Message,
		Fields:     fields,
		ActionText: "Open dashboard",
		ActionURL:  uc.cfg.DashboardURL,
	})
}

func (uc *implUseCase) sendWebhook(ctx context.Context, alrt model.Alert, url string) error {
	return uc.webhook.Send(ctx, url, webhook.Envelope{
		Event:     webhook.EventVisitorAlert,
		Timestamp: uc.clock().UTC().Format(time.RFC3339),
		Type:      alrt.Kind.String(),
		Title:     alrt.Title,
		Message:   alrt.Message,
		Data:      alrt.Data,
	})
}
