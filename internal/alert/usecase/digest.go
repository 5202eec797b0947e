package usecase

import (
	"context"
	"fmt"

	"visitor-alert-srv/internal/alert"
	"visitor-alert-srv/internal/alert/render"
	"visitor-alert-srv/internal/model"
)

func (uc *implUseCase) RunDailyDigests(ctx context.Context) (alert.DigestSummary, error) {
	recipients, err := uc.resolver.Recipients(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.RunDailyDigests.Recipients: %v", err)
		return alert.DigestSummary{}, err
	}

	since := uc.clock().UTC().Add(-digestLookback)

	var summary alert.DigestSummary
	for _, recipient := range recipients {
		if recipient.Email == "" {
			continue
		}
		settings := recipient.Settings
		if !settings.Enabled || !settings.EmailEnabled || settings.EmailDigest != model.EmailModeDaily {
			continue
		}
		summary.RecipientsProcessed++

		pending, err := uc.repo.PendingEmail(ctx, recipient.UserID, since)
		if err != nil {
			uc.l.Errorf(ctx, "internal.alert.usecase.RunDailyDigests.PendingEmail: %v", err)
			continue
		}
		if len(pending) == 0 {
			continue
		}

		items := make([]render.DigestItem, 0, len(pending))
		ids := make([]string, 0, len(pending))
		for _, alrt := range pending {
			items = append(items, render.DigestItem{
				Title:   alrt.Title,
				Message: alrt.Message,
				Fields:  visitorFields(alrt.Data),
			})
			ids = append(ids, alrt.ID)
		}

		html, err := render.DigestEmail(render.Digest{
			Count:        len(items),
			Items:        items,
			DashboardURL: uc.cfg.DashboardURL,
			SettingsURL:  uc.cfg.SettingsURL,
		})
		if err != nil {
			uc.l.Errorf(ctx, "internal.alert.usecase.RunDailyDigests.DigestEmail: %v", err)
			continue
		}

		subject := fmt.Sprintf("Daily digest: %d new visitor alert", len(items))
		if len(items) != 1 {
			subject += "s"
		}

		sendCtx, cancel := context.WithTimeout(ctx, uc.cfg.SendTimeout)
		err = uc.mailer.Send(sendCtx, recipient.Email, subject, html)
		cancel()
		if err != nil {
			// Flags stay false: the alerts remain eligible on the next run
			// for as long as they stay inside the 24-hour lookback.
			uc.l.Errorf(ctx, "internal.alert.usecase.RunDailyDigests.Send: %v", err)
			continue
		}

		if err := uc.repo.MarkEmailSent(ctx, ids); err != nil {
			uc.l.Errorf(ctx, "internal.alert.usecase.RunDailyDigests.MarkEmailSent: %v", err)
			continue
		}
		summary.EmailsSent++
	}

	uc.l.Infof(ctx, "internal.alert.usecase.RunDailyDigests: processed %d recipients, sent %d digests",
		summary.RecipientsProcessed, summary.EmailsSent)
	return summary, nil
}
