package usecase

import (
	"context"

	"github.com/friendsofgo/errors"

	"visitor-alert-srv/internal/alert"
	"visitor-alert-srv/internal/alert/detector"
	"visitor-alert-srv/internal/alert/repository"
	"visitor-alert-srv/internal/lookup"
	"visitor-alert-srv/internal/model"
)

func (uc *implUseCase) HandleVisitEvent(ctx context.Context, visit model.Visit) error {
	if visit.ID == "" || visit.CampaignID == "" || visit.SessionID == "" {
		return alert.ErrInvalidVisit
	}

	res, err := uc.resolver.ResolveRecipient(ctx, visit.CampaignID)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			// No one to notify. Designed no-op, not a fault.
			uc.l.Infof(ctx, "internal.alert.usecase.HandleVisitEvent: no recipient for campaign %s", visit.CampaignID)
			return nil
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.HandleVisitEvent.ResolveRecipient: %v", err)
		return err
	}

	if !res.Recipient.Settings.Enabled {
		uc.l.Debugf(ctx, "internal.alert.usecase.HandleVisitEvent: alerts disabled for user %s", res.Recipient.UserID)
		return nil
	}

	camp := model.CampaignContext{
		CampaignName: res.Campaign.Name,
		CompanyName:  res.Company.Name,
	}
	conds := uc.detector.Detect(ctx, visit, camp)
	if len(conds) == 0 {
		return nil
	}

	for _, cond := range conds {
		uc.dispatchCondition(ctx, visit, res.Recipient, cond)
	}
	return nil
}

// dispatchCondition applies the dedup guard, persists the alert, and fans
// out channel sends. Candidates are independent: a failure here never
// affects the sibling conditions of the same visit.
func (uc *implUseCase) dispatchCondition(ctx context.Context, visit model.Visit, recipient model.Recipient, cond detector.Condition) {
	_, err := uc.repo.FindRecent(ctx, repository.RecentOptions{
		UserID:     recipient.UserID,
		CampaignID: visit.CampaignID,
		VisitID:    visit.ID,
		Kind:       cond.Kind,
		Window:     model.DedupWindow,
	})
	if err == nil {
		uc.l.Debugf(ctx, "internal.alert.usecase.dispatchCondition: duplicate %s for visit %s suppressed", cond.Kind, visit.ID)
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		uc.l.Errorf(ctx, "internal.alert.usecase.dispatchCondition.FindRecent: %v", err)
		return
	}

	created, err := uc.repo.Create(ctx, repository.CreateOptions{
		Alert: model.Alert{
			UserID:     recipient.UserID,
			CampaignID: visit.CampaignID,
			VisitID:    visit.ID,
			Kind:       cond.Kind,
			Title:      cond.Title,
			Message:    cond.Message,
			Data:       cond.Data,
		},
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the insert race to a concurrent dispatch of the same
			// triple; the winner owns the sends.
			uc.l.Debugf(ctx, "internal.alert.usecase.dispatchCondition: concurrent duplicate %s for visit %s suppressed", cond.Kind, visit.ID)
			return
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.dispatchCondition.Create: %v", err)
		return
	}

	uc.fanOut(ctx, created, recipient)
}
