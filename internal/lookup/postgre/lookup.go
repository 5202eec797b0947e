package postgres

import (
	"context"

	"github.com/friendsofgo/errors"
	"gorm.io/gorm"

	"visitor-alert-srv/internal/lookup"
	"visitor-alert-srv/internal/model"
	postgresPkg "visitor-alert-srv/pkg/postgre"
)

func (r *implResolver) ResolveRecipient(ctx context.Context, campaignID string) (lookup.Resolution, error) {
	if err := postgresPkg.IsUUID(campaignID); err != nil {
		r.l.Errorf(ctx, "internal.lookup.postgres.ResolveRecipient.IsUUID: %v", err)
		return lookup.Resolution{}, err
	}

	var res lookup.Resolution

	if err := r.db.WithContext(ctx).First(&res.Campaign, "id = ?", campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lookup.Resolution{}, lookup.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.lookup.postgres.ResolveRecipient.Campaign: %v", err)
		return lookup.Resolution{}, err
	}

	if err := r.db.WithContext(ctx).First(&res.Company, "id = ?", res.Campaign.CompanyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lookup.Resolution{}, lookup.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.lookup.postgres.ResolveRecipient.Company: %v", err)
		return lookup.Resolution{}, err
	}

	var usr model.User
	if err := r.db.WithContext(ctx).First(&usr, "id = ?", res.Campaign.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return lookup.Resolution{}, lookup.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.lookup.postgres.ResolveRecipient.User: %v", err)
		return lookup.Resolution{}, err
	}

	settings, err := r.settingsFor(ctx, usr.ID)
	if err != nil {
		return lookup.Resolution{}, err
	}

	res.Recipient = model.Recipient{
		UserID:   usr.ID,
		Email:    usr.Email,
		Settings: settings,
	}
	return res, nil
}

// settingsFor loads alert settings for a user. A missing row falls back
// to the model defaults (everything enabled, instant email).
func (r *implResolver) settingsFor(ctx context.Context, userID string) (model.AlertSettings, error) {
	var settings model.AlertSettings
	err := r.db.WithContext(ctx).First(&settings, "user_id = ?", userID).Error
	if err == nil {
		return settings, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return defaultSettings(userID), nil
	}
	r.l.Errorf(ctx, "internal.lookup.postgres.settingsFor.First: %v", err)
	return model.AlertSettings{}, err
}

func defaultSettings(userID string) model.AlertSettings {
	return model.AlertSettings{
		UserID:               userID,
		Enabled:              true,
		EmailEnabled:         true,
		SlackEnabled:         true,
		InAppEnabled:         true,
		EmailDigest:          model.EmailModeInstant,
		NotifyHighValue:      true,
		NotifyExecutive:      true,
		NotifyMultipleChats:  true,
		NotifyFormSubmission: true,
		NotifyCtaClicked:     true,
		NotifyReturning:      true,
	}
}

func (r *implResolver) Recipients(ctx context.Context) ([]model.Recipient, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("email <> ''").Find(&users).Error; err != nil {
		r.l.Errorf(ctx, "internal.lookup.postgres.Recipients.Find: %v", err)
		return nil, err
	}

	res := make([]model.Recipient, 0, len(users))
	for _, usr := range users {
		settings, err := r.settingsFor(ctx, usr.ID)
		if err != nil {
			return nil, err
		}
		res = append(res, model.Recipient{
			UserID:   usr.ID,
			Email:    usr.Email,
			Settings: settings,
		})
	}
	return res, nil
}

func (r *implResolver) PriorSessions(ctx context.Context, campaignID, visitorEmail, excludeSessionID string) ([]model.Visit, error) {
	if err := postgresPkg.IsUUID(campaignID); err != nil {
		r.l.Errorf(ctx, "internal.lookup.postgres.PriorSessions.IsUUID: %v", err)
		return nil, err
	}

	var visits []model.Visit
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND visitor_email = ? AND session_id <> ?",
			campaignID, visitorEmail, excludeSessionID).
		Find(&visits).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.lookup.postgres.PriorSessions.Find: %v", err)
		return nil, err
	}
	return visits, nil
}
