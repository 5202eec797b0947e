package postgres

import (
	"context"
	"time"

	"github.com/friendsofgo/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"visitor-alert-srv/internal/alert/repository"
	"visitor-alert-srv/internal/model"
	postgresPkg "visitor-alert-srv/pkg/postgre"
)

// dedupConflictColumns mirrors the ux_alerts_dedup unique index.
var dedupConflictColumns = []clause.Column{
	{Name: "user_id"},
	{Name: "campaign_id"},
	{Name: "visit_id"},
	{Name: "kind"},
	{Name: "dedup_bucket"},
}

func (r *implRepository) Create(ctx context.Context, opts repository.CreateOptions) (model.Alert, error) {
	alrt := opts.Alert
	if !alrt.Kind.IsValid() {
		return model.Alert{}, errors.Errorf("alert repository: unknown kind %q", alrt.Kind)
	}
	if alrt.ID == "" {
		alrt.ID = postgresPkg.NewUUID()
	}
	if alrt.CreatedAt.IsZero() {
		alrt.CreatedAt = r.clock().UTC()
	}
	alrt.DedupBucket = model.BucketFor(alrt.CreatedAt)

	// ON CONFLICT DO NOTHING on the dedup index: concurrent inserts of the
	// same (user, campaign, visit, kind) in one bucket collapse to one row
	// instead of racing past a read-then-write check.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: dedupConflictColumns, DoNothing: true}).
		Create(&alrt)
	if res.Error != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.Create.Create: %v", res.Error)
		return model.Alert{}, errors.Wrap(res.Error, "insert alert")
	}
	if res.RowsAffected == 0 {
		return model.Alert{}, repository.ErrDuplicate
	}

	return alrt, nil
}

func (r *implRepository) FindRecent(ctx context.Context, opts repository.RecentOptions) (model.Alert, error) {
	window := opts.Window
	if window <= 0 {
		window = model.DedupWindow
	}
	cutoff := r.clock().UTC().Add(-window)

	var alrt model.Alert
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND campaign_id = ? AND visit_id = ? AND kind = ? AND created_at > ?",
			opts.UserID, opts.CampaignID, opts.VisitID, opts.Kind, cutoff).
		Order("created_at DESC").
		First(&alrt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Alert{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.alert.repository.postgres.FindRecent.First: %v", err)
		return model.Alert{}, errors.Wrap(err, "find recent alert")
	}

	return alrt, nil
}

func (r *implRepository) PendingEmail(ctx context.Context, userID string, since time.Time) ([]model.Alert, error) {
	if err := postgresPkg.IsUUID(userID); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.PendingEmail.IsUUID: %v", err)
		return nil, err
	}

	var alerts []model.Alert
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND sent_via_email = ? AND created_at >= ?", userID, false, since).
		Order("created_at ASC").
		Find(&alerts).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.PendingEmail.Find: %v", err)
		return nil, errors.Wrap(err, "list pending alerts")
	}

	return alerts, nil
}

func sentColumn(channel model.AlertChannel) (string, bool) {
	switch channel {
	case model.ChannelEmail:
		return "sent_via_email", true
	case model.ChannelChat:
		return "sent_via_chat", true
	case model.ChannelWebhook:
		return "sent_via_webhook", true
	default:
		return "", false
	}
}

func (r *implRepository) MarkSent(ctx context.Context, id string, channel model.AlertChannel) error {
	column, ok := sentColumn(channel)
	if !ok {
		return errors.Errorf("alert repository: unknown channel %q", channel)
	}
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.MarkSent.IsUUID: %v", err)
		return err
	}

	err := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("id = ?", id).
		Update(column, true).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.MarkSent.Update: %v", err)
		return errors.Wrap(err, "mark alert sent")
	}

	return nil
}

func (r *implRepository) MarkEmailSent(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := postgresPkg.ValidateUUIDs(ids); err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.MarkEmailSent.ValidateUUIDs: %v", err)
		return err
	}

	err := r.db.WithContext(ctx).
		Model(&model.Alert{}).
		Where("id IN ?", ids).
		Update("sent_via_email", true).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.MarkEmailSent.Update: %v", err)
		return errors.Wrap(err, "mark alerts emailed")
	}

	return nil
}
