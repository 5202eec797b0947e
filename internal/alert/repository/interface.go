package repository

import (
	"context"
	"time"

	"visitor-alert-srv/internal/model"
)

// Repository is the durable store of notification decisions.
type Repository interface {
	// Create inserts a new alert with all sent flags false. Returns
	// ErrDuplicate when another alert with the same
	// (user, campaign, visit, kind) already occupies the dedup bucket.
	Create(ctx context.Context, opts CreateOptions) (model.Alert, error)

	// FindRecent returns the most recent alert for the given
	// (user, campaign, visit, kind) created within the window, or
	// ErrNotFound.
	FindRecent(ctx context.Context, opts RecentOptions) (model.Alert, error)

	// PendingEmail returns every alert for the user created at or after
	// since whose email flag is still false, oldest first.
	PendingEmail(ctx context.Context, userID string, since time.Time) ([]model.Alert, error)

	// MarkSent flips one channel's sent flag on one alert. Idempotent.
	MarkSent(ctx context.Context, id string, channel model.AlertChannel) error

	// MarkEmailSent flips the email flag on the given alerts in one
	// bulk update.
	MarkEmailSent(ctx context.Context, ids []string) error
}
