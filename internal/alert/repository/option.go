package repository

import (
	"time"

	"visitor-alert-srv/internal/model"
)

// CreateOptions contains options for creating an alert. ID and CreatedAt
// are filled by the repository when zero.
type CreateOptions struct {
	Alert model.Alert
}

// RecentOptions identifies the dedup triple and lookback window for
// FindRecent.
type RecentOptions struct {
	UserID     string
	CampaignID string
	VisitID    string
	Kind       model.AlertKind
	Window     time.Duration
}
