package model

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Email delivery modes.
const (
	EmailModeInstant = "instant"
	EmailModeDaily   = "daily"
)

// AlertSettings is the per-recipient alert configuration. Read-only to
// this service.
//
// The six per-kind toggles are stored but not consulted by the condition
// detector; only the global flag and the channel flags gate anything.
type AlertSettings struct {
	UserID string `gorm:"type:uuid;primaryKey" json:"user_id"`

	Enabled      bool   `gorm:"not null;default:true" json:"enabled"`
	EmailEnabled bool   `gorm:"column:email;not null;default:true" json:"email"`
	SlackEnabled bool   `gorm:"column:slack;not null;default:true" json:"slack"`
	InAppEnabled bool   `gorm:"column:in_app;not null;default:true" json:"in_app"`
	EmailDigest  string `gorm:"type:varchar(16);not null;default:'instant'" json:"email_digest"`

	SlackWebhookURL null.String `gorm:"type:varchar(512)" json:"slack_webhook_url,omitempty"`
	WebhookURL      null.String `gorm:"type:varchar(512)" json:"webhook_url,omitempty"`

	// Per-kind opt-outs. Unused by the detector today.
	NotifyHighValue      bool `gorm:"not null;default:true" json:"notify_high_value"`
	NotifyExecutive      bool `gorm:"not null;default:true" json:"notify_executive"`
	NotifyMultipleChats  bool `gorm:"not null;default:true" json:"notify_multiple_chats"`
	NotifyFormSubmission bool `gorm:"not null;default:true" json:"notify_form_submission"`
	NotifyCtaClicked     bool `gorm:"not null;default:true" json:"notify_cta_clicked"`
	NotifyReturning      bool `gorm:"not null;default:true" json:"notify_returning"`

	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now()" json:"updated_at"`
}

// TableName implements the GORM tabler interface.
func (AlertSettings) TableName() string {
	return "alert_settings"
}

// WantsInstantEmail reports whether the instant path may send email for
// this recipient. Digest-mode recipients are served by the daily batch only.
func (s AlertSettings) WantsInstantEmail() bool {
	return s.EmailEnabled && s.EmailDigest != EmailModeDaily
}

// WantsDigest reports whether the recipient is in daily digest mode.
func (s AlertSettings) WantsDigest() bool {
	return s.Enabled && s.EmailEnabled && s.EmailDigest == EmailModeDaily
}

// Recipient is a resolved alert recipient: the owning user of a campaign
// plus everything the dispatcher needs to reach them.
type Recipient struct {
	UserID   string
	Email    string
	Settings AlertSettings
}
