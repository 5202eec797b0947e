package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/friendsofgo/errors"
)

// AlertKind is the closed set of conditions the engine detects.
// One visit may produce several kinds at once.
type AlertKind string

const (
	AlertKindHighValueVisitor     AlertKind = "high_value_visitor"
	AlertKindExecutiveVisit       AlertKind = "executive_visit"
	AlertKindMultipleChatMessages AlertKind = "multiple_chat_messages"
	AlertKindFormSubmission       AlertKind = "form_submission"
	AlertKindCtaClicked           AlertKind = "cta_clicked"
	AlertKindReturningVisitor     AlertKind = "returning_visitor"
)

// IsValid checks if the alert kind is a known value.
func (k AlertKind) IsValid() bool {
	switch k {
	case AlertKindHighValueVisitor,
		AlertKindExecutiveVisit,
		AlertKindMultipleChatMessages,
		AlertKindFormSubmission,
		AlertKindCtaClicked,
		AlertKindReturningVisitor:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k AlertKind) String() string {
	return string(k)
}

// DedupWindow is the interval during which a repeat
// (user, campaign, visit, kind) is suppressed.
const DedupWindow = 60 * time.Minute

// JSONB is the open contextual payload attached to an alert.
// Shape varies by kind.
type JSONB map[string]any

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value any) error {
	if value == nil {
		*j = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("model: cannot scan JSONB value")
	}
	return json.Unmarshal(b, j)
}

// Alert is one persisted notification decision tied to a visit and a kind.
// The three sent flags are flipped independently, each at most once, by
// whichever channel attempt succeeds. Rows are never deleted here.
type Alert struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;index:idx_alerts_user_created,priority:1;uniqueIndex:ux_alerts_dedup,priority:1" json:"user_id"`
	CampaignID string    `gorm:"type:uuid;not null;uniqueIndex:ux_alerts_dedup,priority:2" json:"campaign_id"`
	VisitID    string    `gorm:"type:uuid;not null;uniqueIndex:ux_alerts_dedup,priority:3" json:"visit_id"`
	Kind       AlertKind `gorm:"type:varchar(32);not null;uniqueIndex:ux_alerts_dedup,priority:4" json:"kind"`
	Title      string    `gorm:"type:varchar(255);not null" json:"title"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	Data       JSONB     `gorm:"type:jsonb" json:"data,omitempty"`

	SentViaEmail   bool `gorm:"not null;default:false" json:"sent_via_email"`
	SentViaChat    bool `gorm:"not null;default:false" json:"sent_via_chat"`
	SentViaWebhook bool `gorm:"not null;default:false" json:"sent_via_webhook"`

	// DedupBucket is floor(created_at / 60min). The composite unique index
	// on (user, campaign, visit, kind, bucket) closes the check-then-insert
	// race; rolling-window semantics come from the repository recency query.
	DedupBucket int64     `gorm:"not null;uniqueIndex:ux_alerts_dedup,priority:5" json:"-"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now();index:idx_alerts_user_created,priority:2" json:"created_at"`
}

// TableName implements the GORM tabler interface.
func (Alert) TableName() string {
	return "alerts"
}

// BucketFor returns the dedup bucket for the given creation time.
func BucketFor(t time.Time) int64 {
	return t.Unix() / int64(DedupWindow/time.Second)
}

// AlertChannel identifies one of the three delivery transports.
type AlertChannel string

const (
	ChannelEmail   AlertChannel = "email"
	ChannelChat    AlertChannel = "chat"
	ChannelWebhook AlertChannel = "webhook"
)
