package model

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Visit is one visitor engagement snapshot, produced by the tracking
// subsystem. Read-only to this service.
type Visit struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID string `gorm:"type:uuid;not null;index" json:"campaign_id"`

	// SessionID distinguishes repeat visits by the same visitor.
	SessionID string `gorm:"type:varchar(64);not null;index" json:"session_id"`

	VisitorEmail   null.String `gorm:"type:varchar(255)" json:"visitor_email,omitempty"`
	VisitorName    null.String `gorm:"type:varchar(255)" json:"visitor_name,omitempty"`
	VisitorCompany null.String `gorm:"type:varchar(255)" json:"visitor_company,omitempty"`
	VisitorTitle   null.String `gorm:"type:varchar(255)" json:"visitor_title,omitempty"`

	ChatMessages  int  `gorm:"not null;default:0" json:"chat_messages"`
	TimeOnPage    int  `gorm:"not null;default:0" json:"time_on_page"`
	CtaClicked    bool `gorm:"not null;default:false" json:"cta_clicked"`
	FormSubmitted bool `gorm:"not null;default:false" json:"form_submitted"`

	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()" json:"created_at"`
}

// TableName implements the GORM tabler interface.
func (Visit) TableName() string {
	return "visits"
}
