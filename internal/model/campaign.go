package model

import "time"

// Company is the owning organization of a campaign. Read-only lookup row.
type Company struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Domain    string    `gorm:"type:varchar(255)" json:"domain"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()" json:"created_at"`
}

// TableName implements the GORM tabler interface.
func (Company) TableName() string {
	return "companies"
}

// Campaign is a tracked outreach campaign. Read-only lookup row.
type Campaign struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CompanyID string    `gorm:"type:uuid;not null;index" json:"company_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()" json:"created_at"`
}

// TableName implements the GORM tabler interface.
func (Campaign) TableName() string {
	return "campaigns"
}

// User is the owning recipient of a campaign's alerts. Read-only lookup row.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	FullName  string    `gorm:"type:varchar(255)" json:"full_name"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()" json:"created_at"`
}

// TableName implements the GORM tabler interface.
func (User) TableName() string {
	return "users"
}

// CampaignContext is the minimal campaign/company snapshot the condition
// detector needs alongside one visit.
type CampaignContext struct {
	CampaignName string
	CompanyName  string
}
