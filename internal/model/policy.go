package model

import "time"

// Policy statuses.
const (
	PolicyStatusDraft     = "draft"
	PolicyStatusPublished = "published"
	PolicyStatusArchived  = "archived"
)

// Policy maps to the policies table.
type Policy struct {
	PolicyID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"policy_id"`
	Title         string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Description   string     `gorm:"type:text"                                      json:"description,omitempty"`
	Category      string     `gorm:"type:varchar(50)"                               json:"category,omitempty"`
	Status        string     `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"`
	EffectiveDate *time.Time `json:"effective_date,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (Policy) TableName() string { return "policies" }
