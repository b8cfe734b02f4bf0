package model

import "time"

// Announcement priorities.
const (
	AnnouncementPriorityLow    = "low"
	AnnouncementPriorityNormal = "normal"
	AnnouncementPriorityHigh   = "high"
	AnnouncementPriorityUrgent = "urgent"
)

// Announcement maps to the announcements table.
type Announcement struct {
	AnnouncementID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"announcement_id"`
	Title          string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string     `gorm:"type:text;not null"                             json:"content"`
	Priority       string     `gorm:"type:varchar(20);not null;default:'normal'"     json:"priority"`
	Published      bool       `gorm:"not null;default:false"                         json:"published"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (Announcement) TableName() string { return "announcements" }
