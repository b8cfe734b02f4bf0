package model

import "time"

// Document verification statuses.
const (
	DocumentStatusPending  = "pending"
	DocumentStatusVerified = "verified"
	DocumentStatusRejected = "rejected"
)

// Document maps to the documents table. Only metadata is tracked here; file
// bodies live outside this system.
type Document struct {
	DocumentID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"document_id"`
	UserID     string     `gorm:"type:uuid;not null"                             json:"user_id"`
	Title      string     `gorm:"type:varchar(200);not null"                     json:"title"`
	Type       string     `gorm:"type:varchar(50)"                               json:"type,omitempty"`
	Status     string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	Remarks    string     `gorm:"type:text"                                      json:"remarks,omitempty"`
	VerifiedBy *string    `gorm:"type:uuid"                                      json:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName sets the table name.
func (Document) TableName() string { return "documents" }
