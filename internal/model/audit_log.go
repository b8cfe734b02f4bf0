package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog maps to the audit_logs table. One row per administrative mutation.
type AuditLog struct {
	AuditID    int64          `gorm:"primaryKey;autoIncrement"           json:"audit_id"`
	UserID     *string        `gorm:"type:uuid"                          json:"user_id,omitempty"`
	Action     string         `gorm:"type:varchar(50);not null"          json:"action"`
	Resource   string         `gorm:"type:varchar(50);not null"          json:"resource"`
	ResourceID string         `gorm:"type:varchar(100)"                  json:"resource_id,omitempty"`
	Details    datatypes.JSON `gorm:"type:jsonb"                         json:"details,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the table name.
func (AuditLog) TableName() string { return "audit_logs" }
