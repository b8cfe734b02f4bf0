package model

import "time"

// TrainingRegistration maps to the training_registrations table — the
// normalized representation. Exactly one row per (training_id, user_id),
// enforced by a unique constraint; this is the source of truth the system is
// migrating toward.
type TrainingRegistration struct {
	RegistrationID   string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"           json:"registration_id"`
	TrainingID       string           `gorm:"type:uuid;not null;uniqueIndex:uq_training_registration"  json:"training_id"`
	UserID           string           `gorm:"type:uuid;not null;uniqueIndex:uq_training_registration"  json:"user_id"`
	Status           string           `gorm:"type:varchar(20);not null;default:'registered'"           json:"status"`
	RegistrationDate time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"registration_date"`
	UserData         AttendeeUserData `gorm:"type:jsonb;not null;default:'{}'"                         json:"user_data"`
	CreatedAt        time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"created_at"`
	UpdatedAt        time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"                       json:"updated_at"`
}

// TableName sets the table name.
func (TrainingRegistration) TableName() string { return "training_registrations" }
