package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Training statuses.
const (
	TrainingStatusUpcoming  = "upcoming"
	TrainingStatusOngoing   = "ongoing"
	TrainingStatusCompleted = "completed"
	TrainingStatusCancelled = "cancelled"
)

// Attendee statuses. A missing status on a legacy entry is read as
// "registered".
const (
	AttendeeStatusRegistered = "registered"
	AttendeeStatusAttended   = "attended"
	AttendeeStatusCompleted  = "completed"
	AttendeeStatusAbsent     = "absent"
	AttendeeStatusExcused    = "excused"
)

// ValidAttendeeStatus reports whether s is in the canonical attendee status
// set. The empty string is accepted and treated as "registered".
func ValidAttendeeStatus(s string) bool {
	switch s {
	case "", AttendeeStatusRegistered, AttendeeStatusAttended,
		AttendeeStatusCompleted, AttendeeStatusAbsent, AttendeeStatusExcused:
		return true
	}
	return false
}

// AttendeeUserData is the denormalized snapshot of a person's display data
// carried inside an attendee entry. It can go stale; the refresher rebuilds
// it from the personnel record.
type AttendeeUserData struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	Rank      string `json:"rank,omitempty"`
	Company   string `json:"company,omitempty"`
	Email     string `json:"email,omitempty"`
	ServiceID string `json:"service_id,omitempty"`
}

// Scan implements sql.Scanner for a jsonb column.
func (d *AttendeeUserData) Scan(src interface{}) error {
	if src == nil {
		*d = AttendeeUserData{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("AttendeeUserData.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, d)
}

// Value implements driver.Valuer for a jsonb column.
func (d AttendeeUserData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// HasName reports whether the snapshot carries any usable display name.
func (d *AttendeeUserData) HasName() bool {
	return d.FirstName != "" || d.LastName != "" || d.FullName != ""
}

// Attendee is one embedded registration entry inside a training. Legacy
// entries may lack the user reference, the status, or parts of the snapshot.
type Attendee struct {
	UserID           string           `json:"user_id,omitempty"`
	Status           string           `json:"status,omitempty"`
	RegistrationDate *time.Time       `json:"registration_date,omitempty"`
	UserData         AttendeeUserData `json:"user_data"`
}

// EffectiveStatus returns the entry's status, defaulting a missing status to
// "registered".
func (a *Attendee) EffectiveStatus() string {
	if a.Status == "" {
		return AttendeeStatusRegistered
	}
	return a.Status
}

// AttendeeList maps the trainings.attendees jsonb column, implementing the
// GORM Scanner/Valuer interfaces.
type AttendeeList []Attendee

// Scan parses the jsonb payload into the list.
func (l *AttendeeList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("AttendeeList.Scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		*l = AttendeeList{}
		return nil
	}
	return json.Unmarshal(b, l)
}

// Value serializes the list as jsonb. A nil list is stored as [].
func (l AttendeeList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Training maps to the trainings table — the embedded representation.
// Registered is a cached counter the reconciler keeps in step with the
// attendee list (or the normalized rows, per deployment policy).
type Training struct {
	TrainingID  string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"training_id"`
	Title       string       `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string       `gorm:"type:text"                                      json:"description,omitempty"`
	Type        string       `gorm:"type:varchar(50)"                               json:"type,omitempty"`
	Location    string       `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	StartDate   time.Time    `gorm:"not null"                                       json:"start_date"`
	EndDate     time.Time    `gorm:"not null"                                       json:"end_date"`
	Capacity    *int         `json:"capacity,omitempty"`
	Status      string       `gorm:"type:varchar(20);not null;default:'upcoming'"   json:"status"`
	Registered  int          `gorm:"not null;default:0"                             json:"registered"`
	Attendees   AttendeeList `gorm:"type:jsonb;not null;default:'[]'"               json:"attendees"`
	BaseModel
	Version int `gorm:"not null;default:1" json:"version"`
}

// TableName sets the table name.
func (Training) TableName() string { return "trainings" }
