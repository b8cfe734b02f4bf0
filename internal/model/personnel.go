package model

import "strings"

// Personnel roles.
const (
	RoleReservist = "reservist"
	RoleStaff     = "staff"
	RoleAdmin     = "admin"
	RoleDirector  = "director"
)

// Personnel readiness statuses.
const (
	PersonnelStatusReady   = "ready"
	PersonnelStatusStandby = "standby"
	PersonnelStatusRetired = "retired"
)

// Personnel maps to the personnel table. It is the authoritative record for a
// person's name, rank, company, email and service identifiers; the
// reconciliation paths only ever read it.
type Personnel struct {
	UserID           string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	FirstName        string  `gorm:"type:varchar(100);not null"                     json:"first_name"`
	LastName         string  `gorm:"type:varchar(100);not null"                     json:"last_name"`
	Rank             string  `gorm:"type:varchar(50)"                               json:"rank,omitempty"`
	CompanyID        *string `gorm:"type:uuid"                                      json:"company_id,omitempty"`
	Email            string  `gorm:"type:varchar(255);not null"                     json:"email"`
	AlternativeEmail string  `gorm:"type:varchar(255)"                              json:"alternative_email,omitempty"`
	ServiceID        string  `gorm:"type:varchar(50)"                               json:"service_id,omitempty"`
	Role             string  `gorm:"type:varchar(20);not null;default:'reservist'"  json:"role"`
	Status           string  `gorm:"type:varchar(20);not null;default:'standby'"    json:"status"`
	PasswordHash     string  `gorm:"type:varchar(255);not null"                     json:"-"`
	VersionedModel

	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

// TableName sets the table name.
func (Personnel) TableName() string { return "personnel" }

// FullName returns "first last" trimmed.
func (p *Personnel) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// CompanyName returns the company name when the association is loaded.
func (p *Personnel) CompanyName() string {
	if p.Company != nil {
		return p.Company.Name
	}
	return ""
}
