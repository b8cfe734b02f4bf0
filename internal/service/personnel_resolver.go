package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
	"github.com/MattU27/301st-personnel-management-sub002/internal/repository"
)

// MatchConfidence grades how a personnel record was matched to an attendee.
// Callers can decide whether to trust a low-confidence (name-based) match.
type MatchConfidence int

const (
	ConfidenceNone  MatchConfidence = iota
	ConfidenceLow                   // case-insensitive full-name match
	ConfidenceHigh                  // email or service-number match
	ConfidenceExact                 // primary-key match
)

// String names the confidence level.
func (c MatchConfidence) String() string {
	switch c {
	case ConfidenceExact:
		return "exact"
	case ConfidenceHigh:
		return "high"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// ResolvedPersonnel is one resolver hit.
type ResolvedPersonnel struct {
	Record     *model.Personnel
	Confidence MatchConfidence
	Method     string // "user_id" | "email" | "service_id" | "full_name"
}

// PersonnelResolver resolves a possibly-stale attendee reference to its
// current authoritative personnel record, trying an ordered list of
// strategies: primary key, then email, then service number, then
// case-insensitive full name. First match wins.
type PersonnelResolver interface {
	Resolve(ctx context.Context, a *model.Attendee) (*ResolvedPersonnel, error)
}

type personnelResolver struct {
	personnel repository.PersonnelRepository
}

// NewPersonnelResolver creates a resolver over the personnel repository.
func NewPersonnelResolver(personnel repository.PersonnelRepository) PersonnelResolver {
	return &personnelResolver{personnel: personnel}
}

// Resolve returns nil without error when no strategy matches; database
// errors other than not-found propagate.
func (r *personnelResolver) Resolve(ctx context.Context, a *model.Attendee) (*ResolvedPersonnel, error) {
	if a.UserID != "" {
		p, err := r.personnel.GetByID(ctx, a.UserID)
		if err == nil {
			return &ResolvedPersonnel{Record: p, Confidence: ConfidenceExact, Method: "user_id"}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if a.UserData.Email != "" {
		p, err := r.personnel.GetByEmail(ctx, a.UserData.Email)
		if err == nil {
			return &ResolvedPersonnel{Record: p, Confidence: ConfidenceHigh, Method: "email"}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if a.UserData.ServiceID != "" {
		p, err := r.personnel.GetByServiceID(ctx, a.UserData.ServiceID)
		if err == nil {
			return &ResolvedPersonnel{Record: p, Confidence: ConfidenceHigh, Method: "service_id"}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	first, last := snapshotName(&a.UserData)
	if first != "" && last != "" {
		p, err := r.personnel.GetByFullName(ctx, first, last)
		if err == nil {
			return &ResolvedPersonnel{Record: p, Confidence: ConfidenceLow, Method: "full_name"}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, nil
}

// snapshotName extracts a first/last pair from the snapshot, splitting the
// full name when the parts are missing.
func snapshotName(d *model.AttendeeUserData) (string, string) {
	first, last := d.FirstName, d.LastName
	if (first == "" || last == "") && d.FullName != "" {
		parts := strings.Fields(d.FullName)
		if len(parts) >= 2 {
			if first == "" {
				first = parts[0]
			}
			if last == "" {
				last = parts[len(parts)-1]
			}
		}
	}
	return first, last
}

// placeholder values that must never be propagated into a refreshed snapshot.
func isPlaceholder(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "n/a", "unassigned":
		return true
	}
	return false
}

// RefreshUserData rebuilds an attendee's denormalized snapshot from the
// authoritative personnel record, preserving fields the overwrite does not
// cover. Pure transform; the caller persists the result.
func RefreshUserData(a model.Attendee, p *model.Personnel) model.Attendee {
	a.UserData.FirstName = p.FirstName
	a.UserData.LastName = p.LastName
	a.UserData.FullName = p.FullName()
	a.UserData.Rank = p.Rank
	a.UserData.Company = p.CompanyName()
	a.UserData.Email = p.Email
	a.UserData.ServiceID = p.ServiceID
	return a
}

// RepairUserData is the best-effort fallback when no personnel record was
// found: placeholders are blanked, and missing first/last names are derived
// from the email local-part ("juan.delacruz@x" yields "Juan" "Delacruz").
// Pure transform.
func RepairUserData(a model.Attendee) model.Attendee {
	d := &a.UserData

	if isPlaceholder(d.FirstName) {
		d.FirstName = ""
	}
	if isPlaceholder(d.LastName) {
		d.LastName = ""
	}
	if isPlaceholder(d.FullName) {
		d.FullName = ""
	}
	if isPlaceholder(d.Rank) {
		d.Rank = ""
	}
	if isPlaceholder(d.Company) {
		d.Company = ""
	}

	if (d.FirstName == "" || d.LastName == "") && d.Email != "" {
		first, last := nameFromEmail(d.Email)
		if d.FirstName == "" {
			d.FirstName = first
		}
		if d.LastName == "" {
			d.LastName = last
		}
	}

	if d.FullName == "" {
		d.FullName = strings.TrimSpace(d.FirstName + " " + d.LastName)
	}

	return a
}

// nameFromEmail splits an email local-part on "." and capitalizes the first
// two segments.
func nameFromEmail(email string) (string, string) {
	local := email
	if i := strings.Index(email, "@"); i >= 0 {
		local = email[:i]
	}
	parts := strings.Split(local, ".")

	var first, last string
	if len(parts) > 0 {
		first = capitalize(parts[0])
	}
	if len(parts) > 1 {
		last = capitalize(parts[1])
	}
	return first, last
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
