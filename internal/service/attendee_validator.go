package service

import (
	"fmt"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
)

// Removal reasons recorded when an attendee entry is excluded.
const (
	ReasonMissingUserID   = "missing userId"
	ReasonDuplicateUserID = "duplicate userId"
	ReasonMissingUserData = "missing user data"
)

// ReasonInvalidStatus builds the removal reason for an unrecognized status.
func ReasonInvalidStatus(status string) string {
	return fmt.Sprintf("invalid status: %s", status)
}

// RemovedEntry is one attendee excluded during validation.
type RemovedEntry struct {
	Attendee model.Attendee
	Reason   string
}

// ValidationResult partitions an attendee list into the entries worth keeping
// and the entries excluded, each exclusion tagged with its reason.
type ValidationResult struct {
	Valid   []model.Attendee
	Removed []RemovedEntry
}

// ValidateAttendees partitions a training's attendee list. The checks run in
// a fixed precedence per entry, first match wins:
//
//  1. missing user reference
//  2. status outside the canonical set (a missing status is read as
//     "registered" and accepted)
//  3. user reference already seen earlier in the list
//  4. no usable display name in the snapshot
//
// Valid entries keep their original relative order; on duplicates the first
// occurrence wins. Pure function, no side effects.
func ValidateAttendees(attendees model.AttendeeList) ValidationResult {
	result := ValidationResult{
		Valid:   make([]model.Attendee, 0, len(attendees)),
		Removed: nil,
	}

	seen := make(map[string]bool, len(attendees))

	for _, a := range attendees {
		if a.UserID == "" {
			result.Removed = append(result.Removed, RemovedEntry{Attendee: a, Reason: ReasonMissingUserID})
			continue
		}
		if !model.ValidAttendeeStatus(a.Status) {
			result.Removed = append(result.Removed, RemovedEntry{Attendee: a, Reason: ReasonInvalidStatus(a.Status)})
			continue
		}
		if seen[a.UserID] {
			result.Removed = append(result.Removed, RemovedEntry{Attendee: a, Reason: ReasonDuplicateUserID})
			continue
		}
		seen[a.UserID] = true

		if !a.UserData.HasName() {
			result.Removed = append(result.Removed, RemovedEntry{Attendee: a, Reason: ReasonMissingUserData})
			continue
		}

		result.Valid = append(result.Valid, a)
	}

	return result
}
