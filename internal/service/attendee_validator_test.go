package service

import (
	"testing"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
)

func namedAttendee(userID, first, last string) model.Attendee {
	return model.Attendee{
		UserID: userID,
		Status: model.AttendeeStatusRegistered,
		UserData: model.AttendeeUserData{
			FirstName: first,
			LastName:  last,
			FullName:  first + " " + last,
		},
	}
}

func TestValidateAttendees_AllValid(t *testing.T) {
	list := model.AttendeeList{
		namedAttendee("u1", "Juan", "Delacruz"),
		namedAttendee("u2", "Maria", "Santos"),
	}

	res := ValidateAttendees(list)

	if len(res.Valid) != 2 {
		t.Fatalf("expected 2 valid, got %d", len(res.Valid))
	}
	if len(res.Removed) != 0 {
		t.Errorf("expected 0 removed, got %d", len(res.Removed))
	}
}

func TestValidateAttendees_MissingUserID(t *testing.T) {
	list := model.AttendeeList{
		{Status: model.AttendeeStatusRegistered, UserData: model.AttendeeUserData{FullName: "Ghost Entry"}},
	}

	res := ValidateAttendees(list)

	if len(res.Valid) != 0 {
		t.Fatalf("expected 0 valid, got %d", len(res.Valid))
	}
	if len(res.Removed) != 1 || res.Removed[0].Reason != ReasonMissingUserID {
		t.Errorf("expected removal with %q, got %+v", ReasonMissingUserID, res.Removed)
	}
}

func TestValidateAttendees_InvalidStatus(t *testing.T) {
	a := namedAttendee("u1", "Juan", "Delacruz")
	a.Status = "enrolled"

	res := ValidateAttendees(model.AttendeeList{a})

	if len(res.Valid) != 0 {
		t.Fatalf("expected 0 valid, got %d", len(res.Valid))
	}
	want := ReasonInvalidStatus("enrolled")
	if len(res.Removed) != 1 || res.Removed[0].Reason != want {
		t.Errorf("expected removal with %q, got %+v", want, res.Removed)
	}
}

func TestValidateAttendees_MissingStatusAccepted(t *testing.T) {
	a := namedAttendee("u1", "Juan", "Delacruz")
	a.Status = ""

	res := ValidateAttendees(model.AttendeeList{a})

	if len(res.Valid) != 1 {
		t.Fatalf("expected legacy entry without status to be valid, removed: %+v", res.Removed)
	}
	if res.Valid[0].EffectiveStatus() != model.AttendeeStatusRegistered {
		t.Errorf("expected effective status registered, got %q", res.Valid[0].EffectiveStatus())
	}
}

func TestValidateAttendees_DuplicateFirstWins(t *testing.T) {
	first := namedAttendee("u1", "Juan", "Delacruz")
	first.Status = model.AttendeeStatusAttended
	second := namedAttendee("u1", "Juan", "Delacruz")

	res := ValidateAttendees(model.AttendeeList{first, second})

	if len(res.Valid) != 1 {
		t.Fatalf("expected 1 valid, got %d", len(res.Valid))
	}
	if res.Valid[0].Status != model.AttendeeStatusAttended {
		t.Errorf("first occurrence should win, got status %q", res.Valid[0].Status)
	}
	if len(res.Removed) != 1 || res.Removed[0].Reason != ReasonDuplicateUserID {
		t.Errorf("expected duplicate removal, got %+v", res.Removed)
	}
}

func TestValidateAttendees_MissingUserData(t *testing.T) {
	list := model.AttendeeList{
		{UserID: "u1", Status: model.AttendeeStatusRegistered},
	}

	res := ValidateAttendees(list)

	if len(res.Removed) != 1 || res.Removed[0].Reason != ReasonMissingUserData {
		t.Errorf("expected %q removal, got %+v", ReasonMissingUserData, res.Removed)
	}
}

// An entry failing several checks is removed for the first failing one only.
func TestValidateAttendees_ReasonPrecedence(t *testing.T) {
	cases := []struct {
		name string
		a    model.Attendee
		want string
	}{
		{
			name: "missing id beats invalid status",
			a:    model.Attendee{Status: "bogus"},
			want: ReasonMissingUserID,
		},
		{
			name: "invalid status beats missing user data",
			a:    model.Attendee{UserID: "u9", Status: "bogus"},
			want: ReasonInvalidStatus("bogus"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := ValidateAttendees(model.AttendeeList{tc.a})
			if len(res.Removed) != 1 || res.Removed[0].Reason != tc.want {
				t.Errorf("expected %q, got %+v", tc.want, res.Removed)
			}
		})
	}
}

// A duplicate of an entry that was itself removed for missing user data still
// counts as a duplicate: the id was seen, even though it never became valid.
func TestValidateAttendees_DuplicateOfRemovedEntry(t *testing.T) {
	noName := model.Attendee{UserID: "u1", Status: model.AttendeeStatusRegistered}
	named := namedAttendee("u1", "Juan", "Delacruz")

	res := ValidateAttendees(model.AttendeeList{noName, named})

	if len(res.Valid) != 0 {
		t.Fatalf("expected 0 valid, got %d", len(res.Valid))
	}
	if len(res.Removed) != 2 {
		t.Fatalf("expected 2 removed, got %d", len(res.Removed))
	}
	if res.Removed[0].Reason != ReasonMissingUserData {
		t.Errorf("first removal: expected %q, got %q", ReasonMissingUserData, res.Removed[0].Reason)
	}
	if res.Removed[1].Reason != ReasonDuplicateUserID {
		t.Errorf("second removal: expected %q, got %q", ReasonDuplicateUserID, res.Removed[1].Reason)
	}
}

func TestValidateAttendees_OrderPreserved(t *testing.T) {
	list := model.AttendeeList{
		namedAttendee("u3", "Ana", "Reyes"),
		{Status: "x"}, // removed
		namedAttendee("u1", "Juan", "Delacruz"),
		namedAttendee("u2", "Maria", "Santos"),
	}

	res := ValidateAttendees(list)

	wantOrder := []string{"u3", "u1", "u2"}
	if len(res.Valid) != len(wantOrder) {
		t.Fatalf("expected %d valid, got %d", len(wantOrder), len(res.Valid))
	}
	for i, want := range wantOrder {
		if res.Valid[i].UserID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, res.Valid[i].UserID)
		}
	}
}

func TestValidateAttendees_EmptyList(t *testing.T) {
	res := ValidateAttendees(nil)

	if len(res.Valid) != 0 || len(res.Removed) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}
