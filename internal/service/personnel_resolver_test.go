package service

import (
	"context"
	"testing"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
)

func testPersonnel() *model.Personnel {
	companyID := "alpha-id"
	return &model.Personnel{
		UserID:    "u1",
		FirstName: "Juan",
		LastName:  "Delacruz",
		Rank:      "Sergeant",
		Email:     "juan.delacruz@afp.mil.ph",
		ServiceID: "SVC-001",
		CompanyID: &companyID,
		Company:   &model.Company{CompanyID: "alpha-id", Name: "Alpha Company", Code: "ALPHA"},
	}
}

func TestResolve_ByUserID(t *testing.T) {
	repo := newMockPersonnelRepo()
	repo.add(testPersonnel())
	r := NewPersonnelResolver(repo)

	a := &model.Attendee{UserID: "u1"}
	resolved, err := r.Resolve(context.Background(), a)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved == nil {
		t.Fatal("expected a match")
	}
	if resolved.Confidence != ConfidenceExact || resolved.Method != "user_id" {
		t.Errorf("expected exact/user_id, got %s/%s", resolved.Confidence, resolved.Method)
	}
}

func TestResolve_FallsBackToEmail(t *testing.T) {
	repo := newMockPersonnelRepo()
	repo.add(testPersonnel())
	r := NewPersonnelResolver(repo)

	// stale user reference, live email
	a := &model.Attendee{
		UserID:   "deleted-id",
		UserData: model.AttendeeUserData{Email: "juan.delacruz@afp.mil.ph"},
	}
	resolved, err := r.Resolve(context.Background(), a)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved == nil {
		t.Fatal("expected a match via email")
	}
	if resolved.Confidence != ConfidenceHigh || resolved.Method != "email" {
		t.Errorf("expected high/email, got %s/%s", resolved.Confidence, resolved.Method)
	}
	if resolved.Record.UserID != "u1" {
		t.Errorf("expected record u1, got %s", resolved.Record.UserID)
	}
}

func TestResolve_FallsBackToServiceID(t *testing.T) {
	repo := newMockPersonnelRepo()
	repo.add(testPersonnel())
	r := NewPersonnelResolver(repo)

	a := &model.Attendee{
		UserID:   "deleted-id",
		UserData: model.AttendeeUserData{ServiceID: "SVC-001"},
	}
	resolved, err := r.Resolve(context.Background(), a)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved == nil || resolved.Method != "service_id" {
		t.Fatalf("expected service_id match, got %+v", resolved)
	}
}

func TestResolve_FullNameIsLowConfidence(t *testing.T) {
	repo := newMockPersonnelRepo()
	repo.add(testPersonnel())
	r := NewPersonnelResolver(repo)

	a := &model.Attendee{
		UserID:   "deleted-id",
		UserData: model.AttendeeUserData{FullName: "juan delacruz"},
	}
	resolved, err := r.Resolve(context.Background(), a)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved == nil {
		t.Fatal("expected a full-name match")
	}
	if resolved.Confidence != ConfidenceLow || resolved.Method != "full_name" {
		t.Errorf("expected low/full_name, got %s/%s", resolved.Confidence, resolved.Method)
	}
}

func TestResolve_NoMatch(t *testing.T) {
	r := NewPersonnelResolver(newMockPersonnelRepo())

	a := &model.Attendee{
		UserID:   "nobody",
		UserData: model.AttendeeUserData{Email: "nobody@afp.mil.ph", FullName: "No Body"},
	}
	resolved, err := r.Resolve(context.Background(), a)
	if err != nil {
		t.Fatalf("a full miss must not be an error: %v", err)
	}
	if resolved != nil {
		t.Errorf("expected nil, got %+v", resolved)
	}
}

func TestRefreshUserData_OverwritesStaleSnapshot(t *testing.T) {
	a := model.Attendee{
		UserID: "u1",
		Status: model.AttendeeStatusAttended,
		UserData: model.AttendeeUserData{
			FirstName: "Jaun", // typo gone stale
			LastName:  "Dela Cruz",
			Rank:      "Private",
			Company:   "Bravo Company",
		},
	}

	refreshed := RefreshUserData(a, testPersonnel())

	if refreshed.UserData.FirstName != "Juan" || refreshed.UserData.LastName != "Delacruz" {
		t.Errorf("name not refreshed: %+v", refreshed.UserData)
	}
	if refreshed.UserData.Rank != "Sergeant" {
		t.Errorf("expected rank Sergeant, got %q", refreshed.UserData.Rank)
	}
	if refreshed.UserData.Company != "Alpha Company" {
		t.Errorf("expected company from association, got %q", refreshed.UserData.Company)
	}
	if refreshed.Status != model.AttendeeStatusAttended {
		t.Errorf("status must be untouched, got %q", refreshed.Status)
	}
	if a.UserData.FirstName != "Jaun" {
		t.Error("input attendee must not be mutated")
	}
}

func TestRepairUserData_BlanksPlaceholders(t *testing.T) {
	a := model.Attendee{
		UserID: "u9",
		UserData: model.AttendeeUserData{
			FirstName: "N/A",
			LastName:  "n/a",
			Rank:      "N/A",
			Company:   "Unassigned",
			Email:     "maria.santos@afp.mil.ph",
		},
	}

	repaired := RepairUserData(a)

	if repaired.UserData.Rank != "" {
		t.Errorf("placeholder rank should be blanked, got %q", repaired.UserData.Rank)
	}
	if repaired.UserData.Company != "" {
		t.Errorf("placeholder company should be blanked, got %q", repaired.UserData.Company)
	}
	if repaired.UserData.FirstName != "Maria" || repaired.UserData.LastName != "Santos" {
		t.Errorf("expected names derived from email, got %q %q",
			repaired.UserData.FirstName, repaired.UserData.LastName)
	}
	if repaired.UserData.FullName != "Maria Santos" {
		t.Errorf("expected full name rebuilt, got %q", repaired.UserData.FullName)
	}
}

func TestRepairUserData_KeepsRealValues(t *testing.T) {
	a := model.Attendee{
		UserID: "u9",
		UserData: model.AttendeeUserData{
			FirstName: "Pedro",
			LastName:  "Ramos",
			FullName:  "Pedro Ramos",
			Rank:      "Corporal",
		},
	}

	repaired := RepairUserData(a)

	if repaired.UserData != a.UserData {
		t.Errorf("nothing should change for a clean snapshot: %+v", repaired.UserData)
	}
}

func TestRepairUserData_SingleSegmentEmail(t *testing.T) {
	a := model.Attendee{
		UserID:   "u9",
		UserData: model.AttendeeUserData{Email: "admin@afp.mil.ph"},
	}

	repaired := RepairUserData(a)

	if repaired.UserData.FirstName != "Admin" {
		t.Errorf("expected first name Admin, got %q", repaired.UserData.FirstName)
	}
	if repaired.UserData.LastName != "" {
		t.Errorf("expected empty last name, got %q", repaired.UserData.LastName)
	}
	if repaired.UserData.FullName != "Admin" {
		t.Errorf("expected full name Admin, got %q", repaired.UserData.FullName)
	}
}
