package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/MattU27/301st-personnel-management-sub002/internal/dto"
	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
)

func setupPersonnel() (PersonnelService, *mockRepos) {
	repo, mocks := newMockRepos()
	return NewPersonnelService(repo, zap.NewNop()), mocks
}

func TestDefaultPassword(t *testing.T) {
	cases := []struct {
		serviceID string
		email     string
		want      string
	}{
		{"2019-123456", "x@afp.mil.ph", "Afp123456"},
		{"SVC-01", "x@afp.mil.ph", "AfpSVC-01"},
		{"", "maria.santos@afp.mil.ph", "Afpsantos"},
		{"", "ana@afp.mil.ph", "Afpana"},
	}
	for _, c := range cases {
		if got := defaultPassword(c.serviceID, c.email); got != c.want {
			t.Errorf("defaultPassword(%q, %q) = %q, want %q", c.serviceID, c.email, got, c.want)
		}
	}
}

func TestCreatePersonnel(t *testing.T) {
	svc, _ := setupPersonnel()

	res, err := svc.Create(context.Background(), &dto.CreatePersonnelRequest{
		FirstName: "Maria",
		LastName:  "Santos",
		Rank:      "Corporal",
		Email:     "maria.santos@afp.mil.ph",
		ServiceID: "2020-654321",
		Role:      model.RoleReservist,
		CompanyID: "alpha-id",
	}, "admin-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if res.Personnel.FullName != "Maria Santos" {
		t.Errorf("unexpected full name %q", res.Personnel.FullName)
	}
	if res.Personnel.Status != model.PersonnelStatusStandby {
		t.Errorf("expected standby default, got %q", res.Personnel.Status)
	}
	if res.TempPassword != "Afp654321" {
		t.Errorf("unexpected temp password %q", res.TempPassword)
	}
}

func TestCreatePersonnel_DuplicateEmail(t *testing.T) {
	svc, mocks := setupPersonnel()
	mocks.personnel.add(testPersonnel())

	_, err := svc.Create(context.Background(), &dto.CreatePersonnelRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "juan.delacruz@afp.mil.ph",
		Role:      model.RoleReservist,
	}, "admin-1")
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestCreatePersonnel_DuplicateServiceID(t *testing.T) {
	svc, mocks := setupPersonnel()
	mocks.personnel.add(testPersonnel())

	_, err := svc.Create(context.Background(), &dto.CreatePersonnelRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "other@afp.mil.ph",
		ServiceID: "SVC-001",
		Role:      model.RoleReservist,
	}, "admin-1")
	if !errors.Is(err, ErrServiceIDExists) {
		t.Errorf("expected ErrServiceIDExists, got %v", err)
	}
}

func TestCreatePersonnel_UnknownCompany(t *testing.T) {
	svc, _ := setupPersonnel()

	_, err := svc.Create(context.Background(), &dto.CreatePersonnelRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "other@afp.mil.ph",
		Role:      model.RoleReservist,
		CompanyID: "no-such-company",
	}, "admin-1")
	if !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestUpdatePersonnel_ReservistOwnRecordOnly(t *testing.T) {
	svc, mocks := setupPersonnel()
	mocks.personnel.add(testPersonnel())
	rank := "Staff Sergeant"

	_, err := svc.Update(context.Background(), "u1", &dto.UpdatePersonnelRequest{Rank: &rank},
		"someone-else", model.RoleReservist)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("expected ErrNoPermission for another record, got %v", err)
	}

	res, err := svc.Update(context.Background(), "u1", &dto.UpdatePersonnelRequest{Rank: &rank},
		"u1", model.RoleReservist)
	if err != nil {
		t.Fatalf("own record update failed: %v", err)
	}
	if res.Rank != "Staff Sergeant" {
		t.Errorf("rank not applied: %q", res.Rank)
	}
}

func TestUpdatePersonnel_ReservistCannotReassignCompany(t *testing.T) {
	svc, mocks := setupPersonnel()
	mocks.personnel.add(testPersonnel())
	companyID := "alpha-id"

	_, err := svc.Update(context.Background(), "u1", &dto.UpdatePersonnelRequest{CompanyID: &companyID},
		"u1", model.RoleReservist)
	if !errors.Is(err, ErrNoPermission) {
		t.Errorf("expected ErrNoPermission, got %v", err)
	}
}

func TestDeletePersonnel_Self(t *testing.T) {
	svc, mocks := setupPersonnel()
	mocks.personnel.add(testPersonnel())

	if err := svc.Delete(context.Background(), "u1", "u1"); !errors.Is(err, ErrSelfDelete) {
		t.Errorf("expected ErrSelfDelete, got %v", err)
	}
}

func TestAssignRole(t *testing.T) {
	svc, mocks := setupPersonnel()
	mocks.personnel.add(testPersonnel())

	if err := svc.AssignRole(context.Background(), "u1", &dto.AssignRoleRequest{Role: model.RoleStaff}, "u1"); !errors.Is(err, ErrSelfRoleChange) {
		t.Errorf("expected ErrSelfRoleChange, got %v", err)
	}

	if err := svc.AssignRole(context.Background(), "u1", &dto.AssignRoleRequest{Role: model.RoleStaff}, "director-1"); err != nil {
		t.Fatalf("AssignRole failed: %v", err)
	}
	p, _ := mocks.personnel.GetByID(context.Background(), "u1")
	if p.Role != model.RoleStaff {
		t.Errorf("role not applied: %q", p.Role)
	}
}

// ── import ──

func importWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range importHeader {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheet, col+"1", h)
	}
	for r, row := range rows {
		for c, v := range row {
			col, _ := excelize.ColumnNumberToName(c + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, r+2), v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestParseImportFile(t *testing.T) {
	svc, _ := setupPersonnel()

	buf := importWorkbook(t, [][]string{
		{"Maria", "Santos", "Corporal", "maria.santos@afp.mil.ph", "2020-654321", "Alpha Company"},
		{"", "", "", "", "", ""}, // blank row, skipped
		{"Ana", "Reyes", "", "ana.reyes@afp.mil.ph", "", ""},
	})

	rows, err := svc.ParseImportFile(buf)
	if err != nil {
		t.Fatalf("ParseImportFile failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Row != 2 || rows[0].Email != "maria.santos@afp.mil.ph" || rows[0].CompanyName != "Alpha Company" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Row != 4 || rows[1].FirstName != "Ana" {
		t.Errorf("unexpected second row: %+v", rows[1])
	}
}

func TestParseImportFile_NotAWorkbook(t *testing.T) {
	svc, _ := setupPersonnel()

	if _, err := svc.ParseImportFile(bytes.NewBufferString("not an xlsx")); err == nil {
		t.Error("expected error for malformed workbook")
	}
}

func TestImport_CollectsRowFailures(t *testing.T) {
	svc, mocks := setupPersonnel()
	mocks.personnel.add(testPersonnel())

	res, err := svc.Import(context.Background(), []ImportPersonnelRow{
		{Row: 2, FirstName: "Maria", LastName: "Santos", Email: "maria.santos@afp.mil.ph", CompanyName: "Alpha Company"},
		{Row: 3, FirstName: "Dup", LastName: "Email", Email: "juan.delacruz@afp.mil.ph"},
		{Row: 4, FirstName: "No", LastName: "Company", Email: "x@afp.mil.ph", CompanyName: "Ghost Company"},
		{Row: 5, FirstName: "", LastName: "Nameless", Email: "y@afp.mil.ph"},
	}, "admin-1")
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if res.Total != 4 || res.Success != 1 || res.Failed != 3 {
		t.Fatalf("unexpected summary: %+v", res)
	}
	failedRows := map[int]bool{}
	for _, e := range res.Errors {
		failedRows[e.Row] = true
	}
	for _, want := range []int{3, 4, 5} {
		if !failedRows[want] {
			t.Errorf("row %d should be reported failed: %+v", want, res.Errors)
		}
	}

	created, err := mocks.personnel.GetByEmail(context.Background(), "maria.santos@afp.mil.ph")
	if err != nil {
		t.Fatalf("imported record missing: %v", err)
	}
	if created.Role != model.RoleReservist || created.Status != model.PersonnelStatusStandby {
		t.Errorf("import defaults not applied: role=%q status=%q", created.Role, created.Status)
	}
	if created.CompanyID == nil || *created.CompanyID != "alpha-id" {
		t.Errorf("company not resolved by name: %v", created.CompanyID)
	}
}
