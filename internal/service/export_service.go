package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
	"github.com/MattU27/301st-personnel-management-sub002/internal/repository"
)

var (
	ErrExportNoAttendees  = errors.New("training has no attendees to export")
	ErrExportGenerateFail = errors.New("generating export file failed")
)

// ExportService produces downloadable artifacts: training rosters as Excel
// workbooks and the training schedule as an iCalendar feed. Buffers are
// returned for the handler layer to write out with the right headers.
type ExportService interface {
	// ExportRoster exports a training's attendee roster as xlsx.
	ExportRoster(ctx context.Context, trainingID string) (*bytes.Buffer, string, error)
	// ExportCalendar exports the non-cancelled training schedule as RFC 5545.
	ExportCalendar(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo     *repository.Repository
	resolver PersonnelResolver
	logger   *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, resolver PersonnelResolver, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, resolver: resolver, logger: logger}
}

var rosterHeader = []string{"#", "Name", "Rank", "Company", "Service No", "Email", "Status", "Registered"}

func (s *exportService) ExportRoster(ctx context.Context, trainingID string) (*bytes.Buffer, string, error) {
	training, err := s.repo.Training.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrTrainingNotFound
		}
		s.logger.Error("load training failed", zap.String("training_id", trainingID), zap.Error(err))
		return nil, "", err
	}

	result := ValidateAttendees(training.Attendees)
	if len(result.Valid) == 0 {
		return nil, "", ErrExportNoAttendees
	}

	// refresh snapshots for display so the roster reflects current personnel
	// data even when the stored copies are stale
	attendees := make([]model.Attendee, len(result.Valid))
	copy(attendees, result.Valid)
	for i := range attendees {
		resolved, err := s.resolver.Resolve(ctx, &attendees[i])
		if err != nil {
			s.logger.Warn("resolve attendee failed",
				zap.String("training_id", trainingID),
				zap.String("user_id", attendees[i].UserID),
				zap.Error(err))
			continue
		}
		if resolved != nil {
			attendees[i] = RefreshUserData(attendees[i], resolved.Record)
		} else {
			attendees[i] = RepairUserData(attendees[i])
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Roster"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "D", 18)
	f.SetColWidth(sheetName, "E", "F", 24)
	f.SetColWidth(sheetName, "G", "H", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// title row spanning all columns
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — Attendee Roster", training.Title))
	f.MergeCell(sheetName, "A1", cell(colName(len(rosterHeader)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	for i, h := range rosterHeader {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}

	row := 3
	for i := range attendees {
		a := &attendees[i]

		name := a.UserData.FullName
		if name == "" {
			name = a.UserData.FirstName + " " + a.UserData.LastName
		}

		registered := ""
		if a.RegistrationDate != nil {
			registered = a.RegistrationDate.Format("2006-01-02")
		}

		f.SetCellValue(sheetName, cell("A", row), i+1)
		f.SetCellValue(sheetName, cell("B", row), name)
		f.SetCellValue(sheetName, cell("C", row), a.UserData.Rank)
		f.SetCellValue(sheetName, cell("D", row), a.UserData.Company)
		f.SetCellValue(sheetName, cell("E", row), a.UserData.ServiceID)
		f.SetCellValue(sheetName, cell("F", row), a.UserData.Email)
		f.SetCellValue(sheetName, cell("G", row), a.EffectiveStatus())
		f.SetCellValue(sheetName, cell("H", row), registered)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("roster_%s.xlsx", training.TrainingID)
	return buf, filename, nil
}

func (s *exportService) ExportCalendar(ctx context.Context) (*bytes.Buffer, string, error) {
	trainings, err := s.repo.Training.ListAll(ctx)
	if err != nil {
		s.logger.Error("list trainings failed", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//AFP Personnel Management//Trainings//EN")

	now := time.Now()
	for i := range trainings {
		t := &trainings[i]
		if t.Status == model.TrainingStatusCancelled {
			continue
		}

		evt := cal.AddEvent(fmt.Sprintf("training-%s@afp-personnel", t.TrainingID))
		evt.SetCreatedTime(t.CreatedAt)
		evt.SetDtStampTime(now)
		evt.SetStartAt(t.StartDate)
		evt.SetEndAt(t.EndDate)
		evt.SetSummary(t.Title)
		if t.Description != "" {
			evt.SetDescription(t.Description)
		}
		if t.Location != "" {
			evt.SetLocation(t.Location)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "trainings.ics", nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
