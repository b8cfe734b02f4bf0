package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/dto"
	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
	"github.com/MattU27/301st-personnel-management-sub002/internal/repository"
)

// personnel module business errors
var (
	ErrPersonnelNotFound = errors.New("personnel record not found")
	ErrEmailExists       = errors.New("email already registered")
	ErrServiceIDExists   = errors.New("service number already registered")
	ErrCompanyNotFound   = errors.New("company not found")
	ErrSelfRoleChange    = errors.New("cannot change own role")
	ErrSelfDelete        = errors.New("cannot delete own record")
	ErrNoPermission      = errors.New("not permitted")
)

// PersonnelService is the personnel business interface.
type PersonnelService interface {
	Create(ctx context.Context, req *dto.CreatePersonnelRequest, callerID string) (*dto.CreatePersonnelResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PersonnelResponse, error)
	List(ctx context.Context, req *dto.PersonnelListRequest) ([]dto.PersonnelResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdatePersonnelRequest, callerID, callerRole string) (*dto.PersonnelResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest, callerID string) error
	ParseImportFile(reader io.Reader) ([]ImportPersonnelRow, error)
	Import(ctx context.Context, rows []ImportPersonnelRow, callerID string) (*dto.ImportPersonnelResponse, error)
}

// ImportPersonnelRow is one parsed xlsx import row.
type ImportPersonnelRow struct {
	Row         int
	FirstName   string
	LastName    string
	Rank        string
	Email       string
	ServiceID   string
	CompanyName string
}

type personnelService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPersonnelService creates a PersonnelService.
func NewPersonnelService(repo *repository.Repository, logger *zap.Logger) PersonnelService {
	return &personnelService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *personnelService) Create(ctx context.Context, req *dto.CreatePersonnelRequest, callerID string) (*dto.CreatePersonnelResponse, error) {
	if _, err := s.repo.Personnel.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.ServiceID != "" {
		if _, err := s.repo.Personnel.GetByServiceID(ctx, req.ServiceID); err == nil {
			return nil, ErrServiceIDExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var companyID *string
	if req.CompanyID != "" {
		if _, err := s.repo.Company.GetByID(ctx, req.CompanyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCompanyNotFound
			}
			return nil, err
		}
		companyID = &req.CompanyID
	}

	tempPwd := defaultPassword(req.ServiceID, req.Email)
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPwd), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.PersonnelStatusStandby
	}

	person := &model.Personnel{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Rank:         req.Rank,
		CompanyID:    companyID,
		Email:        req.Email,
		ServiceID:    req.ServiceID,
		Role:         req.Role,
		Status:       status,
		PasswordHash: string(hash),
		VersionedModel: model.VersionedModel{
			SoftDeleteModel: model.SoftDeleteModel{BaseModel: model.BaseModel{CreatedBy: &callerID}},
		},
	}

	if err := s.repo.Personnel.Create(ctx, person); err != nil {
		s.logger.Error("create personnel failed", zap.Error(err))
		return nil, err
	}

	// reload to pick up the company association
	created, err := s.repo.Personnel.GetByID(ctx, person.UserID)
	if err != nil {
		return nil, err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "create", "personnel", created.UserID, nil)

	return &dto.CreatePersonnelResponse{
		Personnel:    toPersonnelResponse(created),
		TempPassword: tempPwd,
	}, nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *personnelService) GetByID(ctx context.Context, id string) (*dto.PersonnelResponse, error) {
	person, err := s.repo.Personnel.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonnelNotFound
		}
		s.logger.Error("get personnel failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toPersonnelResponse(person), nil
}

func (s *personnelService) List(ctx context.Context, req *dto.PersonnelListRequest) ([]dto.PersonnelResponse, int64, error) {
	filters := &repository.PersonnelListFilters{
		CompanyID: req.CompanyID,
		Role:      req.Role,
		Status:    req.Status,
		Keyword:   req.Keyword,
	}

	list, total, err := s.repo.Personnel.ListWithFilters(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list personnel failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.PersonnelResponse, 0, len(list))
	for i := range list {
		result = append(result, *toPersonnelResponse(&list[i]))
	}

	return result, total, nil
}

// ────────────────────── Update / Delete / AssignRole ──────────────────────

func (s *personnelService) Update(ctx context.Context, id string, req *dto.UpdatePersonnelRequest, callerID, callerRole string) (*dto.PersonnelResponse, error) {
	person, err := s.repo.Personnel.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonnelNotFound
		}
		return nil, err
	}

	// reservists may only update their own record, and not reassign company
	if callerRole == model.RoleReservist {
		if callerID != id {
			return nil, ErrNoPermission
		}
		if req.CompanyID != nil || req.Status != nil {
			return nil, ErrNoPermission
		}
	}

	if req.FirstName != nil {
		person.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		person.LastName = *req.LastName
	}
	if req.Rank != nil {
		person.Rank = *req.Rank
	}
	if req.Email != nil {
		existing, err := s.repo.Personnel.GetByEmail(ctx, *req.Email)
		if err == nil && existing.UserID != id {
			return nil, ErrEmailExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		person.Email = *req.Email
	}
	if req.AlternativeEmail != nil {
		person.AlternativeEmail = *req.AlternativeEmail
	}
	if req.ServiceID != nil {
		existing, err := s.repo.Personnel.GetByServiceID(ctx, *req.ServiceID)
		if err == nil && existing.UserID != id {
			return nil, ErrServiceIDExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		person.ServiceID = *req.ServiceID
	}
	if req.Status != nil {
		person.Status = *req.Status
	}
	if req.CompanyID != nil {
		if _, err := s.repo.Company.GetByID(ctx, *req.CompanyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCompanyNotFound
			}
			return nil, err
		}
		person.CompanyID = req.CompanyID
	}
	person.UpdatedBy = &callerID

	if err := s.repo.Personnel.Update(ctx, person); err != nil {
		s.logger.Error("update personnel failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "update", "personnel", id, nil)

	updated, err := s.repo.Personnel.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPersonnelResponse(updated), nil
}

func (s *personnelService) Delete(ctx context.Context, id string, callerID string) error {
	if id == callerID {
		return ErrSelfDelete
	}

	if _, err := s.repo.Personnel.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonnelNotFound
		}
		return err
	}

	if err := s.repo.Personnel.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete personnel failed", zap.String("id", id), zap.Error(err))
		return err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "delete", "personnel", id, nil)
	return nil
}

func (s *personnelService) AssignRole(ctx context.Context, id string, req *dto.AssignRoleRequest, callerID string) error {
	if id == callerID {
		return ErrSelfRoleChange
	}

	person, err := s.repo.Personnel.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonnelNotFound
		}
		return err
	}

	person.Role = req.Role
	person.UpdatedBy = &callerID
	if err := s.repo.Personnel.Update(ctx, person); err != nil {
		s.logger.Error("assign role failed", zap.String("id", id), zap.Error(err))
		return err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "assign_role", "personnel", id,
		map[string]interface{}{"role": req.Role})
	return nil
}

// ────────────────────── Import ──────────────────────

// importHeader is the expected first row of an import workbook.
var importHeader = []string{"First Name", "Last Name", "Rank", "Email", "Service No", "Company"}

// ParseImportFile reads an xlsx workbook into import rows. The first sheet
// is used; the first row must be the header.
func (s *personnelService) ParseImportFile(reader io.Reader) ([]ImportPersonnelRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook has no data rows")
	}

	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	result := make([]ImportPersonnelRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		r := ImportPersonnelRow{
			Row:         i + 2, // 1-based, after header
			FirstName:   cell(row, 0),
			LastName:    cell(row, 1),
			Rank:        cell(row, 2),
			Email:       cell(row, 3),
			ServiceID:   cell(row, 4),
			CompanyName: cell(row, 5),
		}
		if r.FirstName == "" && r.LastName == "" && r.Email == "" {
			continue // blank row
		}
		result = append(result, r)
	}

	return result, nil
}

// Import creates personnel records from parsed rows. Row-level failures are
// collected in the response; they never abort the batch.
func (s *personnelService) Import(ctx context.Context, rows []ImportPersonnelRow, callerID string) (*dto.ImportPersonnelResponse, error) {
	resp := &dto.ImportPersonnelResponse{Total: len(rows)}

	for _, row := range rows {
		if err := s.importRow(ctx, row, callerID); err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportPersonnelError{Row: row.Row, Reason: err.Error()})
			continue
		}
		resp.Success++
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "import", "personnel", "",
		map[string]interface{}{"total": resp.Total, "success": resp.Success, "failed": resp.Failed})

	return resp, nil
}

func (s *personnelService) importRow(ctx context.Context, row ImportPersonnelRow, callerID string) error {
	if row.FirstName == "" || row.LastName == "" {
		return errors.New("missing name")
	}
	if row.Email == "" {
		return errors.New("missing email")
	}

	if _, err := s.repo.Personnel.GetByEmail(ctx, row.Email); err == nil {
		return ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var companyID *string
	if row.CompanyName != "" {
		company, err := s.repo.Company.GetByName(ctx, row.CompanyName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("unknown company %q", row.CompanyName)
			}
			return err
		}
		companyID = &company.CompanyID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword(row.ServiceID, row.Email)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	person := &model.Personnel{
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Rank:         row.Rank,
		CompanyID:    companyID,
		Email:        row.Email,
		ServiceID:    row.ServiceID,
		Role:         model.RoleReservist,
		Status:       model.PersonnelStatusStandby,
		PasswordHash: string(hash),
		VersionedModel: model.VersionedModel{
			SoftDeleteModel: model.SoftDeleteModel{BaseModel: model.BaseModel{CreatedBy: &callerID}},
		},
	}

	return s.repo.Personnel.Create(ctx, person)
}

// ────────────────────── helpers ──────────────────────

// defaultPassword derives the initial password from the service number
// (falling back to the email local-part): "Afp" + last six characters.
func defaultPassword(serviceID, email string) string {
	base := serviceID
	if base == "" {
		base = email
		if i := strings.Index(base, "@"); i > 0 {
			base = base[:i]
		}
	}
	if len(base) > 6 {
		base = base[len(base)-6:]
	}
	return "Afp" + base
}

func toPersonnelResponse(p *model.Personnel) *dto.PersonnelResponse {
	var company *dto.CompanyResponse
	if p.Company != nil {
		company = &dto.CompanyResponse{
			ID:   p.Company.CompanyID,
			Name: p.Company.Name,
			Code: p.Company.Code,
		}
	}

	return &dto.PersonnelResponse{
		ID:               p.UserID,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		FullName:         p.FullName(),
		Rank:             p.Rank,
		Email:            p.Email,
		AlternativeEmail: p.AlternativeEmail,
		ServiceID:        p.ServiceID,
		Role:             p.Role,
		Status:           p.Status,
		Company:          company,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
}
