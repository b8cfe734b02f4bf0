package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/dto"
	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
	"github.com/MattU27/301st-personnel-management-sub002/internal/repository"
)

var (
	ErrCompanyCodeExists = errors.New("company code already in use")
	ErrCompanyNotEmpty   = errors.New("company still has assigned personnel")
)

// CompanyService is the company business interface.
type CompanyService interface {
	Create(ctx context.Context, req *dto.CreateCompanyRequest, callerID string) (*dto.CompanyDetailResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CompanyDetailResponse, error)
	List(ctx context.Context) ([]dto.CompanyDetailResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest, callerID string) (*dto.CompanyDetailResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type companyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCompanyService creates a CompanyService.
func NewCompanyService(repo *repository.Repository, logger *zap.Logger) CompanyService {
	return &companyService{repo: repo, logger: logger}
}

func (s *companyService) Create(ctx context.Context, req *dto.CreateCompanyRequest, callerID string) (*dto.CompanyDetailResponse, error) {
	if _, err := s.repo.Company.GetByCode(ctx, req.Code); err == nil {
		return nil, ErrCompanyCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	company := &model.Company{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		BaseModel:   model.BaseModel{CreatedBy: &callerID},
	}
	if err := s.repo.Company.Create(ctx, company); err != nil {
		s.logger.Error("create company failed", zap.Error(err))
		return nil, err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "create", "company", company.CompanyID, nil)
	return s.toDetail(ctx, company), nil
}

func (s *companyService) GetByID(ctx context.Context, id string) (*dto.CompanyDetailResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return s.toDetail(ctx, company), nil
}

func (s *companyService) List(ctx context.Context) ([]dto.CompanyDetailResponse, error) {
	list, err := s.repo.Company.List(ctx)
	if err != nil {
		s.logger.Error("list companies failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CompanyDetailResponse, 0, len(list))
	for i := range list {
		result = append(result, *s.toDetail(ctx, &list[i]))
	}
	return result, nil
}

func (s *companyService) Update(ctx context.Context, id string, req *dto.UpdateCompanyRequest, callerID string) (*dto.CompanyDetailResponse, error) {
	company, err := s.repo.Company.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}

	if req.Code != nil && *req.Code != company.Code {
		existing, err := s.repo.Company.GetByCode(ctx, *req.Code)
		if err == nil && existing.CompanyID != id {
			return nil, ErrCompanyCodeExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		company.Code = *req.Code
	}
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	company.UpdatedBy = &callerID

	if err := s.repo.Company.Update(ctx, company); err != nil {
		s.logger.Error("update company failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "update", "company", id, nil)
	return s.toDetail(ctx, company), nil
}

func (s *companyService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Company.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompanyNotFound
		}
		return err
	}

	count, err := s.repo.Personnel.CountByCompany(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCompanyNotEmpty
	}

	if err := s.repo.Company.Delete(ctx, id); err != nil {
		s.logger.Error("delete company failed", zap.String("id", id), zap.Error(err))
		return err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "delete", "company", id, nil)
	return nil
}

func (s *companyService) toDetail(ctx context.Context, c *model.Company) *dto.CompanyDetailResponse {
	strength, err := s.repo.Personnel.CountByCompany(ctx, c.CompanyID)
	if err != nil {
		s.logger.Warn("count company strength failed", zap.String("company_id", c.CompanyID), zap.Error(err))
	}
	return &dto.CompanyDetailResponse{
		ID:          c.CompanyID,
		Name:        c.Name,
		Code:        c.Code,
		Description: c.Description,
		Strength:    strength,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}
