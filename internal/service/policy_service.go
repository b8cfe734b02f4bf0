package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/dto"
	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
	"github.com/MattU27/301st-personnel-management-sub002/internal/repository"
)

var ErrPolicyNotFound = errors.New("policy not found")

// PolicyService is the policy business interface.
type PolicyService interface {
	Create(ctx context.Context, req *dto.CreatePolicyRequest, callerID string) (*model.Policy, error)
	GetByID(ctx context.Context, id string) (*model.Policy, error)
	List(ctx context.Context, status string, page, pageSize int) ([]model.Policy, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdatePolicyRequest, callerID string) (*model.Policy, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type policyService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPolicyService creates a PolicyService.
func NewPolicyService(repo *repository.Repository, logger *zap.Logger) PolicyService {
	return &policyService{repo: repo, logger: logger}
}

func (s *policyService) Create(ctx context.Context, req *dto.CreatePolicyRequest, callerID string) (*model.Policy, error) {
	status := req.Status
	if status == "" {
		status = model.PolicyStatusDraft
	}

	p := &model.Policy{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Status:        status,
		EffectiveDate: req.EffectiveDate,
		BaseModel:     model.BaseModel{CreatedBy: &callerID},
	}
	if err := s.repo.Policy.Create(ctx, p); err != nil {
		s.logger.Error("create policy failed", zap.Error(err))
		return nil, err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "create", "policy", p.PolicyID, nil)
	return p, nil
}

func (s *policyService) GetByID(ctx context.Context, id string) (*model.Policy, error) {
	p, err := s.repo.Policy.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPolicyNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *policyService) List(ctx context.Context, status string, page, pageSize int) ([]model.Policy, int64, error) {
	offset := (page - 1) * pageSize
	return s.repo.Policy.List(ctx, status, offset, pageSize)
}

func (s *policyService) Update(ctx context.Context, id string, req *dto.UpdatePolicyRequest, callerID string) (*model.Policy, error) {
	p, err := s.repo.Policy.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPolicyNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.EffectiveDate != nil {
		p.EffectiveDate = req.EffectiveDate
	}
	p.UpdatedBy = &callerID

	if err := s.repo.Policy.Update(ctx, p); err != nil {
		s.logger.Error("update policy failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "update", "policy", id, nil)
	return p, nil
}

func (s *policyService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Policy.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPolicyNotFound
		}
		return err
	}

	if err := s.repo.Policy.Delete(ctx, id); err != nil {
		s.logger.Error("delete policy failed", zap.String("id", id), zap.Error(err))
		return err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "delete", "policy", id, nil)
	return nil
}
