package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
)

// PolicyRepository is the policy data-access interface.
type PolicyRepository interface {
	Create(ctx context.Context, p *model.Policy) error
	GetByID(ctx context.Context, id string) (*model.Policy, error)
	List(ctx context.Context, status string, offset, limit int) ([]model.Policy, int64, error)
	Update(ctx context.Context, p *model.Policy) error
	Delete(ctx context.Context, id string) error
}

type policyRepo struct {
	db *gorm.DB
}

// NewPolicyRepo creates a PolicyRepository backed by GORM.
func NewPolicyRepo(db *gorm.DB) PolicyRepository {
	return &policyRepo{db: db}
}

func (r *policyRepo) Create(ctx context.Context, p *model.Policy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *policyRepo) GetByID(ctx context.Context, id string) (*model.Policy, error) {
	var p model.Policy
	err := r.db.WithContext(ctx).Where("policy_id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *policyRepo) List(ctx context.Context, status string, offset, limit int) ([]model.Policy, int64, error) {
	var list []model.Policy
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Policy{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *policyRepo) Update(ctx context.Context, p *model.Policy) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *policyRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("policy_id = ?", id).Delete(&model.Policy{}).Error
}
