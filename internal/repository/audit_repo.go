package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
)

// AuditRepository is the audit-log data-access interface.
type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	ListByResource(ctx context.Context, resource, resourceID string, offset, limit int) ([]model.AuditLog, int64, error)
}

type auditRepo struct {
	db *gorm.DB
}

// NewAuditRepo creates an AuditRepository backed by GORM.
func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Create(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepo) ListByResource(ctx context.Context, resource, resourceID string, offset, limit int) ([]model.AuditLog, int64, error) {
	var list []model.AuditLog
	var total int64

	db := r.db.WithContext(ctx).Model(&model.AuditLog{}).
		Where("resource = ?", resource)
	if resourceID != "" {
		db = db.Where("resource_id = ?", resourceID)
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
