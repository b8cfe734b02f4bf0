package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
)

// DocumentListFilters narrows document list queries.
type DocumentListFilters struct {
	UserID string
	Status string
}

// DocumentRepository is the document-metadata data-access interface.
type DocumentRepository interface {
	Create(ctx context.Context, d *model.Document) error
	GetByID(ctx context.Context, id string) (*model.Document, error)
	ListWithFilters(ctx context.Context, f *DocumentListFilters, offset, limit int) ([]model.Document, int64, error)
	Update(ctx context.Context, d *model.Document) error
	Delete(ctx context.Context, id string) error
}

type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepo creates a DocumentRepository backed by GORM.
func NewDocumentRepo(db *gorm.DB) DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, d *model.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*model.Document, error) {
	var d model.Document
	err := r.db.WithContext(ctx).Where("document_id = ?", id).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepo) ListWithFilters(ctx context.Context, f *DocumentListFilters, offset, limit int) ([]model.Document, int64, error) {
	var list []model.Document
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Document{})
	if f != nil {
		if f.UserID != "" {
			db = db.Where("user_id = ?", f.UserID)
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
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

func (r *documentRepo) Update(ctx context.Context, d *model.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *documentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("document_id = ?", id).Delete(&model.Document{}).Error
}
