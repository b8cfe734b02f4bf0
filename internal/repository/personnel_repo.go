package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
)

// PersonnelListFilters narrows personnel list queries.
type PersonnelListFilters struct {
	CompanyID string
	Role      string
	Status    string
	Keyword   string
}

// PersonnelRepository is the personnel data-access interface.
type PersonnelRepository interface {
	Create(ctx context.Context, p *model.Personnel) error
	GetByID(ctx context.Context, id string) (*model.Personnel, error)
	GetByEmail(ctx context.Context, email string) (*model.Personnel, error)
	GetByServiceID(ctx context.Context, serviceID string) (*model.Personnel, error)
	GetByFullName(ctx context.Context, firstName, lastName string) (*model.Personnel, error)
	Update(ctx context.Context, p *model.Personnel) error
	Delete(ctx context.Context, id string, deletedBy string) error
	ListWithFilters(ctx context.Context, f *PersonnelListFilters, offset, limit int) ([]model.Personnel, int64, error)
	CountByCompany(ctx context.Context, companyID string) (int64, error)
}

type personnelRepo struct {
	db *gorm.DB
}

// NewPersonnelRepo creates a PersonnelRepository backed by GORM.
func NewPersonnelRepo(db *gorm.DB) PersonnelRepository {
	return &personnelRepo{db: db}
}

func (r *personnelRepo) Create(ctx context.Context, p *model.Personnel) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *personnelRepo) GetByID(ctx context.Context, id string) (*model.Personnel, error) {
	var p model.Personnel
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("user_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *personnelRepo) GetByEmail(ctx context.Context, email string) (*model.Personnel, error) {
	var p model.Personnel
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("LOWER(email) = LOWER(?) OR LOWER(alternative_email) = LOWER(?)", email, email).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *personnelRepo) GetByServiceID(ctx context.Context, serviceID string) (*model.Personnel, error) {
	var p model.Personnel
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("service_id = ?", serviceID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *personnelRepo) GetByFullName(ctx context.Context, firstName, lastName string) (*model.Personnel, error) {
	var p model.Personnel
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?)", firstName, lastName).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *personnelRepo) Update(ctx context.Context, p *model.Personnel) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *personnelRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Personnel{}).
			Where("user_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", id).Delete(&model.Personnel{}).Error
	})
}

func (r *personnelRepo) ListWithFilters(ctx context.Context, f *PersonnelListFilters, offset, limit int) ([]model.Personnel, int64, error) {
	var list []model.Personnel
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Personnel{})

	if f != nil {
		if f.CompanyID != "" {
			db = db.Where("company_id = ?", f.CompanyID)
		}
		if f.Role != "" {
			db = db.Where("role = ?", f.Role)
		}
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.Keyword != "" {
			kw := "%" + f.Keyword + "%"
			db = db.Where(
				"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR service_id ILIKE ?",
				kw, kw, kw, kw,
			)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Company").
		Offset(offset).Limit(limit).
		Order("last_name ASC, first_name ASC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *personnelRepo) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Personnel{}).
		Where("company_id = ?", companyID).
		Count(&n).Error
	return n, err
}
