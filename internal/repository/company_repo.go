package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
)

// CompanyRepository is the company data-access interface.
type CompanyRepository interface {
	Create(ctx context.Context, c *model.Company) error
	GetByID(ctx context.Context, id string) (*model.Company, error)
	GetByCode(ctx context.Context, code string) (*model.Company, error)
	GetByName(ctx context.Context, name string) (*model.Company, error)
	List(ctx context.Context) ([]model.Company, error)
	Update(ctx context.Context, c *model.Company) error
	Delete(ctx context.Context, id string) error
}

type companyRepo struct {
	db *gorm.DB
}

// NewCompanyRepo creates a CompanyRepository backed by GORM.
func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, c *model.Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*model.Company, error) {
	var c model.Company
	err := r.db.WithContext(ctx).Where("company_id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) GetByCode(ctx context.Context, code string) (*model.Company, error) {
	var c model.Company
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) GetByName(ctx context.Context, name string) (*model.Company, error) {
	var c model.Company
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) List(ctx context.Context) ([]model.Company, error) {
	var list []model.Company
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *companyRepo) Update(ctx context.Context, c *model.Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *companyRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("company_id = ?", id).Delete(&model.Company{}).Error
}
