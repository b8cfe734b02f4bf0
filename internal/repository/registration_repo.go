package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
)

// RegistrationRepository is the normalized-registration data-access
// interface. The table carries a unique constraint on (training_id, user_id);
// Upsert keys on it.
type RegistrationRepository interface {
	Upsert(ctx context.Context, reg *model.TrainingRegistration) error
	GetByPair(ctx context.Context, trainingID, userID string) (*model.TrainingRegistration, error)
	ListByTraining(ctx context.Context, trainingID string) ([]model.TrainingRegistration, error)
	CountByTraining(ctx context.Context, trainingID string) (int64, error)
	Delete(ctx context.Context, trainingID, userID string) error
}

type registrationRepo struct {
	db *gorm.DB
}

// NewRegistrationRepo creates a RegistrationRepository backed by GORM.
func NewRegistrationRepo(db *gorm.DB) RegistrationRepository {
	return &registrationRepo{db: db}
}

func (r *registrationRepo) Upsert(ctx context.Context, reg *model.TrainingRegistration) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "training_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "registration_date", "user_data", "updated_at",
			}),
		}).
		Create(reg).Error
}

func (r *registrationRepo) GetByPair(ctx context.Context, trainingID, userID string) (*model.TrainingRegistration, error) {
	var reg model.TrainingRegistration
	err := r.db.WithContext(ctx).
		Where("training_id = ? AND user_id = ?", trainingID, userID).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepo) ListByTraining(ctx context.Context, trainingID string) ([]model.TrainingRegistration, error) {
	var list []model.TrainingRegistration
	err := r.db.WithContext(ctx).
		Where("training_id = ?", trainingID).
		Order("registration_date ASC").
		Find(&list).Error
	return list, err
}

func (r *registrationRepo) CountByTraining(ctx context.Context, trainingID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.TrainingRegistration{}).
		Where("training_id = ?", trainingID).
		Count(&n).Error
	return n, err
}

func (r *registrationRepo) Delete(ctx context.Context, trainingID, userID string) error {
	return r.db.WithContext(ctx).
		Where("training_id = ? AND user_id = ?", trainingID, userID).
		Delete(&model.TrainingRegistration{}).Error
}
