package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
	pkgerrors "github.com/MattU27/301st-personnel-management-sub002/pkg/errors"
)

// TrainingListFilters narrows training list queries.
type TrainingListFilters struct {
	Status  string
	Keyword string
}

// TrainingRepository is the training data-access interface.
type TrainingRepository interface {
	Create(ctx context.Context, t *model.Training) error
	GetByID(ctx context.Context, id string) (*model.Training, error)
	Update(ctx context.Context, t *model.Training) error
	ListWithFilters(ctx context.Context, f *TrainingListFilters, offset, limit int) ([]model.Training, int64, error)
	ListAll(ctx context.Context) ([]model.Training, error)
	// UpdateRegistered writes the cached counter behind a version check;
	// returns pkg/errors.ErrOptimisticLock when the record moved underneath.
	UpdateRegistered(ctx context.Context, id string, registered, version int) error
	// UpdateAttendees writes the attendee array and counter together, behind
	// the same version check.
	UpdateAttendees(ctx context.Context, id string, attendees model.AttendeeList, registered, version int) error
}

type trainingRepo struct {
	db *gorm.DB
}

// NewTrainingRepo creates a TrainingRepository backed by GORM.
func NewTrainingRepo(db *gorm.DB) TrainingRepository {
	return &trainingRepo{db: db}
}

func (r *trainingRepo) Create(ctx context.Context, t *model.Training) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *trainingRepo) GetByID(ctx context.Context, id string) (*model.Training, error) {
	var t model.Training
	err := r.db.WithContext(ctx).
		Where("training_id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *trainingRepo) Update(ctx context.Context, t *model.Training) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *trainingRepo) ListWithFilters(ctx context.Context, f *TrainingListFilters, offset, limit int) ([]model.Training, int64, error) {
	var list []model.Training
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Training{})

	if f != nil {
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.Keyword != "" {
			kw := "%" + f.Keyword + "%"
			db = db.Where("title ILIKE ? OR location ILIKE ?", kw, kw)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("start_date DESC").
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *trainingRepo) ListAll(ctx context.Context) ([]model.Training, error) {
	var list []model.Training
	err := r.db.WithContext(ctx).
		Order("start_date ASC").
		Find(&list).Error
	return list, err
}

func (r *trainingRepo) UpdateRegistered(ctx context.Context, id string, registered, version int) error {
	res := r.db.WithContext(ctx).
		Model(&model.Training{}).
		Where("training_id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"registered": registered,
			"version":    version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *trainingRepo) UpdateAttendees(ctx context.Context, id string, attendees model.AttendeeList, registered, version int) error {
	res := r.db.WithContext(ctx).
		Model(&model.Training{}).
		Where("training_id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"attendees":  attendees,
			"registered": registered,
			"version":    version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}
