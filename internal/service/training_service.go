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
	pkgerrors "github.com/MattU27/301st-personnel-management-sub002/pkg/errors"
)

// training module business errors
var (
	ErrTrainingFull      = errors.New("training is at capacity")
	ErrTrainingClosed    = errors.New("training is not open for registration")
	ErrAlreadyRegistered = errors.New("already registered for this training")
	ErrNotRegistered     = errors.New("not registered for this training")
)

// TrainingService is the training business interface. The read paths
// self-correct the cached registered counter when it has drifted from the
// canonical source.
type TrainingService interface {
	Create(ctx context.Context, req *dto.CreateTrainingRequest, callerID string) (*dto.TrainingResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TrainingResponse, error)
	List(ctx context.Context, req *dto.TrainingListRequest) ([]dto.TrainingResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateTrainingRequest, callerID string) (*dto.TrainingResponse, error)
	Cancel(ctx context.Context, id string, callerID string) error

	Register(ctx context.Context, trainingID, callerID string) error
	CancelRegistration(ctx context.Context, trainingID, callerID string) error
	GetAttendees(ctx context.Context, trainingID string) (*dto.AttendeeListResponse, error)
	GetRegistrationCount(ctx context.Context, trainingID string) (*dto.RegistrationCountResponse, error)
	GetAllRegistrationCounts(ctx context.Context) ([]dto.RegistrationCountResponse, error)
}

type trainingService struct {
	repo     *repository.Repository
	resolver PersonnelResolver
	source   CountSource
	logger   *zap.Logger
}

// NewTrainingService creates a TrainingService.
func NewTrainingService(repo *repository.Repository, resolver PersonnelResolver, source CountSource, logger *zap.Logger) TrainingService {
	return &trainingService{repo: repo, resolver: resolver, source: source, logger: logger}
}

// ────────────────────── CRUD ──────────────────────

func (s *trainingService) Create(ctx context.Context, req *dto.CreateTrainingRequest, callerID string) (*dto.TrainingResponse, error) {
	t := &model.Training{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Capacity:    req.Capacity,
		Status:      model.TrainingStatusUpcoming,
		Attendees:   model.AttendeeList{},
		BaseModel:   model.BaseModel{CreatedBy: &callerID},
		Version:     1,
	}

	if err := s.repo.Training.Create(ctx, t); err != nil {
		s.logger.Error("create training failed", zap.Error(err))
		return nil, err
	}

	s.audit(ctx, callerID, "create", "training", t.TrainingID, map[string]interface{}{"title": t.Title})

	return s.toTrainingResponse(t, false), nil
}

func (s *trainingService) GetByID(ctx context.Context, id string) (*dto.TrainingResponse, error) {
	t, err := s.repo.Training.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainingNotFound
		}
		s.logger.Error("get training failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toTrainingResponse(t, true), nil
}

func (s *trainingService) List(ctx context.Context, req *dto.TrainingListRequest) ([]dto.TrainingResponse, int64, error) {
	filters := &repository.TrainingListFilters{
		Status:  req.Status,
		Keyword: req.Keyword,
	}

	trainings, total, err := s.repo.Training.ListWithFilters(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list trainings failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TrainingResponse, 0, len(trainings))
	for i := range trainings {
		result = append(result, *s.toTrainingResponse(&trainings[i], false))
	}

	return result, total, nil
}

func (s *trainingService) Update(ctx context.Context, id string, req *dto.UpdateTrainingRequest, callerID string) (*dto.TrainingResponse, error) {
	t, err := s.repo.Training.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.Location != nil {
		t.Location = *req.Location
	}
	if req.StartDate != nil {
		t.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		t.EndDate = *req.EndDate
	}
	if req.Capacity != nil {
		t.Capacity = req.Capacity
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	t.UpdatedBy = &callerID

	if err := s.repo.Training.Update(ctx, t); err != nil {
		s.logger.Error("update training failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.audit(ctx, callerID, "update", "training", t.TrainingID, nil)

	return s.toTrainingResponse(t, false), nil
}

// Cancel marks a training cancelled. Training records are never hard-deleted.
func (s *trainingService) Cancel(ctx context.Context, id string, callerID string) error {
	t, err := s.repo.Training.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrainingNotFound
		}
		return err
	}

	t.Status = model.TrainingStatusCancelled
	t.UpdatedBy = &callerID
	if err := s.repo.Training.Update(ctx, t); err != nil {
		s.logger.Error("cancel training failed", zap.String("id", id), zap.Error(err))
		return err
	}

	s.audit(ctx, callerID, "cancel", "training", t.TrainingID, nil)
	return nil
}

// ────────────────────── Register / CancelRegistration ──────────────────────

// Register appends the caller to the training's attendee list and dual-writes
// the normalized registration row. This is the live path, distinct from the
// batch reconciliation passes.
func (s *trainingService) Register(ctx context.Context, trainingID, callerID string) error {
	person, err := s.repo.Personnel.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonnelNotFound
		}
		return err
	}

	for attempt := 0; ; attempt++ {
		t, err := s.repo.Training.GetByID(ctx, trainingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTrainingNotFound
			}
			return err
		}

		if t.Status != model.TrainingStatusUpcoming && t.Status != model.TrainingStatusOngoing {
			return ErrTrainingClosed
		}
		for i := range t.Attendees {
			if t.Attendees[i].UserID == callerID {
				return ErrAlreadyRegistered
			}
		}

		valid := ValidateAttendees(t.Attendees).Valid
		if t.Capacity != nil && len(valid) >= *t.Capacity {
			return ErrTrainingFull
		}

		now := time.Now()
		attendee := model.Attendee{
			UserID:           person.UserID,
			Status:           model.AttendeeStatusRegistered,
			RegistrationDate: &now,
		}
		attendee = RefreshUserData(attendee, person)

		attendees := append(model.AttendeeList{}, t.Attendees...)
		attendees = append(attendees, attendee)
		registered := len(ValidateAttendees(attendees).Valid)

		err = s.repo.Training.UpdateAttendees(ctx, t.TrainingID, attendees, registered, t.Version)
		if errors.Is(err, pkgerrors.ErrOptimisticLock) && attempt == 0 {
			continue // re-read and re-check once
		}
		if err != nil {
			s.logger.Error("register write failed",
				zap.String("training_id", trainingID),
				zap.String("user_id", callerID),
				zap.Error(err),
			)
			return err
		}

		// dual-write the normalized row; a failure here is absorbed, the
		// next reconciliation pass converges it
		reg := &model.TrainingRegistration{
			TrainingID:       t.TrainingID,
			UserID:           person.UserID,
			Status:           model.AttendeeStatusRegistered,
			RegistrationDate: now,
			UserData:         attendee.UserData,
		}
		if err := s.repo.Registration.Upsert(ctx, reg); err != nil {
			s.logger.Warn("normalized registration write failed",
				zap.String("training_id", trainingID),
				zap.String("user_id", callerID),
				zap.Error(err),
			)
		}

		return nil
	}
}

// CancelRegistration removes the caller's attendee entry and the normalized
// row, updating the counter accordingly.
func (s *trainingService) CancelRegistration(ctx context.Context, trainingID, callerID string) error {
	for attempt := 0; ; attempt++ {
		t, err := s.repo.Training.GetByID(ctx, trainingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTrainingNotFound
			}
			return err
		}

		found := false
		attendees := make(model.AttendeeList, 0, len(t.Attendees))
		for _, a := range t.Attendees {
			if a.UserID == callerID {
				found = true
				continue
			}
			attendees = append(attendees, a)
		}
		if !found {
			return ErrNotRegistered
		}

		registered := len(ValidateAttendees(attendees).Valid)

		err = s.repo.Training.UpdateAttendees(ctx, t.TrainingID, attendees, registered, t.Version)
		if errors.Is(err, pkgerrors.ErrOptimisticLock) && attempt == 0 {
			continue
		}
		if err != nil {
			s.logger.Error("cancel registration write failed",
				zap.String("training_id", trainingID),
				zap.String("user_id", callerID),
				zap.Error(err),
			)
			return err
		}

		if err := s.repo.Registration.Delete(ctx, trainingID, callerID); err != nil {
			s.logger.Warn("normalized registration delete failed",
				zap.String("training_id", trainingID),
				zap.String("user_id", callerID),
				zap.Error(err),
			)
		}

		return nil
	}
}

// ────────────────────── Attendees / counts ──────────────────────

// GetAttendees returns the validated, deduplicated, name-refreshed attendee
// set. As a side effect the stored counter is corrected if it had drifted.
// The refreshed display data is not written back here; the migrator owns
// persisting snapshots.
func (s *trainingService) GetAttendees(ctx context.Context, trainingID string) (*dto.AttendeeListResponse, error) {
	t, err := s.repo.Training.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}

	res := ValidateAttendees(t.Attendees)

	refreshed := make([]model.Attendee, 0, len(res.Valid))
	for _, a := range res.Valid {
		resolved, err := s.resolver.Resolve(ctx, &a)
		if err != nil {
			s.logger.Warn("personnel lookup failed",
				zap.String("training_id", trainingID),
				zap.String("user_id", a.UserID),
				zap.Error(err),
			)
			refreshed = append(refreshed, a)
			continue
		}
		if resolved != nil {
			refreshed = append(refreshed, RefreshUserData(a, resolved.Record))
		} else {
			refreshed = append(refreshed, RepairUserData(a))
		}
	}

	count, _, err := syncRegisteredCount(ctx, s.repo, t, CountSourceEmbedded)
	if err != nil {
		s.logger.Warn("counter correction failed", zap.String("training_id", trainingID), zap.Error(err))
		count = len(res.Valid)
	}

	removed := make([]dto.RemovedAttendee, 0, len(res.Removed))
	for _, rm := range res.Removed {
		removed = append(removed, dto.RemovedAttendee{UserID: rm.Attendee.UserID, Reason: rm.Reason})
	}

	return &dto.AttendeeListResponse{
		TrainingID: trainingID,
		Attendees:  refreshed,
		Removed:    removed,
		Registered: count,
	}, nil
}

func (s *trainingService) GetRegistrationCount(ctx context.Context, trainingID string) (*dto.RegistrationCountResponse, error) {
	t, err := s.repo.Training.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}

	count, _, err := syncRegisteredCount(ctx, s.repo, t, s.source)
	if err != nil {
		s.logger.Error("count reconcile failed", zap.String("training_id", trainingID), zap.Error(err))
		return nil, err
	}

	return s.toCountResponse(t, count), nil
}

func (s *trainingService) GetAllRegistrationCounts(ctx context.Context) ([]dto.RegistrationCountResponse, error) {
	trainings, err := s.repo.Training.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.RegistrationCountResponse, 0, len(trainings))
	for i := range trainings {
		t := &trainings[i]
		count, _, err := syncRegisteredCount(ctx, s.repo, t, s.source)
		if err != nil {
			// per-record failure: report the stored value, keep going
			s.logger.Warn("count reconcile failed", zap.String("training_id", t.TrainingID), zap.Error(err))
			count = t.Registered
		}
		result = append(result, *s.toCountResponse(t, count))
	}

	return result, nil
}

// ────────────────────── helpers ──────────────────────

func (s *trainingService) toCountResponse(t *model.Training, count int) *dto.RegistrationCountResponse {
	var pct float64
	if t.Capacity != nil && *t.Capacity > 0 {
		pct = float64(count) / float64(*t.Capacity) * 100
	}
	return &dto.RegistrationCountResponse{
		TrainingID: t.TrainingID,
		Title:      t.Title,
		Count:      count,
		Capacity:   t.Capacity,
		Percentage: pct,
	}
}

func (s *trainingService) toTrainingResponse(t *model.Training, includeAttendees bool) *dto.TrainingResponse {
	resp := &dto.TrainingResponse{
		ID:          t.TrainingID,
		Title:       t.Title,
		Description: t.Description,
		Type:        t.Type,
		Location:    t.Location,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Capacity:    t.Capacity,
		Status:      t.Status,
		Registered:  t.Registered,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if includeAttendees {
		resp.Attendees = ValidateAttendees(t.Attendees).Valid
	}
	return resp
}
