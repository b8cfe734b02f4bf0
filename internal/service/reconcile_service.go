package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/dto"
	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
	"github.com/MattU27/301st-personnel-management-sub002/internal/repository"
	pkgerrors "github.com/MattU27/301st-personnel-management-sub002/pkg/errors"
)

// ErrTrainingNotFound is returned when a training id resolves to nothing.
var ErrTrainingNotFound = errors.New("training not found")

// CountSource selects the canonical source for the cached registered counter.
type CountSource string

const (
	// CountSourceEmbedded derives the counter from the validated embedded
	// attendee array.
	CountSourceEmbedded CountSource = "embedded"
	// CountSourceNormalized derives it from the training_registrations
	// row count.
	CountSourceNormalized CountSource = "normalized"
)

// computeRegisteredCount evaluates the counter from the configured source.
func computeRegisteredCount(ctx context.Context, repo *repository.Repository, t *model.Training, source CountSource) (int, error) {
	if source == CountSourceNormalized {
		n, err := repo.Registration.CountByTraining(ctx, t.TrainingID)
		return int(n), err
	}
	return len(ValidateAttendees(t.Attendees).Valid), nil
}

// syncRegisteredCount recomputes a training's cached counter and writes it
// back only on mismatch. The write is guarded by the training's version; on
// conflict the read-compute-write cycle is retried once against fresh state.
// Returns the computed count and whether a write happened.
func syncRegisteredCount(ctx context.Context, repo *repository.Repository, t *model.Training, source CountSource) (int, bool, error) {
	count, err := computeRegisteredCount(ctx, repo, t, source)
	if err != nil {
		return 0, false, err
	}
	if count == t.Registered {
		return count, false, nil
	}

	err = repo.Training.UpdateRegistered(ctx, t.TrainingID, count, t.Version)
	if err == nil {
		t.Registered = count
		t.Version++
		return count, true, nil
	}
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		return count, false, err
	}

	// a live registration raced this pass; retry once against fresh state
	fresh, err := repo.Training.GetByID(ctx, t.TrainingID)
	if err != nil {
		return count, false, err
	}
	count, err = computeRegisteredCount(ctx, repo, fresh, source)
	if err != nil {
		return 0, false, err
	}
	if count == fresh.Registered {
		*t = *fresh
		return count, false, nil
	}
	if err := repo.Training.UpdateRegistered(ctx, fresh.TrainingID, count, fresh.Version); err != nil {
		return count, false, err
	}
	fresh.Registered = count
	fresh.Version++
	*t = *fresh
	return count, true, nil
}

// ReconcileService runs the batch reconciliation passes: migrating embedded
// attendees into the normalized registration table and resyncing cached
// counters. Per-record failures are absorbed into the returned summary; only
// connection-level failures surface as errors.
type ReconcileService interface {
	MigrateTraining(ctx context.Context, trainingID string) (*dto.ReconcileSummary, error)
	MigrateAll(ctx context.Context) (*dto.ReconcileSummary, error)
}

type reconcileService struct {
	repo     *repository.Repository
	resolver PersonnelResolver
	logger   *zap.Logger
}

// NewReconcileService creates a ReconcileService.
func NewReconcileService(repo *repository.Repository, resolver PersonnelResolver, logger *zap.Logger) ReconcileService {
	return &reconcileService{repo: repo, resolver: resolver, logger: logger}
}

func (s *reconcileService) MigrateTraining(ctx context.Context, trainingID string) (*dto.ReconcileSummary, error) {
	t, err := s.repo.Training.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}

	sum := &dto.ReconcileSummary{}
	s.migrateOne(ctx, t, sum)
	return sum, nil
}

func (s *reconcileService) MigrateAll(ctx context.Context) (*dto.ReconcileSummary, error) {
	trainings, err := s.repo.Training.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	sum := &dto.ReconcileSummary{}
	for i := range trainings {
		s.migrateOne(ctx, &trainings[i], sum)
	}

	s.logger.Info("reconciliation pass complete",
		zap.Int("trainings_processed", sum.TrainingsProcessed),
		zap.Int("trainings_updated", sum.TrainingsUpdated),
		zap.Int("registrations_migrated", sum.RegistrationsMigrated),
		zap.Int("attendees_removed", sum.AttendeesRemoved),
		zap.Int("personnel_not_found", sum.PersonnelNotFound),
		zap.Int("errors", len(sum.Errors)),
	)
	return sum, nil
}

// migrateOne copies one training's valid embedded attendees into the
// normalized table (upsert on the composite key, so re-runs converge on the
// same end state), then resyncs the cached counter from the normalized
// cardinality. A failed upsert skips that attendee, never the training.
func (s *reconcileService) migrateOne(ctx context.Context, t *model.Training, sum *dto.ReconcileSummary) {
	sum.TrainingsProcessed++

	res := ValidateAttendees(t.Attendees)
	sum.AttendeesRemoved += len(res.Removed)
	for _, rm := range res.Removed {
		s.logger.Debug("attendee excluded",
			zap.String("training_id", t.TrainingID),
			zap.String("user_id", rm.Attendee.UserID),
			zap.String("reason", rm.Reason),
		)
	}

	for _, a := range res.Valid {
		resolved, err := s.resolver.Resolve(ctx, &a)
		if err != nil {
			s.logger.Warn("personnel lookup failed",
				zap.String("training_id", t.TrainingID),
				zap.String("user_id", a.UserID),
				zap.Error(err),
			)
			sum.Errors = append(sum.Errors, fmt.Sprintf("training %s user %s: resolve: %v", t.TrainingID, a.UserID, err))
			continue
		}
		if resolved != nil {
			a = RefreshUserData(a, resolved.Record)
		} else {
			a = RepairUserData(a)
			sum.PersonnelNotFound++
		}

		regDate := time.Now()
		if a.RegistrationDate != nil {
			regDate = *a.RegistrationDate
		}

		reg := &model.TrainingRegistration{
			TrainingID:       t.TrainingID,
			UserID:           a.UserID,
			Status:           a.EffectiveStatus(),
			RegistrationDate: regDate,
			UserData:         a.UserData,
		}

		if err := s.repo.Registration.Upsert(ctx, reg); err != nil {
			s.logger.Warn("registration upsert failed",
				zap.String("training_id", t.TrainingID),
				zap.String("user_id", a.UserID),
				zap.Error(err),
			)
			sum.Errors = append(sum.Errors, fmt.Sprintf("training %s user %s: upsert: %v", t.TrainingID, a.UserID, err))
			continue
		}
		sum.RegistrationsMigrated++
	}

	// after migration the normalized table is the source of truth for the
	// counter
	_, updated, err := syncRegisteredCount(ctx, s.repo, t, CountSourceNormalized)
	if err != nil {
		s.logger.Warn("counter resync failed",
			zap.String("training_id", t.TrainingID),
			zap.Error(err),
		)
		sum.Errors = append(sum.Errors, fmt.Sprintf("training %s: counter resync: %v", t.TrainingID, err))
		return
	}
	if updated {
		sum.TrainingsUpdated++
	}
}
