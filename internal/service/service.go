package service

import (
	"go.uber.org/zap"

	"github.com/MattU27/301st-personnel-management-sub002/config"
	"github.com/MattU27/301st-personnel-management-sub002/internal/repository"
	"github.com/MattU27/301st-personnel-management-sub002/pkg/jwt"
	"github.com/MattU27/301st-personnel-management-sub002/pkg/redis"
)

// Service aggregates all business services.
type Service struct {
	Auth         AuthService
	Personnel    PersonnelService
	Company      CompanyService
	Training     TrainingService
	Reconcile    ReconcileService
	Announcement AnnouncementService
	Policy       PolicyService
	Document     DocumentService
	Export       ExportService
}

// NewService creates the Service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	resolver := NewPersonnelResolver(repo.Personnel)
	source := CountSource(cfg.Reconcile.CountSource)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Personnel:    NewPersonnelService(repo, logger),
		Company:      NewCompanyService(repo, logger),
		Training:     NewTrainingService(repo, resolver, source, logger),
		Reconcile:    NewReconcileService(repo, resolver, logger),
		Announcement: NewAnnouncementService(repo, logger),
		Policy:       NewPolicyService(repo, logger),
		Document:     NewDocumentService(repo, logger),
		Export:       NewExportService(repo, resolver, logger),
	}
}
