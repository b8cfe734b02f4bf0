package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MattU27/301st-personnel-management-sub002/internal/dto"
	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
	"github.com/MattU27/301st-personnel-management-sub002/internal/repository"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

// AnnouncementService is the announcement business interface.
type AnnouncementService interface {
	Create(ctx context.Context, req *dto.CreateAnnouncementRequest, callerID string) (*model.Announcement, error)
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	List(ctx context.Context, publishedOnly bool, page, pageSize int) ([]model.Announcement, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest, callerID string) (*model.Announcement, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type announcementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAnnouncementService creates an AnnouncementService.
func NewAnnouncementService(repo *repository.Repository, logger *zap.Logger) AnnouncementService {
	return &announcementService{repo: repo, logger: logger}
}

func (s *announcementService) Create(ctx context.Context, req *dto.CreateAnnouncementRequest, callerID string) (*model.Announcement, error) {
	priority := req.Priority
	if priority == "" {
		priority = model.AnnouncementPriorityNormal
	}

	a := &model.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		Priority:  priority,
		Published: req.Published,
		ExpiresAt: req.ExpiresAt,
		BaseModel: model.BaseModel{CreatedBy: &callerID},
	}
	if err := s.repo.Announcement.Create(ctx, a); err != nil {
		s.logger.Error("create announcement failed", zap.Error(err))
		return nil, err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "create", "announcement", a.AnnouncementID, nil)
	return a, nil
}

func (s *announcementService) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	a, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *announcementService) List(ctx context.Context, publishedOnly bool, page, pageSize int) ([]model.Announcement, int64, error) {
	offset := (page - 1) * pageSize
	return s.repo.Announcement.List(ctx, publishedOnly, offset, pageSize)
}

func (s *announcementService) Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest, callerID string) (*model.Announcement, error) {
	a, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.Priority != nil {
		a.Priority = *req.Priority
	}
	if req.Published != nil {
		a.Published = *req.Published
	}
	if req.ExpiresAt != nil {
		a.ExpiresAt = req.ExpiresAt
	}
	a.UpdatedBy = &callerID

	if err := s.repo.Announcement.Update(ctx, a); err != nil {
		s.logger.Error("update announcement failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "update", "announcement", id, nil)
	return a, nil
}

func (s *announcementService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Announcement.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}

	if err := s.repo.Announcement.Delete(ctx, id); err != nil {
		s.logger.Error("delete announcement failed", zap.String("id", id), zap.Error(err))
		return err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "delete", "announcement", id, nil)
	return nil
}
