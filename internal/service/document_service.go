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
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentSettled  = errors.New("document already verified or rejected")
)

// DocumentService is the document metadata business interface.
type DocumentService interface {
	Create(ctx context.Context, req *dto.CreateDocumentRequest, ownerID string) (*model.Document, error)
	GetByID(ctx context.Context, id string) (*model.Document, error)
	List(ctx context.Context, req *dto.DocumentListRequest) ([]model.Document, int64, error)
	Verify(ctx context.Context, id string, req *dto.VerifyDocumentRequest, verifierID string) (*model.Document, error)
	Delete(ctx context.Context, id string, callerID, callerRole string) error
}

type documentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(repo *repository.Repository, logger *zap.Logger) DocumentService {
	return &documentService{repo: repo, logger: logger}
}

func (s *documentService) Create(ctx context.Context, req *dto.CreateDocumentRequest, ownerID string) (*model.Document, error) {
	d := &model.Document{
		UserID: ownerID,
		Title:  req.Title,
		Type:   req.Type,
		Status: model.DocumentStatusPending,
	}
	if err := s.repo.Document.Create(ctx, d); err != nil {
		s.logger.Error("create document failed", zap.Error(err))
		return nil, err
	}

	writeAudit(ctx, s.repo, s.logger, ownerID, "create", "document", d.DocumentID, nil)
	return d, nil
}

func (s *documentService) GetByID(ctx context.Context, id string) (*model.Document, error) {
	d, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *documentService) List(ctx context.Context, req *dto.DocumentListRequest) ([]model.Document, int64, error) {
	filters := &repository.DocumentListFilters{
		UserID: req.UserID,
		Status: req.Status,
	}
	return s.repo.Document.ListWithFilters(ctx, filters, req.GetOffset(), req.GetPageSize())
}

// Verify settles a pending document. Settled documents cannot be re-verified.
func (s *documentService) Verify(ctx context.Context, id string, req *dto.VerifyDocumentRequest, verifierID string) (*model.Document, error) {
	d, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if d.Status != model.DocumentStatusPending {
		return nil, ErrDocumentSettled
	}

	now := time.Now()
	d.Status = req.Status
	d.Remarks = req.Remarks
	d.VerifiedBy = &verifierID
	d.VerifiedAt = &now

	if err := s.repo.Document.Update(ctx, d); err != nil {
		s.logger.Error("verify document failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	writeAudit(ctx, s.repo, s.logger, verifierID, "verify", "document", id,
		map[string]interface{}{"status": req.Status})
	return d, nil
}

func (s *documentService) Delete(ctx context.Context, id string, callerID, callerRole string) error {
	d, err := s.repo.Document.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	// owners may remove their own pending documents; staff and above remove any
	if callerRole == model.RoleReservist {
		if d.UserID != callerID || d.Status != model.DocumentStatusPending {
			return ErrNoPermission
		}
	}

	if err := s.repo.Document.Delete(ctx, id); err != nil {
		s.logger.Error("delete document failed", zap.String("id", id), zap.Error(err))
		return err
	}

	writeAudit(ctx, s.repo, s.logger, callerID, "delete", "document", id, nil)
	return nil
}
