package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
	"github.com/MattU27/301st-personnel-management-sub002/internal/repository"
)

// writeAudit records an administrative mutation. Audit failures are logged,
// never propagated; the mutation itself already committed.
func writeAudit(ctx context.Context, repo *repository.Repository, logger *zap.Logger, userID, action, resource, resourceID string, details map[string]interface{}) {
	entry := &model.AuditLog{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
	}
	if userID != "" {
		entry.UserID = &userID
	}
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			entry.Details = datatypes.JSON(b)
		}
	}

	if err := repo.Audit.Create(ctx, entry); err != nil {
		logger.Warn("audit write failed",
			zap.String("action", action),
			zap.String("resource", resource),
			zap.String("resource_id", resourceID),
			zap.Error(err),
		)
	}
}

func (s *trainingService) audit(ctx context.Context, userID, action, resource, resourceID string, details map[string]interface{}) {
	writeAudit(ctx, s.repo, s.logger, userID, action, resource, resourceID, details)
}
