package services

import (
	"context"
	"fmt"
	"time"

	"tableside/internal/common"
	"tableside/internal/models"
	"tableside/internal/repositories"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AuditLogsService records admin mutations and serves the activity trail.
// Recording is best effort: a failed write warns but never fails the
// request that triggered it.
type AuditLogsService interface {
	Record(ctx context.Context, action, entityType, entityID string, detail map[string]any)
	List(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
	PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error)
}

type auditLogsService struct {
	auditLogsRepo repositories.AuditLogsRepository
}

func NewAuditLogsService(auditLogsRepo repositories.AuditLogsRepository) AuditLogsService {
	return &auditLogsService{auditLogsRepo: auditLogsRepo}
}

// Record stores one audit entry. The acting admin is read from the request
// context when present.
func (s *auditLogsService) Record(ctx context.Context, action, entityType, entityID string, detail map[string]any) {
	entry := &models.AuditLog{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}
	if adminID, ok := common.GetAdminIDFromContext(ctx); ok {
		entry.AdminID = &adminID
	}

	if err := s.auditLogsRepo.Create(ctx, entry); err != nil {
		fmt.Printf("Failed to record audit log: %v\n", err)
	}
}

func (s *auditLogsService) List(ctx context.Context, limit, offset int) ([]*models.AuditLog, error) {
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.auditLogsRepo.List(ctx, limit, offset)
}

// PurgeOlderThan removes entries past the retention window and returns how
// many went away.
func (s *auditLogsService) PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return s.auditLogsRepo.DeleteOlderThan(ctx, cutoff)
}
