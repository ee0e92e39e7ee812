package service

import (
	"context"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/repository"
)

type auditService struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditService(auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) List(ctx context.Context, actor *domain.Actor, filter repository.AuditLogFilter, page, pageSize int32) ([]domain.AuditLogEntry, int32, error) {
	// The log is admin reading material; everyone else only sees their own
	// trail.
	if actor.Role != domain.ActorRoleAdmin {
		filter.ActorID = actor.ID
		filter.ActorRole = actor.Role
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 25
	}
	return s.auditRepo.List(ctx, filter, page, pageSize)
}
