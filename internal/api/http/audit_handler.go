package http

import (
	"net/http"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/repository"
	"registrar-portal-backend/internal/service"
)

type AuditHandler struct {
	auditSvc service.AuditService
}

func NewAuditHandler(auditSvc service.AuditService) *AuditHandler {
	return &AuditHandler{auditSvc: auditSvc}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	filter := repository.AuditLogFilter{
		ActorRole:    domain.ActorRole(r.URL.Query().Get("actorRole")),
		ActorID:      queryInt32(r, "actorId", 0),
		ActivityType: domain.ActivityType(r.URL.Query().Get("activityType")),
	}
	page := queryInt32(r, "page", 1)
	limit := queryInt32(r, "limit", 25)

	entries, count, err := h.auditSvc.List(r.Context(), actor, filter, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: entries, TotalCount: count, Page: page, PageSize: limit})
}
