package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/repository"
	"registrar-portal-backend/internal/service"
)

type TransactionHandler struct {
	intakeSvc   service.IntakeService
	workflowSvc service.WorkflowService
}

func NewTransactionHandler(intakeSvc service.IntakeService, workflowSvc service.WorkflowService) *TransactionHandler {
	return &TransactionHandler{intakeSvc: intakeSvc, workflowSvc: workflowSvc}
}

func pathID(r *http.Request) (int32, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, domain.ErrNotFound
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string, def int32) int32 {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return int32(n)
		}
	}
	return def
}

type submitRequest struct {
	LineItems []service.LineItemRequest `json:"line_items"`
}

func (h *TransactionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	txn, err := h.intakeSvc.Submit(r.Context(), actor.ID, req.LineItems)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, txn)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	txn, err := h.workflowSvc.Get(r.Context(), actor, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txn)
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())

	filter := repository.TransactionFilter{
		Status:       domain.TransactionStatus(r.URL.Query().Get("status")),
		DepartmentID: queryInt32(r, "departmentId", 0),
	}
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "pageSize", 25)

	txns, count, err := h.workflowSvc.List(r.Context(), actor, filter, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: txns, TotalCount: count, Page: page, PageSize: pageSize})
}

type paymentRequest struct {
	PaymentDate    string `json:"payment_date"` // YYYY-MM-DD
	AttachmentName string `json:"attachment_name,omitempty"`
}

func (h *TransactionHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "payment_date must be YYYY-MM-DD"})
		return
	}

	if err := h.workflowSvc.RecordPayment(r.Context(), actor, id, paymentDate, req.AttachmentName); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type scheduleRequest struct {
	ScheduledFor string `json:"scheduled_for"` // RFC 3339
}

func (h *TransactionHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	scheduledFor, err := time.Parse(time.RFC3339, req.ScheduledFor)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "scheduled_for must be RFC 3339"})
		return
	}

	if err := h.workflowSvc.Schedule(r.Context(), actor, id, scheduledFor); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) MarkReady(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.workflowSvc.MarkReady(r.Context(), actor, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type remarksRequest struct {
	Remarks string `json:"remarks"`
}

func (h *TransactionHandler) Claim(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req remarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.workflowSvc.Claim(r.Context(), actor, id, req.Remarks); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TransactionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req remarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.workflowSvc.Reject(r.Context(), actor, id, req.Remarks); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
