package http

import (
	"net/http"
	"time"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/service"
)

type ReportHandler struct {
	reportSvc service.ReportService
}

func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

func queryDate(r *http.Request, name string) time.Time {
	if v := r.URL.Query().Get(name); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func granularityParam(r *http.Request) domain.ReportGranularity {
	switch r.URL.Query().Get("granularity") {
	case "monthly":
		return domain.GranularityMonthly
	case "yearly":
		return domain.GranularityYearly
	default:
		return domain.GranularityDaily
	}
}

func (h *ReportHandler) TransactionCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reportSvc.TransactionCounts(r.Context(), granularityParam(r), queryDate(r, "from"), queryDate(r, "to"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, counts)
}

func (h *ReportHandler) CredentialTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.reportSvc.CredentialTotals(r.Context(), queryDate(r, "from"), queryDate(r, "to"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, totals)
}

func (h *ReportHandler) DepartmentCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reportSvc.DepartmentCounts(r.Context(), queryDate(r, "from"), queryDate(r, "to"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, counts)
}

func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportSvc.Summary(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
