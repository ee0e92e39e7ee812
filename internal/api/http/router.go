package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles the handlers the router mounts.
type Handlers struct {
	Auth        *AuthHandler
	Transaction *TransactionHandler
	Catalog     *CatalogHandler
	Audit       *AuditHandler
	Report      *ReportHandler
}

// NewRouter mounts the REST surface under /api/v1 plus /health and /metrics.
func NewRouter(h *Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/login", Instrument("/auth/login", h.Auth.Login)).Methods("POST")

	// Workflow
	api.HandleFunc("/transactions", Instrument("/transactions", auth.Require(h.Transaction.Submit))).Methods("POST")
	api.HandleFunc("/transactions", Instrument("/transactions", auth.Require(h.Transaction.List))).Methods("GET")
	api.HandleFunc("/transactions/{id}", Instrument("/transactions/{id}", auth.Require(h.Transaction.Get))).Methods("GET")
	api.HandleFunc("/transactions/{id}/payment", Instrument("/transactions/{id}/payment", auth.Require(h.Transaction.RecordPayment))).Methods("PUT")
	api.HandleFunc("/transactions/{id}/schedule", Instrument("/transactions/{id}/schedule", auth.Require(h.Transaction.Schedule))).Methods("PUT")
	api.HandleFunc("/transactions/{id}/ready", Instrument("/transactions/{id}/ready", auth.Require(h.Transaction.MarkReady))).Methods("PUT")
	api.HandleFunc("/transactions/{id}/claim", Instrument("/transactions/{id}/claim", auth.Require(h.Transaction.Claim))).Methods("PUT")
	api.HandleFunc("/transactions/{id}/reject", Instrument("/transactions/{id}/reject", auth.Require(h.Transaction.Reject))).Methods("PUT")

	// Audit log
	api.HandleFunc("/audit-logs", Instrument("/audit-logs", auth.Require(h.Audit.List))).Methods("GET")

	// Reports
	api.HandleFunc("/reports/transactions", Instrument("/reports/transactions", auth.Require(h.Report.TransactionCounts))).Methods("GET")
	api.HandleFunc("/reports/credentials", Instrument("/reports/credentials", auth.Require(h.Report.CredentialTotals))).Methods("GET")
	api.HandleFunc("/reports/departments", Instrument("/reports/departments", auth.Require(h.Report.DepartmentCounts))).Methods("GET")
	api.HandleFunc("/reports/summary", Instrument("/reports/summary", auth.Require(h.Report.Summary))).Methods("GET")

	// Catalog administration
	api.HandleFunc("/credentials", Instrument("/credentials", auth.Require(h.Catalog.ListCredentials))).Methods("GET")
	api.HandleFunc("/credentials", Instrument("/credentials", auth.Require(h.Catalog.CreateCredential))).Methods("POST")
	api.HandleFunc("/credentials/{id}", Instrument("/credentials/{id}", auth.Require(h.Catalog.UpdateCredential))).Methods("PUT")
	api.HandleFunc("/credentials/{id}", Instrument("/credentials/{id}", auth.Require(h.Catalog.DeleteCredential))).Methods("DELETE")

	api.HandleFunc("/packages", Instrument("/packages", auth.Require(h.Catalog.ListPackages))).Methods("GET")
	api.HandleFunc("/packages", Instrument("/packages", auth.Require(h.Catalog.CreatePackage))).Methods("POST")
	api.HandleFunc("/packages/{id}", Instrument("/packages/{id}", auth.Require(h.Catalog.UpdatePackage))).Methods("PUT")
	api.HandleFunc("/packages/{id}", Instrument("/packages/{id}", auth.Require(h.Catalog.DeletePackage))).Methods("DELETE")

	api.HandleFunc("/departments", Instrument("/departments", auth.Require(h.Catalog.ListDepartments))).Methods("GET")
	api.HandleFunc("/departments", Instrument("/departments", auth.Require(h.Catalog.CreateDepartment))).Methods("POST")
	api.HandleFunc("/departments/{id}", Instrument("/departments/{id}", auth.Require(h.Catalog.UpdateDepartment))).Methods("PUT")
	api.HandleFunc("/departments/{id}", Instrument("/departments/{id}", auth.Require(h.Catalog.DeleteDepartment))).Methods("DELETE")

	api.HandleFunc("/actors", Instrument("/actors", auth.Require(h.Catalog.ListActors))).Methods("GET")
	api.HandleFunc("/actors", Instrument("/actors", auth.Require(h.Catalog.CreateActor))).Methods("POST")
	api.HandleFunc("/actors/{id}", Instrument("/actors/{id}", auth.Require(h.Catalog.UpdateActor))).Methods("PUT")

	return r
}
