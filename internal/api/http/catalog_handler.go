package http

import (
	"encoding/json"
	"net/http"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/service"
)

type CatalogHandler struct {
	catalogSvc service.CatalogService
}

func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

func (h *CatalogHandler) CreateCredential(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	var cred domain.Credential
	if err := json.NewDecoder(r.Body).Decode(&cred); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.catalogSvc.CreateCredential(r.Context(), actor, &cred); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cred)
}

func (h *CatalogHandler) UpdateCredential(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var cred domain.Credential
	if err := json.NewDecoder(r.Body).Decode(&cred); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	cred.ID = id
	if err := h.catalogSvc.UpdateCredential(r.Context(), actor, &cred); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cred)
}

func (h *CatalogHandler) DeleteCredential(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.catalogSvc.DeleteCredential(r.Context(), actor, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) ListCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := h.catalogSvc.ListCredentials(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, creds)
}

func (h *CatalogHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	var pkg domain.Package
	if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.catalogSvc.CreatePackage(r.Context(), actor, &pkg); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, pkg)
}

func (h *CatalogHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var pkg domain.Package
	if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	pkg.ID = id
	if err := h.catalogSvc.UpdatePackage(r.Context(), actor, &pkg); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pkg)
}

func (h *CatalogHandler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.catalogSvc.DeletePackage(r.Context(), actor, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.catalogSvc.ListPackages(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pkgs)
}

func (h *CatalogHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	var dept domain.Department
	if err := json.NewDecoder(r.Body).Decode(&dept); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.catalogSvc.CreateDepartment(r.Context(), actor, &dept); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dept)
}

func (h *CatalogHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var dept domain.Department
	if err := json.NewDecoder(r.Body).Decode(&dept); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	dept.ID = id
	if err := h.catalogSvc.UpdateDepartment(r.Context(), actor, &dept); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dept)
}

func (h *CatalogHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.catalogSvc.DeleteDepartment(r.Context(), actor, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	depts, err := h.catalogSvc.ListDepartments(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, depts)
}

type createActorRequest struct {
	domain.Actor
	Password string `json:"password"`
}

func (h *CatalogHandler) CreateActor(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	var req createActorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.catalogSvc.CreateActor(r.Context(), actor, &req.Actor, req.Password); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, req.Actor)
}

func (h *CatalogHandler) UpdateActor(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var target domain.Actor
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	target.ID = id
	if err := h.catalogSvc.UpdateActor(r.Context(), actor, &target); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, target)
}

func (h *CatalogHandler) ListActors(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	role := domain.ActorRole(r.URL.Query().Get("role"))
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "pageSize", 25)

	actors, count, err := h.catalogSvc.ListActors(r.Context(), actor, role, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pagedResponse{Items: actors, TotalCount: count, Page: page, PageSize: pageSize})
}
