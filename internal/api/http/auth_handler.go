package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"registrar-portal-backend/internal/domain"
	"registrar-portal-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	Actor *domain.Actor `json:"actor"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, actor, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Login failures read as 401, not the workflow's 403.
		if errors.Is(err, domain.ErrUnauthorized) {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{Token: token, Actor: actor})
}
