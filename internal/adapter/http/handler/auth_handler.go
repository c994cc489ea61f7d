package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/adapter/http/dto"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/infrastructure/metrics"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// AuthHandler handles demo login and session requests.
type AuthHandler struct {
	authUC          *usecase.AuthUsecase
	defaultEntityID string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUC *usecase.AuthUsecase, defaultEntityID string) *AuthHandler {
	return &AuthHandler{
		authUC:          authUC,
		defaultEntityID: defaultEntityID,
	}
}

// Login issues a demo session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required", nil)
		return
	}
	entityID := req.EntityID
	if entityID == "" {
		entityID = h.defaultEntityID
	}

	result, err := h.authUC.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
		EntityID: entityID,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "login failed", err)
		return
	}

	metrics.RecordLogin()
	writeJSON(w, http.StatusCreated, dto.SessionFromDomain(result.Token, result.Session))
}

// Session returns the session the middleware resolved for this request.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := domain.SessionFromContext(r.Context())
	if !ok || session.UserID == "" {
		writeError(w, http.StatusUnauthorized, "no active session", nil)
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionFromDomain("", session))
}
