package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/clinic-management/clinic-service/internal/validation"
	"github.com/sirupsen/logrus"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginMetrics records login outcomes
type LoginMetrics interface {
	RecordLogin(ctx context.Context, success bool)
}

type LoginHandler struct {
	credentials *CredentialStore
	tokens      *TokenManager
	metrics     LoginMetrics
	log         logrus.FieldLogger
}

func NewLoginHandler(credentials *CredentialStore, tokens *TokenManager, metrics LoginMetrics, log logrus.FieldLogger) *LoginHandler {
	return &LoginHandler{
		credentials: credentials,
		tokens:      tokens,
		metrics:     metrics,
		log:         log.WithField("component", "auth"),
	}
}

// Login serves POST /login
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if err := validation.Struct(req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}

	role, err := h.credentials.Authenticate(req.Username, req.Password)
	if err != nil {
		h.record(r.Context(), false)
		if errors.Is(err, ErrInvalidCredentials) {
			h.log.WithField("username", req.Username).Info("Rejected login")
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "login_failed", err.Error())
		return
	}

	var roles []string
	if role != "" {
		roles = []string{role}
	}
	token, expiresAt, err := h.tokens.Issue(req.Username, roles)
	if err != nil {
		h.log.WithError(err).Error("Failed to sign login token")
		respondError(w, http.StatusInternalServerError, "login_failed", "Failed to issue token")
		return
	}

	h.record(r.Context(), true)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
	})
}

func (h *LoginHandler) record(ctx context.Context, success bool) {
	if h.metrics != nil {
		h.metrics.RecordLogin(ctx, success)
	}
}
