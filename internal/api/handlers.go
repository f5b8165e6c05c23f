package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"learnai.dev/ai-basics/internal/auth"
	"learnai.dev/ai-basics/internal/core"
)

const tokenTTL = 24 * time.Hour

type contextKey string

const subjectKey contextKey = "subject"

// AuthConfig enables token-protected customization when both fields are set.
type AuthConfig struct {
	JWTSecret     string
	AdminPassword string
}

func (c AuthConfig) enabled() bool {
	return c.JWTSecret != "" && c.AdminPassword != ""
}

type APIHandler struct {
	sessions *core.SessionService
	auth     AuthConfig
	logger   *zap.Logger
}

func NewAPIHandler(sessions *core.SessionService, authCfg AuthConfig, logger *zap.Logger) *APIHandler {
	return &APIHandler{sessions: sessions, auth: authCfg, logger: logger}
}

func (h *APIHandler) JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.auth.enabled() {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		subject, err := auth.ValidateJWT(h.auth.JWTSecret, tokenString)
		if err != nil || subject != auth.AdminSubject {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type LoginRequest struct {
	Password string `json:"password"`
}

func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if !h.auth.enabled() {
		http.Error(w, "Authentication is not configured", http.StatusNotFound)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !auth.CheckPassword(req.Password, h.auth.AdminPassword) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateJWT(h.auth.JWTSecret, auth.AdminSubject, tokenTTL)
	if err != nil {
		h.logger.Error("Failed to generate token", zap.Error(err))
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *APIHandler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.CreateSession()
	if err != nil {
		h.writeError(w, err, "Failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *APIHandler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.GetSession(chi.URLParam(r, "sessionID"))
	h.respond(w, view, err)
}

func (h *APIHandler) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.DeleteSession(chi.URLParam(r, "sessionID")); err != nil {
		h.writeError(w, err, "Failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) EventHandler(w http.ResponseWriter, r *http.Request) {
	var ev core.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	switch ev.Type {
	case core.EventClick, core.EventKeydown, core.EventInput:
	default:
		http.Error(w, "Unknown event type", http.StatusBadRequest)
		return
	}
	view, err := h.sessions.Dispatch(chi.URLParam(r, "sessionID"), ev)
	h.respond(w, view, err)
}

func (h *APIHandler) NavigateHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.Navigate(chi.URLParam(r, "sessionID"), chi.URLParam(r, "tabID"))
	h.respond(w, view, err)
}

func (h *APIHandler) KeyHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.Keydown(chi.URLParam(r, "sessionID"), chi.URLParam(r, "key"))
	h.respond(w, view, err)
}

func (h *APIHandler) StartTrainingHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.StartTraining(chi.URLParam(r, "sessionID"))
	h.respond(w, view, err)
}

func (h *APIHandler) ResetTrainingHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.ResetTraining(chi.URLParam(r, "sessionID"))
	h.respond(w, view, err)
}

type GenerateRequest struct {
	Input string `json:"input"`
}

// GenerateHandler accepts blank input; the page answers it with an alert.
func (h *APIHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	view, err := h.sessions.Generate(chi.URLParam(r, "sessionID"), req.Input)
	h.respond(w, view, err)
}

type ChatRequest struct {
	Message string `json:"message"`
}

func (h *APIHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	view, err := h.sessions.SendChat(chi.URLParam(r, "sessionID"), req.Message)
	h.respond(w, view, err)
}

func (h *APIHandler) AppSectionHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.ShowApp(chi.URLParam(r, "sessionID"), chi.URLParam(r, "section"))
	h.respond(w, view, err)
}

func (h *APIHandler) ListResponsesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sessions.ListResponses())
}

type AddResponseRequest struct {
	Keyword  string `json:"keyword"`
	Response string `json:"response"`
}

func (h *APIHandler) AddResponseHandler(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	var req AddResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.sessions.AddResponse(table, req.Keyword, req.Response); err != nil {
		h.writeError(w, err, "Failed to add response")
		return
	}
	h.logger.Info("Response customized", zap.String("table", table), zap.String("keyword", strings.ToLower(req.Keyword)))
	writeJSON(w, http.StatusCreated, h.sessions.ListResponses())
}

func (h *APIHandler) respond(w http.ResponseWriter, view *core.SessionView, err error) {
	if err != nil {
		h.writeError(w, err, "Failed to update session")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *APIHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, core.ErrSessionNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
	case errors.Is(err, core.ErrUnknownTable):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, core.ErrEmptyKeyword):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrTooManySessions):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		h.logger.Error(fallback, zap.Error(err))
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
