package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/voxay/daybrief/internal/digest"
	"github.com/voxay/daybrief/internal/prompt"
	"github.com/voxay/daybrief/internal/userctx"
	"go.uber.org/zap"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	router    *prompt.Router
	store     userctx.Store
	scheduler *digest.Scheduler
	logger    *zap.Logger
}

// NewHandler creates a new API handler. scheduler may be nil when no digest
// subscriptions are configured.
func NewHandler(router *prompt.Router, store userctx.Store, scheduler *digest.Scheduler, logger *zap.Logger) *Handler {
	return &Handler{
		router:    router,
		store:     store,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Router builds the chi router with all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.healthCheck)
		r.Post("/prompt", h.handlePrompt)
		r.Get("/context", h.getContext)
		r.Post("/context", h.saveContext)
		r.Post("/digest/run", h.runDigest)
	})

	return r
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "daybrief"})
}

type promptRequest struct {
	Prompt  string              `json:"prompt"`
	Context userctx.UserContext `json:"context"`
}

func (h *Handler) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.router.Handle(r.Context(), &prompt.Request{
		Prompt:  req.Prompt,
		Token:   bearerToken(r.Header.Get("Authorization")),
		Context: req.Context,
	})
	if err != nil {
		h.logger.Error("prompt failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to process prompt"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

// getContext always answers 200: a failed or missing lookup degrades to the
// default document so the client can proceed.
func (h *Handler) getContext(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromAuth(r.Header.Get("Authorization"))
	if userID == "" {
		writeJSON(w, http.StatusOK, userctx.Default())
		return
	}

	uc, err := h.store.Load(r.Context(), userID)
	if err != nil {
		h.logger.Warn("context load failed, returning defaults",
			zap.String("user", userID), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, uc)
}

func (h *Handler) saveContext(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromAuth(r.Header.Get("Authorization"))
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing authorization"})
		return
	}

	var uc userctx.UserContext
	if err := json.NewDecoder(r.Body).Decode(&uc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.store.Save(r.Context(), userID, uc); err != nil {
		h.logger.Error("context save failed",
			zap.String("user", userID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to save context"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) runDigest(w http.ResponseWriter, r *http.Request) {
	if h.scheduler == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "digest not configured"})
		return
	}
	ran := h.scheduler.RunAll(r.Context())
	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"status":      "digest triggered",
		"subscribers": ran,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
