package rosterhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"timepay/internal/domain/auth"
	"timepay/internal/domain/roster"
	"timepay/internal/transport/http/api"
	"timepay/internal/transport/http/middleware"
)

type Handler struct {
	Store *roster.Store
}

func NewHandler(store *roster.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/workers", func(r chi.Router) {
		r.Use(middleware.RequireRole(roster.RoleAdmin, roster.RoleManager))
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Patch("/{workerID}/rate", h.handleUpdateRate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	workers, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "worker_list_failed", "failed to list workers", requestID)
		return
	}
	api.Success(w, workers, requestID)
}

type createWorkerPayload struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Password   string  `json:"password"`
	HourlyRate float64 `json:"hourlyRate"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload createWorkerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", requestID)
		return
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "name, email and password are required", requestID)
		return
	}
	if payload.Role == "" {
		payload.Role = roster.RoleWorker
	}
	if payload.Role != roster.RoleWorker && payload.Role != roster.RoleManager && payload.Role != roster.RoleAdmin {
		api.Fail(w, http.StatusBadRequest, "invalid_role", "role must be worker, manager or admin", requestID)
		return
	}
	if payload.HourlyRate < 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_rate", "hourlyRate must be non-negative", requestID)
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "worker_create_failed", "failed to create worker", requestID)
		return
	}

	id, err := h.Store.Create(r.Context(), payload.Name, payload.Email, payload.Role, hash, payload.HourlyRate)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "worker_create_failed", "failed to create worker", requestID)
		return
	}

	api.Created(w, map[string]string{"id": id}, requestID)
}

type updateRatePayload struct {
	HourlyRate float64 `json:"hourlyRate"`
}

func (h *Handler) handleUpdateRate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	workerID := chi.URLParam(r, "workerID")

	var payload updateRatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", requestID)
		return
	}
	if payload.HourlyRate < 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_rate", "hourlyRate must be non-negative", requestID)
		return
	}

	err := h.Store.UpdateRate(r.Context(), workerID, payload.HourlyRate)
	switch {
	case errors.Is(err, roster.ErrWorkerNotFound):
		api.Fail(w, http.StatusNotFound, "worker_not_found", "worker not found", requestID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "rate_update_failed", "failed to update rate", requestID)
		return
	}

	api.Success(w, map[string]float64{"hourlyRate": payload.HourlyRate}, requestID)
}
