package timeclockhandler

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"timepay/internal/domain/roster"
	"timepay/internal/domain/timeclock"
	"timepay/internal/platform/metrics"
	"timepay/internal/transport/http/api"
	"timepay/internal/transport/http/middleware"
	"timepay/internal/transport/http/shared"
)

type Handler struct {
	Timeclock *timeclock.Service
	Metrics   *metrics.Collector
}

func NewHandler(service *timeclock.Service, collector *metrics.Collector) *Handler {
	return &Handler{Timeclock: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/timeclock", func(r chi.Router) {
		r.With(middleware.RequireRole(roster.RoleWorker, roster.RoleManager, roster.RoleAdmin)).Post("/punch", h.handlePunch)
		r.With(middleware.RequireRole(roster.RoleManager, roster.RoleAdmin)).Get("/entries", h.handleEntries)
		r.With(middleware.RequireRole(roster.RoleManager, roster.RoleAdmin)).Get("/export", h.handleExport)
	})
}

type punchPayload struct {
	WorkerID      string   `json:"workerId"`
	Kind          string   `json:"kind"`
	Timestamp     string   `json:"timestamp"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	GeofenceValid bool     `json:"geofenceValid"`
}

func (h *Handler) handlePunch(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload punchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", requestID)
		return
	}

	// Workers punch for themselves; managers may record on behalf of others.
	workerID := payload.WorkerID
	if user.Role == roster.RoleWorker || workerID == "" {
		workerID = user.UserID
	}

	timestamp := time.Now().UTC()
	if payload.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, payload.Timestamp)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_timestamp", "timestamp must be RFC3339", requestID)
			return
		}
		timestamp = parsed
	}

	punch, err := h.Timeclock.Record(r.Context(), timeclock.PunchRequest{
		WorkerID:      workerID,
		Kind:          payload.Kind,
		Timestamp:     timestamp,
		Lat:           payload.Lat,
		Lng:           payload.Lng,
		GeofenceValid: payload.GeofenceValid,
	})
	switch {
	case errors.Is(err, timeclock.ErrInvalidKind),
		errors.Is(err, timeclock.ErrMissingTimestamp),
		errors.Is(err, timeclock.ErrMissingWorker):
		api.Fail(w, http.StatusBadRequest, "invalid_punch", err.Error(), requestID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "punch_failed", "failed to record punch", requestID)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordPunch()
	}
	api.Created(w, punch, requestID)
}

func (h *Handler) handleEntries(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	from, err := shared.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "from must be RFC3339 or YYYY-MM-DD", requestID)
		return
	}
	to, err := shared.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "to must be RFC3339 or YYYY-MM-DD", requestID)
		return
	}
	if from.IsZero() {
		from = time.Now().UTC().AddDate(0, -1, 0)
	}
	if to.IsZero() {
		to = time.Now().UTC()
	}

	pagination := shared.ParsePagination(r, 100, 1000)
	entries, err := h.Timeclock.Entries(r.Context(), r.URL.Query().Get("workerId"), from, to, pagination.Limit, pagination.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "entries_failed", "failed to list entries", requestID)
		return
	}
	api.Success(w, entries, requestID)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	rows, err := h.Timeclock.Timesheet(r.Context(), r.URL.Query().Get("workerId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export timesheet", requestID)
		return
	}
	if len(rows) == 0 {
		api.Fail(w, http.StatusNotFound, "no_records", "no records found", requestID)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=timesheet.csv")

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"Event ID", "Name", "Email", "Kind", "Timestamp", "Geofence Valid"})
	for _, row := range rows {
		_ = writer.Write([]string{
			row.EventID, row.WorkerName, row.WorkerEmail, row.Kind,
			row.Timestamp.UTC().Format(time.RFC3339), strconv.FormatBool(row.GeofenceValid),
		})
	}
	writer.Flush()
}
