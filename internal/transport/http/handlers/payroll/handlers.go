package payrollhandler

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"timepay/internal/domain/payroll"
	"timepay/internal/domain/roster"
	"timepay/internal/platform/metrics"
	"timepay/internal/transport/http/api"
	"timepay/internal/transport/http/middleware"
)

type Handler struct {
	Payroll *payroll.Service
	Metrics *metrics.Collector
}

func NewHandler(service *payroll.Service, collector *metrics.Collector) *Handler {
	return &Handler{Payroll: service, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Use(middleware.RequireRole(roster.RoleAdmin, roster.RoleManager))
		r.Get("/periods", h.handleListPeriods)
		r.Post("/periods", h.handleCreatePeriod)
		r.Post("/periods/{periodID}/calculate", h.handleCalculate)
		r.Patch("/periods/{periodID}/status", h.handleUpdateStatus)
		r.Get("/periods/{periodID}/report", h.handleReport)
		r.Get("/periods/{periodID}/export", h.handleExportCSV)
		r.Get("/periods/{periodID}/export.pdf", h.handleExportPDF)
	})
}

type createPeriodPayload struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (h *Handler) handleCreatePeriod(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	var payload createPeriodPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", requestID)
		return
	}

	period, err := h.Payroll.CreatePeriod(r.Context(), payload.Month, payload.Year, user.UserID)
	switch {
	case errors.Is(err, payroll.ErrInvalidPeriod):
		api.Fail(w, http.StatusBadRequest, "invalid_period", err.Error(), requestID)
		return
	case errors.Is(err, payroll.ErrPeriodExists):
		api.Fail(w, http.StatusConflict, "period_exists", err.Error(), requestID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "period_create_failed", "failed to create period", requestID)
		return
	}

	api.Created(w, period, requestID)
}

func (h *Handler) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	periods, err := h.Payroll.ListPeriods(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "period_list_failed", "failed to list periods", requestID)
		return
	}
	api.Success(w, periods, requestID)
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	periodID := chi.URLParam(r, "periodID")

	response, err := h.Payroll.Calculate(r.Context(), periodID, user.UserID)
	switch {
	case errors.Is(err, payroll.ErrPeriodNotFound):
		api.Fail(w, http.StatusNotFound, "period_not_found", err.Error(), requestID)
		return
	case errors.Is(err, payroll.ErrPeriodClosed):
		api.Fail(w, http.StatusConflict, "period_closed", err.Error(), requestID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "calculation_failed", "payroll calculation failed", requestID)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordCalculation()
	}
	api.Success(w, response, requestID)
}

type statusPayload struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	periodID := chi.URLParam(r, "periodID")

	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", requestID)
		return
	}

	err := h.Payroll.UpdateStatus(r.Context(), periodID, strings.ToUpper(strings.TrimSpace(payload.Status)))
	switch {
	case errors.Is(err, payroll.ErrPeriodNotFound):
		api.Fail(w, http.StatusNotFound, "period_not_found", err.Error(), requestID)
		return
	case errors.Is(err, payroll.ErrInvalidStatus):
		api.Fail(w, http.StatusBadRequest, "invalid_status", err.Error(), requestID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "status_update_failed", "failed to update period status", requestID)
		return
	}

	api.Success(w, map[string]string{"status": payload.Status}, requestID)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	periodID := chi.URLParam(r, "periodID")

	report, err := h.Payroll.Report(r.Context(), periodID)
	switch {
	case errors.Is(err, payroll.ErrPeriodNotFound):
		api.Fail(w, http.StatusNotFound, "period_not_found", err.Error(), requestID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", requestID)
		return
	}

	api.Success(w, report, requestID)
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	periodID := chi.URLParam(r, "periodID")

	rows, err := h.Payroll.ExportRows(r.Context(), periodID)
	switch {
	case errors.Is(err, payroll.ErrPeriodNotFound):
		api.Fail(w, http.StatusNotFound, "period_not_found", err.Error(), requestID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build export", requestID)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payroll-%s.csv", periodID))

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"Employee", "Role", "Regular Hours", "Overtime Hours", "Hourly Rate", "Gross Pay", "Tax", "Social Insurance", "Net Pay"})
	for _, row := range rows {
		_ = writer.Write([]string{
			row.Employee, row.Role, row.RegularHours, row.OvertimeHours,
			row.HourlyRate, row.GrossPay, row.Tax, row.SocialInsurance, row.NetPay,
		})
	}
	writer.Flush()
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	periodID := chi.URLParam(r, "periodID")

	report, err := h.Payroll.Report(r.Context(), periodID)
	switch {
	case errors.Is(err, payroll.ErrPeriodNotFound):
		api.Fail(w, http.StatusNotFound, "period_not_found", err.Error(), requestID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to build export", requestID)
		return
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Payroll Register %02d/%d", report.Period.Month, report.Period.Year))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 9)
	headers := []string{"Employee", "Role", "Reg Hrs", "OT Hrs", "Rate", "Gross", "Tax", "NI", "Net"}
	widths := []float64{60, 25, 22, 22, 22, 28, 28, 28, 28}
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, summary := range report.Summaries {
		cells := []string{
			summary.WorkerName,
			summary.Role,
			fmt.Sprintf("%.2f", summary.RegularHours),
			fmt.Sprintf("%.2f", summary.OvertimeHours),
			fmt.Sprintf("%.2f", summary.HourlyRate),
			fmt.Sprintf("%.2f", summary.GrossPay),
			fmt.Sprintf("%.2f", summary.IncomeTax),
			fmt.Sprintf("%.2f", summary.SocialInsurance),
			fmt.Sprintf("%.2f", summary.NetPay),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Employees: %d   Gross: %.2f   With anomalies: %d",
		report.Totals.TotalEmployees, report.Totals.TotalGrossPay, report.Totals.EmployeesWithAnomalies))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payroll-%s.pdf", periodID))
	if err := pdf.Output(w); err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render PDF", requestID)
	}
}
