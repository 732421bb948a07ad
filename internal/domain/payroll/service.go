package payroll

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Service orchestrates payroll calculation over a period. It holds no
// mutable state of its own; rates and pool size are fixed at construction
// from configuration.
type Service struct {
	store    StoreAPI
	rates    Rates
	poolSize int
}

func NewService(store StoreAPI, rates Rates, poolSize int) *Service {
	if poolSize < 1 {
		poolSize = 1
	}
	return &Service{store: store, rates: rates, poolSize: poolSize}
}

// CreatePeriod creates the calendar-month period for (month, year). The
// window spans the first instant of the month to the last instant of its
// final day, in UTC.
func (s *Service) CreatePeriod(ctx context.Context, month, year int, createdBy string) (Period, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return Period{}, ErrInvalidPeriod
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return s.store.CreatePeriod(ctx, month, year, start, end, createdBy)
}

func (s *Service) ListPeriods(ctx context.Context) ([]Period, error) {
	return s.store.ListPeriods(ctx)
}

// UpdateStatus performs the administrative status transitions the engine
// itself never takes: OPEN<->LOCKED and promotion to COMPLETED.
func (s *Service) UpdateStatus(ctx context.Context, periodID, status string) error {
	switch status {
	case PeriodStatusOpen, PeriodStatusLocked, PeriodStatusCompleted:
	default:
		return ErrInvalidStatus
	}
	if _, err := s.store.GetPeriod(ctx, periodID); err != nil {
		return err
	}
	return s.store.UpdatePeriodStatus(ctx, periodID, status)
}

// Calculate recomputes every payable worker's summary for the period.
// Workers are processed independently on a bounded pool; one worker's
// failure is recorded and does not abort the batch. Re-running on
// unchanged punch data is idempotent: each worker's summary is upserted
// and its anomaly set fully replaced.
func (s *Service) Calculate(ctx context.Context, periodID, initiatedBy string) (CalculationResponse, error) {
	period, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return CalculationResponse{}, err
	}
	if period.Status == PeriodStatusCompleted {
		return CalculationResponse{}, ErrPeriodClosed
	}

	workers, err := s.store.ListPayableWorkers(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return CalculationResponse{}, fmt.Errorf("load payable workers: %w", err)
	}

	runID, err := s.store.BeginCalculationRun(ctx, period.ID, initiatedBy)
	if err != nil {
		slog.Warn("calculation run insert failed", "periodId", period.ID, "err", err)
	}

	response := CalculationResponse{Errors: []string{}}
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, s.poolSize)

	for _, worker := range workers {
		wg.Add(1)
		sem <- struct{}{}
		go func(worker WorkerPayrollData) {
			defer wg.Done()
			defer func() { <-sem }()

			anomalies, err := s.calculateOne(ctx, period.ID, worker)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				response.Errors = append(response.Errors, fmt.Sprintf("worker %s: %v", workerLabel(worker), err))
				return
			}
			response.Processed++
			response.Anomalies += anomalies
		}(worker)
	}
	wg.Wait()
	sort.Strings(response.Errors)

	// Stamped even when individual workers failed; callers inspect the
	// errors array to detect an incomplete period.
	if err := s.store.StampPeriodCalculated(ctx, period.ID, initiatedBy); err != nil {
		slog.Warn("period stamp failed", "periodId", period.ID, "err", err)
	}

	response.CompletedAt = time.Now().UTC()
	s.finishRun(ctx, runID, response)
	return response, nil
}

func (s *Service) calculateOne(ctx context.Context, periodID string, worker WorkerPayrollData) (int, error) {
	if err := ValidatePunches(worker.Punches); err != nil {
		return 0, err
	}
	result := CalculateWorker(worker.WorkerID, worker.Punches, worker.HourlyRate, s.rates)
	if err := s.store.CommitWorkerResult(ctx, periodID, result); err != nil {
		return 0, fmt.Errorf("persist summary: %w", err)
	}
	return len(result.Anomalies), nil
}

func (s *Service) finishRun(ctx context.Context, runID string, response CalculationResponse) {
	if runID == "" {
		return
	}
	status := RunStatusCompleted
	if len(response.Errors) > 0 {
		status = RunStatusWithErrors
	}
	details, err := json.Marshal(response)
	if err != nil {
		details = []byte("{}")
	}
	if err := s.store.FinishCalculationRun(ctx, runID, status, details); err != nil {
		slog.Warn("calculation run update failed", "runId", runID, "err", err)
	}
}

func workerLabel(worker WorkerPayrollData) string {
	if worker.Email != "" {
		return worker.Email
	}
	return worker.WorkerID
}
