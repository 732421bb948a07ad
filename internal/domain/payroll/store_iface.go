package payroll

import (
	"context"
	"time"
)

// StoreAPI is the persistence surface the service depends on. The pgx
// implementation lives in store_data.go; tests substitute a fake.
type StoreAPI interface {
	GetPeriod(ctx context.Context, periodID string) (Period, error)
	CreatePeriod(ctx context.Context, month, year int, start, end time.Time, createdBy string) (Period, error)
	ListPeriods(ctx context.Context) ([]Period, error)
	UpdatePeriodStatus(ctx context.Context, periodID, status string) error
	StampPeriodCalculated(ctx context.Context, periodID, calculatedBy string) error

	ListPayableWorkers(ctx context.Context, start, end time.Time) ([]WorkerPayrollData, error)

	// CommitWorkerResult upserts the worker's summary and replaces its
	// anomaly set in one transaction. A failure leaves the previously
	// stored rows untouched.
	CommitWorkerResult(ctx context.Context, periodID string, result CalculationResult) error

	ListSummaries(ctx context.Context, periodID string) ([]ReportSummary, error)

	BeginCalculationRun(ctx context.Context, periodID, initiatedBy string) (string, error)
	FinishCalculationRun(ctx context.Context, runID, status string, detailsJSON []byte) error
}
