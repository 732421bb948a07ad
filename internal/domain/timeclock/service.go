package timeclock

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StoreAPI is the persistence surface the service depends on; the pgx
// implementation lives in store.go.
type StoreAPI interface {
	InsertPunch(ctx context.Context, punch PunchRecord) error
	ListPunches(ctx context.Context, workerID string, from, to time.Time, limit, offset int) ([]PunchRecord, error)
	TimesheetRows(ctx context.Context, workerID string) ([]TimesheetRow, error)
}

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

type PunchRequest struct {
	WorkerID      string
	Kind          string
	Timestamp     time.Time
	Lat           *float64
	Lng           *float64
	GeofenceValid bool
}

// Record validates and stores one punch. Punches are immutable once
// recorded; anomaly classification happens later, in the payroll engine.
func (s *Service) Record(ctx context.Context, req PunchRequest) (PunchRecord, error) {
	if req.WorkerID == "" {
		return PunchRecord{}, ErrMissingWorker
	}
	if req.Kind != "IN" && req.Kind != "OUT" {
		return PunchRecord{}, ErrInvalidKind
	}
	if req.Timestamp.IsZero() {
		return PunchRecord{}, ErrMissingTimestamp
	}

	punch := PunchRecord{
		ID:            uuid.NewString(),
		WorkerID:      req.WorkerID,
		Kind:          req.Kind,
		Timestamp:     req.Timestamp.UTC(),
		Lat:           req.Lat,
		Lng:           req.Lng,
		GeofenceValid: req.GeofenceValid,
	}
	if err := s.store.InsertPunch(ctx, punch); err != nil {
		return PunchRecord{}, err
	}
	return punch, nil
}

func (s *Service) Entries(ctx context.Context, workerID string, from, to time.Time, limit, offset int) ([]PunchRecord, error) {
	return s.store.ListPunches(ctx, workerID, from, to, limit, offset)
}

func (s *Service) Timesheet(ctx context.Context, workerID string) ([]TimesheetRow, error) {
	return s.store.TimesheetRows(ctx, workerID)
}
