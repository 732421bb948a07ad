package timeclock

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) InsertPunch(ctx context.Context, punch PunchRecord) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO punch_events (id, worker_id, kind, timestamp, lat, lng, geofence_valid)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, punch.ID, punch.WorkerID, punch.Kind, punch.Timestamp, punch.Lat, punch.Lng, punch.GeofenceValid)
	return err
}

func (s *Store) ListPunches(ctx context.Context, workerID string, from, to time.Time, limit, offset int) ([]PunchRecord, error) {
	query := `
    SELECT id, worker_id, kind, timestamp, lat, lng, geofence_valid, created_at
    FROM punch_events
    WHERE timestamp >= $1 AND timestamp <= $2
  `
	args := []any{from, to}
	if workerID != "" {
		query += " AND worker_id = $3"
		args = append(args, workerID)
	}
	query += " ORDER BY timestamp ASC"
	if limit > 0 {
		query += " LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var punches []PunchRecord
	for rows.Next() {
		var punch PunchRecord
		if err := rows.Scan(&punch.ID, &punch.WorkerID, &punch.Kind, &punch.Timestamp,
			&punch.Lat, &punch.Lng, &punch.GeofenceValid, &punch.CreatedAt); err != nil {
			return nil, err
		}
		punches = append(punches, punch)
	}
	return punches, rows.Err()
}

func (s *Store) TimesheetRows(ctx context.Context, workerID string) ([]TimesheetRow, error) {
	query := `
    SELECT p.id, u.name, u.email, p.kind, p.timestamp, p.geofence_valid
    FROM punch_events p
    JOIN users u ON p.worker_id = u.id
  `
	args := []any{}
	if workerID != "" {
		query += " WHERE p.worker_id = $1"
		args = append(args, workerID)
	}
	query += " ORDER BY p.timestamp ASC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TimesheetRow
	for rows.Next() {
		var row TimesheetRow
		if err := rows.Scan(&row.EventID, &row.WorkerName, &row.WorkerEmail, &row.Kind,
			&row.Timestamp, &row.GeofenceValid); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
