package roster

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrWorkerNotFound = errors.New("worker not found")

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleWorker  = "worker"
)

type Worker struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	HourlyRate float64   `json:"hourlyRate"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context) ([]Worker, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, email, role, hourly_rate, active, created_at
    FROM users
    ORDER BY name, email
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []Worker
	for rows.Next() {
		var worker Worker
		if err := rows.Scan(&worker.ID, &worker.Name, &worker.Email, &worker.Role,
			&worker.HourlyRate, &worker.Active, &worker.CreatedAt); err != nil {
			return nil, err
		}
		workers = append(workers, worker)
	}
	return workers, rows.Err()
}

func (s *Store) Get(ctx context.Context, workerID string) (Worker, error) {
	var worker Worker
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, role, hourly_rate, active, created_at
    FROM users
    WHERE id = $1
  `, workerID).Scan(&worker.ID, &worker.Name, &worker.Email, &worker.Role,
		&worker.HourlyRate, &worker.Active, &worker.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Worker{}, ErrWorkerNotFound
	}
	return worker, err
}

func (s *Store) Create(ctx context.Context, name, email, role, passwordHash string, hourlyRate float64) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (name, email, role, password_hash, hourly_rate, active)
    VALUES ($1,$2,$3,$4,$5,true)
    RETURNING id
  `, name, email, role, passwordHash, hourlyRate).Scan(&id)
	return id, err
}

func (s *Store) UpdateRate(ctx context.Context, workerID string, hourlyRate float64) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE users SET hourly_rate = $1 WHERE id = $2
  `, hourlyRate, workerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkerNotFound
	}
	return nil
}
