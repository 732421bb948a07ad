package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetPeriod(ctx context.Context, periodID string) (Period, error) {
	var period Period
	err := s.DB.QueryRow(ctx, `
    SELECT id, month, year, start_date, end_date, status, COALESCE(calculated_by::text, ''), created_at, updated_at
    FROM payroll_periods
    WHERE id = $1
  `, periodID).Scan(&period.ID, &period.Month, &period.Year, &period.StartDate, &period.EndDate,
		&period.Status, &period.CalculatedBy, &period.CreatedAt, &period.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Period{}, ErrPeriodNotFound
	}
	return period, err
}

func (s *Store) CreatePeriod(ctx context.Context, month, year int, start, end time.Time, createdBy string) (Period, error) {
	var exists int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM payroll_periods WHERE month = $1 AND year = $2
  `, month, year).Scan(&exists); err != nil {
		return Period{}, err
	}
	if exists > 0 {
		return Period{}, ErrPeriodExists
	}

	period := Period{Month: month, Year: year, StartDate: start, EndDate: end, Status: PeriodStatusOpen, CalculatedBy: createdBy}
	err := s.DB.QueryRow(ctx, `
    INSERT INTO payroll_periods (month, year, start_date, end_date, status, calculated_by)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, created_at, updated_at
  `, month, year, start, end, PeriodStatusOpen, nullIfEmpty(createdBy)).Scan(&period.ID, &period.CreatedAt, &period.UpdatedAt)
	return period, err
}

func (s *Store) ListPeriods(ctx context.Context) ([]Period, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, month, year, start_date, end_date, status, COALESCE(calculated_by::text, ''), created_at, updated_at
    FROM payroll_periods
    ORDER BY year DESC, month DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []Period
	for rows.Next() {
		var period Period
		if err := rows.Scan(&period.ID, &period.Month, &period.Year, &period.StartDate, &period.EndDate,
			&period.Status, &period.CalculatedBy, &period.CreatedAt, &period.UpdatedAt); err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}

func (s *Store) UpdatePeriodStatus(ctx context.Context, periodID, status string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE payroll_periods SET status = $1, updated_at = now() WHERE id = $2
  `, status, periodID)
	return err
}

func (s *Store) StampPeriodCalculated(ctx context.Context, periodID, calculatedBy string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE payroll_periods SET calculated_by = $1, updated_at = now() WHERE id = $2
  `, nullIfEmpty(calculatedBy), periodID)
	return err
}

// ListPayableWorkers returns every active worker-role user together with
// the punch events whose timestamps fall inside [start, end] inclusive.
func (s *Store) ListPayableWorkers(ctx context.Context, start, end time.Time) ([]WorkerPayrollData, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, email, role, hourly_rate
    FROM users
    WHERE role = 'worker' AND active = true
    ORDER BY name, email
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []WorkerPayrollData
	index := map[string]int{}
	for rows.Next() {
		var worker WorkerPayrollData
		if err := rows.Scan(&worker.WorkerID, &worker.Name, &worker.Email, &worker.Role, &worker.HourlyRate); err != nil {
			return nil, err
		}
		index[worker.WorkerID] = len(workers)
		workers = append(workers, worker)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	punchRows, err := s.DB.Query(ctx, `
    SELECT id, worker_id, kind, timestamp
    FROM punch_events
    WHERE timestamp >= $1 AND timestamp <= $2
    ORDER BY worker_id, timestamp
  `, start, end)
	if err != nil {
		return nil, err
	}
	defer punchRows.Close()

	for punchRows.Next() {
		var punch PunchEvent
		if err := punchRows.Scan(&punch.ID, &punch.WorkerID, &punch.Kind, &punch.Timestamp); err != nil {
			return nil, err
		}
		if i, ok := index[punch.WorkerID]; ok {
			workers[i].Punches = append(workers[i].Punches, punch)
		}
	}
	return workers, punchRows.Err()
}

// CommitWorkerResult writes one worker's summary and anomaly set in a
// single transaction: upsert the summary, delete the old anomalies, insert
// the new ones. Rollback on any failure leaves the previous rows intact.
func (s *Store) CommitWorkerResult(ctx context.Context, periodID string, result CalculationResult) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var summaryID string
	err = tx.QueryRow(ctx, `
    INSERT INTO payroll_summaries
      (period_id, worker_id, hourly_rate, total_regular_hours, total_overtime_hours, total_hours,
       gross_pay, income_tax, social_insurance, net_pay, shift_count, has_anomalies, anomaly_count, generated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now())
    ON CONFLICT (period_id, worker_id) DO UPDATE SET
      hourly_rate = EXCLUDED.hourly_rate,
      total_regular_hours = EXCLUDED.total_regular_hours,
      total_overtime_hours = EXCLUDED.total_overtime_hours,
      total_hours = EXCLUDED.total_hours,
      gross_pay = EXCLUDED.gross_pay,
      income_tax = EXCLUDED.income_tax,
      social_insurance = EXCLUDED.social_insurance,
      net_pay = EXCLUDED.net_pay,
      shift_count = EXCLUDED.shift_count,
      has_anomalies = EXCLUDED.has_anomalies,
      anomaly_count = EXCLUDED.anomaly_count,
      generated_at = now()
    RETURNING id
  `, periodID, result.WorkerID, result.HourlyRate, result.TotalRegularHours, result.TotalOvertimeHours,
		result.TotalHours, result.GrossPay, result.IncomeTax, result.SocialInsurance, result.NetPay,
		result.ShiftCount, result.HasAnomalies, len(result.Anomalies)).Scan(&summaryID)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "DELETE FROM payroll_anomalies WHERE summary_id = $1", summaryID); err != nil {
		return err
	}

	for _, anomaly := range result.Anomalies {
		if _, err := tx.Exec(ctx, `
      INSERT INTO payroll_anomalies (summary_id, kind, occurred_at, description, source_event_id)
      VALUES ($1,$2,$3,$4,$5)
    `, summaryID, anomaly.Kind, anomaly.OccurredAt, anomaly.Description, nullIfEmpty(anomaly.SourceEventID)); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) ListSummaries(ctx context.Context, periodID string) ([]ReportSummary, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT s.worker_id, u.name, u.email, u.role, s.hourly_rate,
           s.total_regular_hours, s.total_overtime_hours, s.total_hours,
           s.gross_pay, s.income_tax, s.social_insurance, s.net_pay,
           s.shift_count, s.has_anomalies, s.anomaly_count
    FROM payroll_summaries s
    JOIN users u ON s.worker_id = u.id
    WHERE s.period_id = $1
    ORDER BY u.name, u.email
  `, periodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []ReportSummary
	for rows.Next() {
		var summary ReportSummary
		if err := rows.Scan(&summary.WorkerID, &summary.WorkerName, &summary.WorkerEmail, &summary.Role,
			&summary.HourlyRate, &summary.RegularHours, &summary.OvertimeHours, &summary.TotalHours,
			&summary.GrossPay, &summary.IncomeTax, &summary.SocialInsurance, &summary.NetPay,
			&summary.ShiftCount, &summary.HasAnomalies, &summary.AnomalyCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *Store) BeginCalculationRun(ctx context.Context, periodID, initiatedBy string) (string, error) {
	var runID string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO calculation_runs (period_id, initiated_by, status)
    VALUES ($1,$2,'running')
    RETURNING id
  `, periodID, nullIfEmpty(initiatedBy)).Scan(&runID)
	return runID, err
}

func (s *Store) FinishCalculationRun(ctx context.Context, runID, status string, detailsJSON []byte) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE calculation_runs SET status = $1, details_json = $2, completed_at = now()
    WHERE id = $3
  `, status, detailsJSON, runID)
	return err
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
