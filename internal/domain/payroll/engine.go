package payroll

import (
	"fmt"
	"time"
)

// CalculateWorker runs the full pipeline for one worker's punches inside a
// period window: session building, daily aggregation, then pay and
// deduction computation. The result is transient and owned by the caller.
func CalculateWorker(workerID string, events []PunchEvent, hourlyRate float64, rates Rates) CalculationResult {
	sessions := BuildSessions(events)
	days := AggregateDaily(sessions, rates)

	result := CalculationResult{
		WorkerID:       workerID,
		HourlyRate:     hourlyRate,
		DailyBreakdown: days,
	}

	for _, day := range days {
		result.TotalRegularHours += day.RegularHours
		result.TotalOvertimeHours += day.OvertimeHours
		result.TotalHours += day.TotalHours
		if day.TotalHours > 0 {
			result.ShiftCount++
		}

		for _, session := range day.Sessions {
			if session.Anomaly == "" {
				continue
			}
			result.Anomalies = append(result.Anomalies, Anomaly{
				Kind:          session.Anomaly,
				OccurredAt:    session.RefTimestamp(),
				Description:   anomalyDescription(session),
				SourceEventID: sourceEventID(session),
			})
		}

		for _, kind := range day.Anomalies {
			if dayHasSessionAnomaly(day, kind) {
				continue
			}
			occurredAt, _ := time.Parse("2006-01-02", day.Date)
			result.Anomalies = append(result.Anomalies, Anomaly{
				Kind:        kind,
				OccurredAt:  occurredAt,
				Description: fmt.Sprintf("Day %s: %s", day.Date, kind),
			})
		}
	}

	pay := ComputePay(result.TotalRegularHours, result.TotalOvertimeHours, hourlyRate, rates)
	result.GrossPay = pay.GrossPay
	result.IncomeTax = pay.IncomeTax
	result.SocialInsurance = pay.SocialInsurance
	result.NetPay = pay.NetPay
	result.HasAnomalies = len(result.Anomalies) > 0

	return result
}

// ValidatePunches rejects punch data the engine cannot interpret. A failed
// worker is reported in the batch response, never retried.
func ValidatePunches(events []PunchEvent) error {
	for _, event := range events {
		if event.Kind != PunchIn && event.Kind != PunchOut {
			return fmt.Errorf("punch %s has unknown kind %q", event.ID, event.Kind)
		}
		if event.Timestamp.IsZero() {
			return fmt.Errorf("punch %s has no timestamp", event.ID)
		}
	}
	return nil
}

func anomalyDescription(session WorkSession) string {
	switch session.Anomaly {
	case AnomalyMissingOut:
		return fmt.Sprintf("Clock IN at %s has no matching OUT.", session.In.Timestamp.UTC().Format(time.RFC3339))
	case AnomalyMissingIn:
		return fmt.Sprintf("Clock OUT at %s has no matching IN.", session.Out.Timestamp.UTC().Format(time.RFC3339))
	}
	return "Anomaly detected: " + session.Anomaly
}

func sourceEventID(session WorkSession) string {
	if session.In != nil {
		return session.In.ID
	}
	if session.Out != nil {
		return session.Out.ID
	}
	return ""
}

func dayHasSessionAnomaly(day DailyHours, kind string) bool {
	for _, session := range day.Sessions {
		if session.Anomaly == kind {
			return true
		}
	}
	return false
}
