package payroll

import (
	"strings"
	"testing"
	"time"
)

func TestCalculateWorkerFullPipeline(t *testing.T) {
	events := []PunchEvent{
		punch("a", PunchIn, time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)),
		punch("b", PunchOut, time.Date(2025, time.March, 10, 19, 0, 0, 0, time.UTC)),
		punch("c", PunchIn, time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC)),
		punch("d", PunchOut, time.Date(2025, time.March, 11, 17, 0, 0, 0, time.UTC)),
	}
	result := CalculateWorker("w1", events, 10.0, DefaultRates())

	if result.TotalHours != 18.0 {
		t.Fatalf("expected 18 total hours, got %v", result.TotalHours)
	}
	if result.TotalRegularHours != 16.0 || result.TotalOvertimeHours != 2.0 {
		t.Fatalf("expected 16 regular / 2 overtime, got %v / %v", result.TotalRegularHours, result.TotalOvertimeHours)
	}
	if result.ShiftCount != 2 {
		t.Fatalf("expected 2 shifts, got %d", result.ShiftCount)
	}
	// 16*10 + 2*10*1.5
	if result.GrossPay != 190.0 {
		t.Fatalf("expected gross 190, got %v", result.GrossPay)
	}
	if result.HasAnomalies || len(result.Anomalies) != 0 {
		t.Fatalf("unexpected anomalies %v", result.Anomalies)
	}
	if result.NetPay != result.GrossPay-result.IncomeTax-result.SocialInsurance {
		t.Fatal("net pay does not reconcile with deductions")
	}
}

func TestCalculateWorkerMissingOutAnomaly(t *testing.T) {
	in := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	result := CalculateWorker("w1", []PunchEvent{punch("a", PunchIn, in)}, 10.0, DefaultRates())

	if !result.HasAnomalies || len(result.Anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %v", result.Anomalies)
	}
	anomaly := result.Anomalies[0]
	if anomaly.Kind != AnomalyMissingOut {
		t.Fatalf("expected MISSING_OUT, got %s", anomaly.Kind)
	}
	if anomaly.Description != "Clock IN at 2025-03-10T09:00:00Z has no matching OUT." {
		t.Fatalf("unexpected description %q", anomaly.Description)
	}
	if anomaly.SourceEventID != "a" {
		t.Fatalf("expected source event a, got %q", anomaly.SourceEventID)
	}
	if result.GrossPay != 0 || result.ShiftCount != 0 {
		t.Fatalf("invalid session must not earn pay, got %+v", result)
	}
}

func TestCalculateWorkerMissingInAnomaly(t *testing.T) {
	out := time.Date(2025, time.March, 10, 17, 0, 0, 0, time.UTC)
	result := CalculateWorker("w1", []PunchEvent{punch("b", PunchOut, out)}, 10.0, DefaultRates())

	if len(result.Anomalies) != 1 || result.Anomalies[0].Kind != AnomalyMissingIn {
		t.Fatalf("expected MISSING_IN, got %v", result.Anomalies)
	}
	if result.Anomalies[0].Description != "Clock OUT at 2025-03-10T17:00:00Z has no matching IN." {
		t.Fatalf("unexpected description %q", result.Anomalies[0].Description)
	}
}

func TestCalculateWorkerExcessiveHoursDayAnomaly(t *testing.T) {
	events := []PunchEvent{
		punch("a", PunchIn, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)),
		punch("b", PunchOut, time.Date(2025, time.March, 10, 17, 0, 0, 0, time.UTC)),
	}
	result := CalculateWorker("w1", events, 10.0, DefaultRates())

	if len(result.Anomalies) != 1 {
		t.Fatalf("expected 1 anomaly, got %v", result.Anomalies)
	}
	anomaly := result.Anomalies[0]
	if anomaly.Kind != AnomalyExcessiveHours {
		t.Fatalf("expected EXCESSIVE_HOURS, got %s", anomaly.Kind)
	}
	if !strings.Contains(anomaly.Description, "2025-03-10") {
		t.Fatalf("expected day in description, got %q", anomaly.Description)
	}
	if anomaly.SourceEventID != "" {
		t.Fatal("day-level anomaly must not carry a source event")
	}
}

func TestCalculateWorkerTwoInsThenOut(t *testing.T) {
	events := []PunchEvent{
		punch("a", PunchIn, day(8, 0)),
		punch("b", PunchIn, day(9, 0)),
		punch("c", PunchOut, day(17, 0)),
	}
	result := CalculateWorker("w1", events, 10.0, DefaultRates())

	if result.TotalHours != 8.0 {
		t.Fatalf("expected 8 paid hours, got %v", result.TotalHours)
	}
	if len(result.Anomalies) != 1 || result.Anomalies[0].Kind != AnomalyMissingOut {
		t.Fatalf("expected one MISSING_OUT for the abandoned IN, got %v", result.Anomalies)
	}
	if result.Anomalies[0].SourceEventID != "a" {
		t.Fatalf("expected anomaly sourced from the stale IN, got %q", result.Anomalies[0].SourceEventID)
	}
	if result.ShiftCount != 1 {
		t.Fatalf("expected 1 shift, got %d", result.ShiftCount)
	}
}

func TestCalculateWorkerNoPunches(t *testing.T) {
	result := CalculateWorker("w1", nil, 10.0, DefaultRates())

	if result.TotalHours != 0 || result.GrossPay != 0 || result.ShiftCount != 0 {
		t.Fatalf("expected zeroed result, got %+v", result)
	}
	if result.HasAnomalies {
		t.Fatal("expected no anomalies for empty input")
	}
}

func TestValidatePunches(t *testing.T) {
	valid := []PunchEvent{punch("a", PunchIn, day(9, 0))}
	if err := ValidatePunches(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	badKind := []PunchEvent{{ID: "x", WorkerID: "w1", Kind: "BREAK", Timestamp: day(9, 0)}}
	if err := ValidatePunches(badKind); err == nil {
		t.Fatal("expected error for unknown kind")
	}

	noTimestamp := []PunchEvent{{ID: "y", WorkerID: "w1", Kind: PunchIn}}
	if err := ValidatePunches(noTimestamp); err == nil {
		t.Fatal("expected error for zero timestamp")
	}
}
