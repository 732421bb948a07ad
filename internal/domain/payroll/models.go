package payroll

import "time"

// PunchEvent is a single clock IN or OUT action, recorded by the time-clock
// subsystem. Read-only input to the calculation engine.
type PunchEvent struct {
	ID        string    `json:"id"`
	WorkerID  string    `json:"workerId"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// WorkSession pairs an IN punch with its OUT punch. At most one of the two
// may be absent; such sessions are invalid and carry an anomaly kind.
type WorkSession struct {
	In         *PunchEvent `json:"inEvent,omitempty"`
	Out        *PunchEvent `json:"outEvent,omitempty"`
	DurationMs int64       `json:"durationMs"`
	Valid      bool        `json:"valid"`
	Anomaly    string      `json:"anomaly,omitempty"`
}

// RefTimestamp is the session's reference instant: the IN punch when
// present, otherwise the OUT punch.
func (s WorkSession) RefTimestamp() time.Time {
	if s.In != nil {
		return s.In.Timestamp
	}
	return s.Out.Timestamp
}

// DailyHours is one calendar day's aggregation for a worker. The invariant
// totalHours = regularHours + overtimeHours holds for every day.
type DailyHours struct {
	Date          string        `json:"date"`
	TotalHours    float64       `json:"totalHours"`
	RegularHours  float64       `json:"regularHours"`
	OvertimeHours float64       `json:"overtimeHours"`
	Sessions      []WorkSession `json:"sessions"`
	Anomalies     []string      `json:"anomalies,omitempty"`
}

type Anomaly struct {
	Kind          string    `json:"kind"`
	OccurredAt    time.Time `json:"occurredAt"`
	Description   string    `json:"description"`
	SourceEventID string    `json:"sourceEventId,omitempty"`
}

// CalculationResult is the ephemeral output of one engine run for one
// worker. The orchestrator persists a projection of it and discards it.
type CalculationResult struct {
	WorkerID           string       `json:"workerId"`
	HourlyRate         float64      `json:"hourlyRate"`
	TotalRegularHours  float64      `json:"totalRegularHours"`
	TotalOvertimeHours float64      `json:"totalOvertimeHours"`
	TotalHours         float64      `json:"totalHours"`
	GrossPay           float64      `json:"grossPay"`
	IncomeTax          float64      `json:"incomeTax"`
	SocialInsurance    float64      `json:"socialInsurance"`
	NetPay             float64      `json:"netPay"`
	ShiftCount         int          `json:"shiftCount"`
	DailyBreakdown     []DailyHours `json:"dailyBreakdown"`
	Anomalies          []Anomaly    `json:"anomalies"`
	HasAnomalies       bool         `json:"hasAnomalies"`
}

type Period struct {
	ID           string    `json:"id"`
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
	CalculatedBy string    `json:"calculatedBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WorkerPayrollData is one payable worker together with the punches that
// fall inside the period window.
type WorkerPayrollData struct {
	WorkerID   string
	Name       string
	Email      string
	Role       string
	HourlyRate float64
	Punches    []PunchEvent
}

// ReportSummary is one worker's committed summary joined with display
// identity, as returned by the period report.
type ReportSummary struct {
	WorkerID        string  `json:"workerId"`
	WorkerName      string  `json:"workerName"`
	WorkerEmail     string  `json:"workerEmail"`
	Role            string  `json:"role"`
	HourlyRate      float64 `json:"hourlyRate"`
	RegularHours    float64 `json:"regularHours"`
	OvertimeHours   float64 `json:"overtimeHours"`
	TotalHours      float64 `json:"totalHours"`
	GrossPay        float64 `json:"grossPay"`
	IncomeTax       float64 `json:"incomeTax"`
	SocialInsurance float64 `json:"socialInsurance"`
	NetPay          float64 `json:"netPay"`
	ShiftCount      int     `json:"shiftCount"`
	HasAnomalies    bool    `json:"hasAnomalies"`
	AnomalyCount    int     `json:"anomalyCount"`
}

type ReportTotals struct {
	TotalEmployees         int     `json:"totalEmployees"`
	TotalRegularHours      float64 `json:"totalRegularHours"`
	TotalOvertimeHours     float64 `json:"totalOvertimeHours"`
	TotalGrossPay          float64 `json:"totalGrossPay"`
	EmployeesWithAnomalies int     `json:"employeesWithAnomalies"`
}

type Report struct {
	Period    Period          `json:"period"`
	Summaries []ReportSummary `json:"summaries"`
	Totals    ReportTotals    `json:"totals"`
}

// ExportRow is one flat record of the tabular export, every currency field
// already formatted to two decimals.
type ExportRow struct {
	Employee        string `json:"employee"`
	Role            string `json:"role"`
	RegularHours    string `json:"regularHours"`
	OvertimeHours   string `json:"overtimeHours"`
	HourlyRate      string `json:"hourlyRate"`
	GrossPay        string `json:"grossPay"`
	Tax             string `json:"tax"`
	SocialInsurance string `json:"socialInsurance"`
	NetPay          string `json:"netPay"`
}

type CalculationResponse struct {
	Processed   int       `json:"processed"`
	Anomalies   int       `json:"anomalies"`
	Errors      []string  `json:"errors"`
	CompletedAt time.Time `json:"completedAt"`
}
