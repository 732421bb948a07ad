package payroll

const (
	PeriodStatusOpen      = "OPEN"
	PeriodStatusLocked    = "LOCKED"
	PeriodStatusCompleted = "COMPLETED"

	PunchIn  = "IN"
	PunchOut = "OUT"

	AnomalyMissingIn      = "MISSING_IN"
	AnomalyMissingOut     = "MISSING_OUT"
	AnomalyExcessiveHours = "EXCESSIVE_HOURS"

	RunStatusCompleted  = "completed"
	RunStatusWithErrors = "completed_with_errors"
)

const msPerHour = 3600000.0
