package payroll

import "errors"

var (
	ErrPeriodNotFound = errors.New("payroll period not found")
	ErrPeriodClosed   = errors.New("payroll period is completed and closed for recalculation")
	ErrPeriodExists   = errors.New("payroll period already exists for that month")
	ErrInvalidPeriod  = errors.New("month must be 1-12 and year must be reasonable")
	ErrInvalidStatus  = errors.New("invalid payroll period status")
)
