package payroll

import "math"

// Rates carries the overtime and statutory withholding schedule for one
// calculation run. All values come from deployment configuration; nothing
// in the engine hard-codes them.
type Rates struct {
	DailyThresholdHours     float64
	OvertimeMultiplier      float64
	ExcessiveHoursThreshold float64
	TaxMonthlyThreshold     float64
	TaxRate                 float64
	NIMonthlyLower          float64
	NIMonthlyUpper          float64
	NIRate                  float64
}

// DefaultRates is the documented default schedule: 8h daily overtime
// threshold at 1.5x, and the UK monthly PAYE/NI bands.
func DefaultRates() Rates {
	return Rates{
		DailyThresholdHours:     8.0,
		OvertimeMultiplier:      1.5,
		ExcessiveHoursThreshold: 16.0,
		TaxMonthlyThreshold:     1048.0,
		TaxRate:                 0.20,
		NIMonthlyLower:          1048.0,
		NIMonthlyUpper:          4189.0,
		NIRate:                  0.12,
	}
}

type PayBreakdown struct {
	GrossPay        float64
	IncomeTax       float64
	SocialInsurance float64
	NetPay          float64
}

// ComputePay converts aggregated hours into gross pay and applies the
// monthly PAYE and national-insurance bands, assuming the gross figure
// represents one calendar month of pay. Amounts stay unrounded here;
// rounding happens once, at the reporting edge.
func ComputePay(regularHours, overtimeHours, hourlyRate float64, rates Rates) PayBreakdown {
	gross := regularHours*hourlyRate + overtimeHours*hourlyRate*rates.OvertimeMultiplier

	tax := 0.0
	if gross > rates.TaxMonthlyThreshold {
		tax = (gross - rates.TaxMonthlyThreshold) * rates.TaxRate
	}

	ni := 0.0
	if gross > rates.NIMonthlyLower {
		ni = (math.Min(gross, rates.NIMonthlyUpper) - rates.NIMonthlyLower) * rates.NIRate
	}

	return PayBreakdown{
		GrossPay:        gross,
		IncomeTax:       tax,
		SocialInsurance: ni,
		NetPay:          gross - tax - ni,
	}
}

// Round2 rounds a currency amount to two decimal places, half away from
// zero.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
