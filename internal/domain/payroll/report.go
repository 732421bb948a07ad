package payroll

import (
	"context"
	"fmt"
)

// Report assembles the read-only period report: each committed summary
// joined with worker identity, plus period-wide totals. Currency and hour
// figures are rounded here, at the reporting edge; stored values stay
// unrounded.
func (s *Service) Report(ctx context.Context, periodID string) (Report, error) {
	period, err := s.store.GetPeriod(ctx, periodID)
	if err != nil {
		return Report{}, err
	}

	summaries, err := s.store.ListSummaries(ctx, periodID)
	if err != nil {
		return Report{}, fmt.Errorf("load summaries: %w", err)
	}

	totals := ReportTotals{TotalEmployees: len(summaries)}
	for i := range summaries {
		totals.TotalRegularHours += summaries[i].RegularHours
		totals.TotalOvertimeHours += summaries[i].OvertimeHours
		totals.TotalGrossPay += summaries[i].GrossPay
		if summaries[i].HasAnomalies {
			totals.EmployeesWithAnomalies++
		}
		roundSummary(&summaries[i])
	}
	totals.TotalRegularHours = Round2(totals.TotalRegularHours)
	totals.TotalOvertimeHours = Round2(totals.TotalOvertimeHours)
	totals.TotalGrossPay = Round2(totals.TotalGrossPay)

	return Report{Period: period, Summaries: summaries, Totals: totals}, nil
}

// ExportRows renders the period's summaries as flat records for a CSV or
// other tabular renderer. Projection and formatting only.
func (s *Service) ExportRows(ctx context.Context, periodID string) ([]ExportRow, error) {
	report, err := s.Report(ctx, periodID)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportRow, 0, len(report.Summaries))
	for _, summary := range report.Summaries {
		rows = append(rows, ExportRow{
			Employee:        summary.WorkerName,
			Role:            summary.Role,
			RegularHours:    format2(summary.RegularHours),
			OvertimeHours:   format2(summary.OvertimeHours),
			HourlyRate:      format2(summary.HourlyRate),
			GrossPay:        format2(summary.GrossPay),
			Tax:             format2(summary.IncomeTax),
			SocialInsurance: format2(summary.SocialInsurance),
			NetPay:          format2(summary.NetPay),
		})
	}
	return rows, nil
}

func roundSummary(summary *ReportSummary) {
	summary.RegularHours = Round2(summary.RegularHours)
	summary.OvertimeHours = Round2(summary.OvertimeHours)
	summary.TotalHours = Round2(summary.TotalHours)
	summary.GrossPay = Round2(summary.GrossPay)
	summary.IncomeTax = Round2(summary.IncomeTax)
	summary.SocialInsurance = Round2(summary.SocialInsurance)
	summary.NetPay = Round2(summary.NetPay)
}

func format2(value float64) string {
	return fmt.Sprintf("%.2f", Round2(value))
}
