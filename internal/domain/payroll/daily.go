package payroll

import "sort"

// AggregateDaily buckets sessions into calendar days and splits each day's
// hours into regular and overtime against the daily threshold. The day key
// is the UTC date of the session's reference timestamp, so a session that
// spans midnight counts entirely toward the day it started.
//
// Invalid sessions contribute zero hours but stay attached to their day so
// anomalies remain visible. Days come back sorted ascending by date.
func AggregateDaily(sessions []WorkSession, rates Rates) []DailyHours {
	buckets := map[string][]WorkSession{}
	for _, session := range sessions {
		if session.In == nil && session.Out == nil {
			continue
		}
		key := session.RefTimestamp().UTC().Format("2006-01-02")
		buckets[key] = append(buckets[key], session)
	}

	days := make([]DailyHours, 0, len(buckets))
	for date, daySessions := range buckets {
		var totalMs int64
		for _, session := range daySessions {
			if session.Valid {
				totalMs += session.DurationMs
			}
		}

		totalHours := float64(totalMs) / msPerHour
		regular := totalHours
		overtime := 0.0
		if totalHours > rates.DailyThresholdHours {
			regular = rates.DailyThresholdHours
			overtime = totalHours - rates.DailyThresholdHours
		}

		var anomalies []string
		if totalHours > rates.ExcessiveHoursThreshold {
			anomalies = append(anomalies, AnomalyExcessiveHours)
		}

		days = append(days, DailyHours{
			Date:          date,
			TotalHours:    totalHours,
			RegularHours:  regular,
			OvertimeHours: overtime,
			Sessions:      daySessions,
			Anomalies:     anomalies,
		})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}
