package payroll

import "sort"

// BuildSessions pairs a worker's punch events into work sessions. The
// builder sorts its own input by timestamp; callers select the date window
// but do not need to pre-order events. Every event is consumed into exactly
// one session.
//
// Pairing rules:
//   - IN with no open session opens a new session.
//   - IN while a session is open abandons the stale IN: the open session is
//     closed invalid with MISSING_OUT and zero duration, then a new session
//     opens with the fresh IN.
//   - OUT closes the open session with duration out-in, clamped to >= 0.
//   - OUT with no open session becomes a standalone invalid session with
//     MISSING_IN.
//   - A session still open at end of stream closes invalid with MISSING_OUT.
func BuildSessions(events []PunchEvent) []WorkSession {
	sorted := make([]PunchEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var sessions []WorkSession
	var open *WorkSession

	for i := range sorted {
		event := &sorted[i]
		switch event.Kind {
		case PunchIn:
			if open != nil {
				open.Valid = false
				open.Anomaly = AnomalyMissingOut
				open.DurationMs = 0
				sessions = append(sessions, *open)
			}
			open = &WorkSession{In: event, Valid: true}
		case PunchOut:
			if open != nil {
				open.Out = event
				duration := event.Timestamp.Sub(open.In.Timestamp).Milliseconds()
				if duration < 0 {
					duration = 0
				}
				open.DurationMs = duration
				sessions = append(sessions, *open)
				open = nil
			} else {
				sessions = append(sessions, WorkSession{
					Out:     event,
					Valid:   false,
					Anomaly: AnomalyMissingIn,
				})
			}
		}
	}

	if open != nil {
		open.Valid = false
		open.Anomaly = AnomalyMissingOut
		open.DurationMs = 0
		sessions = append(sessions, *open)
	}

	return sessions
}
