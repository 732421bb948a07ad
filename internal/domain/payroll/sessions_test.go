package payroll

import (
	"testing"
	"time"
)

func punch(id, kind string, ts time.Time) PunchEvent {
	return PunchEvent{ID: id, WorkerID: "w1", Kind: kind, Timestamp: ts}
}

func day(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func TestBuildSessionsSimplePair(t *testing.T) {
	sessions := BuildSessions([]PunchEvent{
		punch("a", PunchIn, day(9, 0)),
		punch("b", PunchOut, day(17, 0)),
	})

	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	session := sessions[0]
	if !session.Valid {
		t.Fatal("expected session to be valid")
	}
	if session.DurationMs != 8*3600*1000 {
		t.Fatalf("expected 8h duration, got %dms", session.DurationMs)
	}
	if session.Anomaly != "" {
		t.Fatalf("unexpected anomaly %q", session.Anomaly)
	}
}

func TestBuildSessionsSortsInput(t *testing.T) {
	sessions := BuildSessions([]PunchEvent{
		punch("b", PunchOut, day(17, 0)),
		punch("a", PunchIn, day(9, 0)),
	})

	if len(sessions) != 1 || !sessions[0].Valid {
		t.Fatalf("expected one valid session from unsorted input, got %+v", sessions)
	}
}

func TestBuildSessionsLoneInIsMissingOut(t *testing.T) {
	sessions := BuildSessions([]PunchEvent{punch("a", PunchIn, day(9, 0))})

	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].Valid {
		t.Fatal("expected invalid session")
	}
	if sessions[0].Anomaly != AnomalyMissingOut {
		t.Fatalf("expected MISSING_OUT, got %q", sessions[0].Anomaly)
	}
	if sessions[0].DurationMs != 0 {
		t.Fatalf("expected zero duration, got %d", sessions[0].DurationMs)
	}
}

func TestBuildSessionsLoneOutIsMissingIn(t *testing.T) {
	sessions := BuildSessions([]PunchEvent{punch("a", PunchOut, day(17, 0))})

	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].Anomaly != AnomalyMissingIn {
		t.Fatalf("expected MISSING_IN, got %q", sessions[0].Anomaly)
	}
	if sessions[0].In != nil {
		t.Fatal("expected no IN event")
	}
}

func TestBuildSessionsDoubleIn(t *testing.T) {
	sessions := BuildSessions([]PunchEvent{
		punch("a", PunchIn, day(8, 0)),
		punch("b", PunchIn, day(9, 0)),
		punch("c", PunchOut, day(17, 0)),
	})

	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	first, second := sessions[0], sessions[1]
	if first.Valid || first.Anomaly != AnomalyMissingOut || first.DurationMs != 0 {
		t.Fatalf("expected first session invalid MISSING_OUT, got %+v", first)
	}
	if !second.Valid || second.In.ID != "b" || second.Out.ID != "c" {
		t.Fatalf("expected second session to span b..c, got %+v", second)
	}
	if second.DurationMs != 8*3600*1000 {
		t.Fatalf("expected 8h duration, got %dms", second.DurationMs)
	}
}

func TestBuildSessionsEveryEventConsumedOnce(t *testing.T) {
	events := []PunchEvent{
		punch("a", PunchIn, day(8, 0)),
		punch("b", PunchIn, day(9, 0)),
		punch("c", PunchOut, day(12, 0)),
		punch("d", PunchOut, day(13, 0)),
		punch("e", PunchIn, day(14, 0)),
	}
	sessions := BuildSessions(events)

	seen := map[string]int{}
	for _, session := range sessions {
		if session.In != nil {
			seen[session.In.ID]++
		}
		if session.Out != nil {
			seen[session.Out.ID]++
		}
	}
	for _, event := range events {
		if seen[event.ID] != 1 {
			t.Fatalf("event %s consumed %d times", event.ID, seen[event.ID])
		}
	}
}

func TestBuildSessionsClampsNegativeDuration(t *testing.T) {
	ts := day(9, 0)
	sessions := BuildSessions([]PunchEvent{
		punch("a", PunchIn, ts),
		punch("b", PunchOut, ts),
	})
	if sessions[0].DurationMs != 0 {
		t.Fatalf("expected zero duration, got %d", sessions[0].DurationMs)
	}
}
