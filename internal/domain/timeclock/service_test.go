package timeclock

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	punches []PunchRecord
}

func (f *fakeStore) InsertPunch(_ context.Context, punch PunchRecord) error {
	f.punches = append(f.punches, punch)
	return nil
}

func (f *fakeStore) ListPunches(_ context.Context, workerID string, _, _ time.Time, _, _ int) ([]PunchRecord, error) {
	var out []PunchRecord
	for _, punch := range f.punches {
		if punch.WorkerID == workerID {
			out = append(out, punch)
		}
	}
	return out, nil
}

func (f *fakeStore) TimesheetRows(_ context.Context, _ string) ([]TimesheetRow, error) {
	return nil, nil
}

func TestRecordValidation(t *testing.T) {
	svc := NewService(&fakeStore{})
	ts := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		req  PunchRequest
		want error
	}{
		{"missing worker", PunchRequest{Kind: "IN", Timestamp: ts}, ErrMissingWorker},
		{"bad kind", PunchRequest{WorkerID: "w1", Kind: "BREAK", Timestamp: ts}, ErrInvalidKind},
		{"zero timestamp", PunchRequest{WorkerID: "w1", Kind: "IN"}, ErrMissingTimestamp},
	}
	for _, tc := range cases {
		if _, err := svc.Record(context.Background(), tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestRecordStoresNormalizedPunch(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	loc := time.FixedZone("UTC+2", 2*3600)
	local := time.Date(2025, time.March, 10, 11, 0, 0, 0, loc)

	punch, err := svc.Record(context.Background(), PunchRequest{WorkerID: "w1", Kind: "IN", Timestamp: local})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if punch.ID == "" {
		t.Fatal("expected generated id")
	}
	if punch.Timestamp.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", punch.Timestamp.Location())
	}
	if !punch.Timestamp.Equal(local) {
		t.Fatal("normalization must not shift the instant")
	}
	if len(store.punches) != 1 {
		t.Fatalf("expected 1 stored punch, got %d", len(store.punches))
	}
}
