package timeclock

import "time"

// PunchRecord is a recorded clock event. GeofenceValid is supplied by the
// recording caller, which validates coordinates before this boundary; it is
// never recomputed here or downstream.
type PunchRecord struct {
	ID            string    `json:"id"`
	WorkerID      string    `json:"workerId"`
	Kind          string    `json:"kind"`
	Timestamp     time.Time `json:"timestamp"`
	Lat           *float64  `json:"lat,omitempty"`
	Lng           *float64  `json:"lng,omitempty"`
	GeofenceValid bool      `json:"geofenceValid"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TimesheetRow is one line of the flat timesheet export.
type TimesheetRow struct {
	EventID       string
	WorkerName    string
	WorkerEmail   string
	Kind          string
	Timestamp     time.Time
	GeofenceValid bool
}
