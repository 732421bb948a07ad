package timeclock

import "errors"

var (
	ErrInvalidKind      = errors.New("punch kind must be IN or OUT")
	ErrMissingTimestamp = errors.New("punch timestamp is required")
	ErrMissingWorker    = errors.New("punch worker is required")
)
