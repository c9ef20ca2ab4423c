package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn   = errors.New("already checked in, please check out first")
	ErrNoActiveSession    = errors.New("no active check-in found, please check in first")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
