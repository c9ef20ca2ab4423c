package attendance

import (
	"time"
)

// AttendanceDay is one employee's summarized attendance for one calendar
// date. At most one row exists per (employee, date); rows are created on the
// first check-in of the day or by the absence-marking job and are never
// deleted in normal operation.
type AttendanceDay struct {
	RecordID      string
	AttendanceID  string
	EmployeeID    string
	Date          string // YYYY-MM-DD
	CheckIn       *string
	CheckOut      *string
	DurationHours float64
	DurationText  string
	Status        string
}

// LoginActivity is the punch-level record backing AttendanceDay, keyed by
// the employee's local calendar date. BaseSeconds carries worked time over
// an auto-close boundary when a session reopens on the same logical day.
type LoginActivity struct {
	RecordID         string
	EmployeeID       string
	Date             string
	CheckInTime      *string
	CheckInTS        int64
	CheckInLocation  *string
	CheckOutTime     *string
	CheckOutTS       int64
	CheckOutLocation *string
	BaseSeconds      int64
	TotalSeconds     int64
}

// Session is the open check-in claim for an employee. Exactly one exists
// between a check-in and the matching check-out or auto-close.
type Session struct {
	EmployeeID   string
	RecordID     string
	AttendanceID string
	CheckInTime  string // HH:MM:SS
	CheckInAt    time.Time
}

// DayRecord is the per-day view returned by the monthly endpoints, carrying
// attendance fields plus the optional leave overlay.
type DayRecord struct {
	Date         string         `json:"date"`
	Day          int            `json:"day"`
	AttendanceID *string        `json:"attendance_id"`
	CheckIn      *string        `json:"checkIn"`
	CheckOut     *string        `json:"checkOut"`
	Duration     float64        `json:"duration"`
	DurationText *string        `json:"duration_text"`
	Status       string         `json:"status"`
	LeaveType    *string        `json:"leaveType,omitempty"`
	PaidUnpaid   *string        `json:"paid_unpaid,omitempty"`
	LeaveStart   *string        `json:"leaveStart,omitempty"`
	LeaveEnd     *string        `json:"leaveEnd,omitempty"`
	LeaveStatus  *string        `json:"leaveStatus,omitempty"`
	PendingLeave []PendingLeave `json:"pendingLeaves,omitempty"`
}

// PendingLeave is a not-yet-approved leave attached to a day as metadata.
// Several may overlap the same day and all are retained.
type PendingLeave struct {
	LeaveID    string  `json:"leave_id"`
	LeaveType  string  `json:"leaveType"`
	Status     string  `json:"status"`
	PaidUnpaid *string `json:"paid_unpaid"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
}
