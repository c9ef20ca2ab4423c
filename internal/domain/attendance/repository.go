package attendance

import (
	"context"
)

// AttendanceRepository is the record-store access contract for attendance
// day rows.
type AttendanceRepository interface {
	// Create inserts a new attendance day and returns it with the store's
	// record ID filled in.
	Create(ctx context.Context, day AttendanceDay) (AttendanceDay, error)

	// UpdateCheckout patches the checkout fields of an existing row.
	UpdateCheckout(ctx context.Context, recordID, checkOut string, durationHours float64, durationText, status string) error

	// GetByEmployeeAndDate returns the row for (employee, date), nil when
	// none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*AttendanceDay, error)

	// ListByEmployeeRange returns rows for one employee within [start, end].
	ListByEmployeeRange(ctx context.Context, employeeID, startDate, endDate string) ([]AttendanceDay, error)

	// ListByEmployeesRange returns rows for a batch of employees within
	// [start, end].
	ListByEmployeesRange(ctx context.Context, employeeIDs []string, startDate, endDate string) ([]AttendanceDay, error)

	// EmployeeIDsWithAttendance returns the set of employee IDs having any
	// row for the date. Used by the absence-marking job.
	EmployeeIDsWithAttendance(ctx context.Context, date string) (map[string]struct{}, error)
}

// LoginActivityRepository manages the punch-level records.
type LoginActivityRepository interface {
	// Get returns the punch row for (employee, local date), nil when none.
	Get(ctx context.Context, employeeID, date string) (*LoginActivity, error)

	// UpsertCheckIn records a check-in punch for (employee, local date),
	// creating the row when absent.
	UpsertCheckIn(ctx context.Context, employeeID, date, checkInTime string, checkInTS int64, location *string) error

	// UpsertCheckOut records a checkout punch and the accumulated total.
	UpsertCheckOut(ctx context.Context, employeeID, date, checkOutTime string, checkOutTS, totalSeconds int64, location *string) error

	// ListOpen returns records for the date with a check-in timestamp but no
	// checkout timestamp. The filter makes the auto-close job idempotent.
	ListOpen(ctx context.Context, date string) ([]LoginActivity, error)

	// Close patches the checkout fields of a specific record.
	Close(ctx context.Context, recordID, checkOutTime string, checkOutTS, totalSeconds int64) error
}

// SessionStore is the durable, atomically updated active-session table.
// It replaces a process-local map so the one-session-per-employee invariant
// holds across workers and restarts.
type SessionStore interface {
	// TryOpen claims the employee's session slot. Returns
	// ErrAlreadyCheckedIn when a session is already open; the existing
	// session is left untouched.
	TryOpen(ctx context.Context, s Session) error

	// SetRecordID attaches the created attendance record to the claim.
	SetRecordID(ctx context.Context, employeeID, recordID string) error

	// Get returns the open session, nil when none.
	Get(ctx context.Context, employeeID string) (*Session, error)

	// Close removes and returns the open session. Returns
	// ErrNoActiveSession when none exists.
	Close(ctx context.Context, employeeID string) (*Session, error)

	// Delete removes a session if present. Used to release a failed claim
	// and to reap sessions settled by the auto-close job.
	Delete(ctx context.Context, employeeID string) error
}
