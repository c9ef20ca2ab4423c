package leave

import "context"

// LeaveRepository is the record-store access contract for leave rows.
type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)

	// GetByLeaveID returns the row carrying the business ID, nil when none.
	GetByLeaveID(ctx context.Context, leaveID string) (*Leave, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]Leave, error)

	// ListByEmployeesIntersecting returns leaves for the batch whose range
	// intersects [start, end].
	ListByEmployeesIntersecting(ctx context.Context, employeeIDs []string, startDate, endDate string) ([]Leave, error)

	// ListApprovedCovering returns approved leaves whose range covers the
	// date. An empty employeeIDs slice means all employees.
	ListApprovedCovering(ctx context.Context, employeeIDs []string, date string) ([]Leave, error)

	// UpdateStatus patches the lifecycle state of a row.
	UpdateStatus(ctx context.Context, recordID string, status LeaveStatus) error
}

// BalanceRepository reads per-employee leave balances from the resolved
// balance binding. Implementations return zero, not an error, when the
// binding or the employee's row is missing.
type BalanceRepository interface {
	GetBalance(ctx context.Context, employeeID, leaveType string) (float64, error)
}
