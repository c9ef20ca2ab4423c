package leave

import "context"

// LeaveService exposes the leave tracker operations.
type LeaveService interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	Cancel(ctx context.Context, leaveID string) (LeaveResponse, error)
	GetBalance(ctx context.Context, employeeID, leaveType string) (BalanceResponse, error)
	OnLeaveToday(ctx context.Context, employeeIDs []string) (OnLeaveTodayResponse, error)
	TeamLeaves(ctx context.Context, employeeIDs []string) (map[string][]LeaveResponse, error)
}
