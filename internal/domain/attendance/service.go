package attendance

import (
	"context"
)

// AttendanceService is the reconciliation core exposed to handlers and the
// scheduler.
type AttendanceService interface {
	CheckIn(ctx context.Context, req PunchRequest) (CheckInResponse, error)
	CheckOut(ctx context.Context, req PunchRequest) (CheckOutResponse, error)
	GetStatus(ctx context.Context, employeeID string) (StatusResponse, error)
	GetMonthlyAttendance(ctx context.Context, employeeID string, year, month int) (MonthlyAttendanceResponse, error)
	GetTeamMonthlyAttendance(ctx context.Context, employeeIDs []string, year, month int) (TeamMonthResponse, error)
	RunAutoCloseJob(ctx context.Context) (AutoCloseResult, error)
	RunAbsenceMarkingJob(ctx context.Context) (AbsenceMarkingResult, error)
}
