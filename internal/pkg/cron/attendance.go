package cron

import (
	"context"
	"log/slog"

	"github.com/vtab-hr/hr-backend-go/internal/domain/attendance"
)

// AttendanceJobs wires the two end-of-day reconciliation jobs onto the
// scheduler. Auto-close settles sessions still open at 23:59 UTC; absence
// marking backfills the previous day at 00:10 UTC, after auto-close has
// landed.
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceSvc: attendanceSvc}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddDailyJob("auto_close_open_sessions", 23, 59, j.AutoCloseOpenSessions)
	scheduler.AddDailyJob("mark_absent_employees", 0, 10, j.MarkAbsentEmployees)
}

func (j *AttendanceJobs) AutoCloseOpenSessions(ctx context.Context) error {
	slog.Info("Cron: Starting auto-close open sessions job")

	result, err := j.attendanceSvc.RunAutoCloseJob(ctx)
	if err != nil {
		return err
	}

	slog.Info("Cron: Auto-closed open sessions", "count", result.ClosedCount)
	return nil
}

func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	slog.Info("Cron: Starting mark absent employees job")

	result, err := j.attendanceSvc.RunAbsenceMarkingJob(ctx)
	if err != nil {
		return err
	}

	slog.Info("Cron: Marked absent employees", "count", result.CreatedCount)
	return nil
}
