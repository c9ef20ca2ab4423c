package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vtab-hr/hr-backend-go/internal/domain/attendance"
	"github.com/vtab-hr/hr-backend-go/internal/domain/employee"
	"github.com/vtab-hr/hr-backend-go/internal/domain/leave"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/identifier"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/realtime"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/validator"
)

const eventAttendanceChanged = "attendance:changed"

type attendanceService struct {
	attendanceRepo attendance.AttendanceRepository
	activityRepo   attendance.LoginActivityRepository
	sessions       attendance.SessionStore
	leaveRepo      leave.LeaveRepository
	employeeRepo   employee.EmployeeRepository
	emitter        realtime.Emitter
	thresholds     attendance.Thresholds
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	activityRepo attendance.LoginActivityRepository,
	sessions attendance.SessionStore,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	emitter realtime.Emitter,
	thresholds attendance.Thresholds,
) attendance.AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		activityRepo:   activityRepo,
		sessions:       sessions,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
		emitter:        emitter,
		thresholds:     thresholds,
		now:            time.Now,
	}
}

// punchMoment resolves the effective punch time: the client's own clock in
// its own zone when parseable, otherwise the server clock in the client's
// named zone, otherwise server UTC.
func (s *attendanceService) punchMoment(clientTime, timezone string) time.Time {
	if clientTime != "" {
		if t, err := time.Parse(time.RFC3339, clientTime); err == nil {
			return t
		}
		slog.Warn("Unparseable client time, falling back to server clock", "client_time", clientTime)
	}
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err == nil {
			return s.now().In(loc)
		}
		slog.Warn("Unknown timezone, falling back to UTC", "timezone", timezone)
	}
	return s.now().UTC()
}

func (s *attendanceService) CheckIn(ctx context.Context, req attendance.PunchRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	moment := s.punchMoment(req.ClientTime, req.Timezone)
	date := moment.Format("2006-01-02")
	checkInTime := moment.Format("15:04:05")

	// A reopen on the same calendar day reuses the existing row instead of
	// violating the one-row-per-day invariant.
	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	attendanceID := identifier.New("ATD")
	if existing != nil {
		attendanceID = existing.AttendanceID
	}

	// The claim is the concurrency gate: whoever inserts the row owns the
	// day's session, everyone else conflicts here.
	err = s.sessions.TryOpen(ctx, attendance.Session{
		EmployeeID:   req.EmployeeID,
		AttendanceID: attendanceID,
		CheckInTime:  checkInTime,
		CheckInAt:    moment,
	})
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	recordID := ""
	if existing != nil {
		recordID = existing.RecordID
	} else {
		day := attendance.AttendanceDay{
			AttendanceID: attendanceID,
			EmployeeID:   req.EmployeeID,
			Date:         date,
			CheckIn:      &checkInTime,
			DurationText: attendance.DurationText(0),
			Status:       attendance.StatusAbsent,
		}

		created, createErr := s.attendanceRepo.Create(ctx, day)
		if createErr != nil {
			// Release the claim so the employee can retry; otherwise the
			// slot stays occupied with no record behind it.
			if delErr := s.sessions.Delete(ctx, req.EmployeeID); delErr != nil {
				slog.Error("Failed to release session claim after create failure",
					"employee_id", req.EmployeeID, "error", delErr)
			}
			return attendance.CheckInResponse{}, createErr
		}
		recordID = created.RecordID
	}

	if err := s.sessions.SetRecordID(ctx, req.EmployeeID, recordID); err != nil {
		slog.Error("Failed to attach record to session",
			"employee_id", req.EmployeeID, "record_id", recordID, "error", err)
	}

	if err := s.activityRepo.UpsertCheckIn(ctx, req.EmployeeID, date, checkInTime, moment.Unix(), req.Location.StringPtr()); err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("record check-in punch: %w", err)
	}

	s.emitter.Emit(eventAttendanceChanged, map[string]interface{}{
		"employee_id": req.EmployeeID,
		"date":        date,
		"action":      "checkin",
	})

	slog.Info("Employee checked in",
		"employee_id", req.EmployeeID, "attendance_id", attendanceID, "date", date)

	return attendance.CheckInResponse{
		RecordID:     recordID,
		AttendanceID: attendanceID,
		CheckInTime:  checkInTime,
	}, nil
}

func (s *attendanceService) CheckOut(ctx context.Context, req attendance.PunchRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	sess, err := s.sessions.Close(ctx, req.EmployeeID)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	moment := s.punchMoment(req.ClientTime, req.Timezone)
	date := moment.Format("2006-01-02")
	checkOutTime := moment.Format("15:04:05")

	sessionSeconds := attendance.SessionSeconds(sess.CheckInAt.Unix(), moment.Unix())

	total := sessionSeconds
	if activity, actErr := s.activityRepo.Get(ctx, req.EmployeeID, date); actErr == nil && activity != nil {
		total = activity.BaseSeconds + sessionSeconds
	} else if actErr != nil {
		slog.Warn("Could not read punch row for base seconds, using session only",
			"employee_id", req.EmployeeID, "error", actErr)
	}

	durationText := attendance.DurationText(total)
	durationHours := attendance.DurationHours(total)
	status := s.thresholds.Derive(total)

	recordID := sess.RecordID
	if recordID == "" {
		if day, dayErr := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date); dayErr == nil && day != nil {
			recordID = day.RecordID
		}
	}
	if recordID != "" {
		if err := s.attendanceRepo.UpdateCheckout(ctx, recordID, checkOutTime, durationHours, durationText, status); err != nil {
			return attendance.CheckOutResponse{}, err
		}
	} else {
		slog.Error("No attendance record to settle at checkout",
			"employee_id", req.EmployeeID, "date", date)
	}

	if err := s.activityRepo.UpsertCheckOut(ctx, req.EmployeeID, date, checkOutTime, moment.Unix(), total, req.Location.StringPtr()); err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("record checkout punch: %w", err)
	}

	s.emitter.Emit(eventAttendanceChanged, map[string]interface{}{
		"employee_id": req.EmployeeID,
		"date":        date,
		"action":      "checkout",
	})

	slog.Info("Employee checked out",
		"employee_id", req.EmployeeID, "date", date, "total_seconds", total, "status", status)

	return attendance.CheckOutResponse{
		CheckOutTime: checkOutTime,
		Duration:     durationText,
		TotalHours:   durationHours,
	}, nil
}

func (s *attendanceService) GetStatus(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	normalized, ok := validator.NormalizeEmployeeID(employeeID)
	if !ok {
		return attendance.StatusResponse{}, validator.ValidationErrors{{Field: "employee_id", Message: "employee ID is required in EMP#### format"}}
	}

	sess, err := s.sessions.Get(ctx, normalized)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	if sess == nil {
		return attendance.StatusResponse{CheckedIn: false}, nil
	}

	elapsed := attendance.SessionSeconds(sess.CheckInAt.Unix(), s.now().Unix())
	checkInTime := sess.CheckInTime
	attendanceID := sess.AttendanceID

	return attendance.StatusResponse{
		CheckedIn:      true,
		CheckInTime:    &checkInTime,
		AttendanceID:   &attendanceID,
		ElapsedSeconds: &elapsed,
	}, nil
}

func (s *attendanceService) GetMonthlyAttendance(ctx context.Context, employeeID string, year, month int) (attendance.MonthlyAttendanceResponse, error) {
	normalized, ok := validator.NormalizeEmployeeID(employeeID)
	if !ok {
		return attendance.MonthlyAttendanceResponse{}, validator.ValidationErrors{{Field: "employee_id", Message: "employee ID is required in EMP#### format"}}
	}

	start, end, err := leave.MonthRange(year, time.Month(month))
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	days, err := s.attendanceRepo.ListByEmployeeRange(ctx, normalized, start, end)
	if err != nil {
		return attendance.MonthlyAttendanceResponse{}, err
	}

	leaves, err := s.leaveRepo.ListByEmployeesIntersecting(ctx, []string{normalized}, start, end)
	if err != nil {
		slog.Warn("Leave fetch failed for month view, returning attendance only",
			"employee_id", normalized, "error", err)
		leaves = nil
	}

	records := leave.OverlayMonth(year, time.Month(month), days, leaves)
	return attendance.MonthlyAttendanceResponse{Records: records, Count: len(records)}, nil
}

func (s *attendanceService) GetTeamMonthlyAttendance(ctx context.Context, employeeIDs []string, year, month int) (attendance.TeamMonthResponse, error) {
	normalized := make([]string, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		if n, ok := validator.NormalizeEmployeeID(id); ok {
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return attendance.TeamMonthResponse{}, validator.ValidationErrors{{Field: "employee_ids", Message: "at least one employee ID is required"}}
	}

	start, end, err := leave.MonthRange(year, time.Month(month))
	if err != nil {
		return attendance.TeamMonthResponse{}, err
	}

	days, err := s.attendanceRepo.ListByEmployeesRange(ctx, normalized, start, end)
	if err != nil {
		return attendance.TeamMonthResponse{}, err
	}

	leaves, err := s.leaveRepo.ListByEmployeesIntersecting(ctx, normalized, start, end)
	if err != nil {
		return attendance.TeamMonthResponse{}, err
	}

	records := leave.OverlayTeamMonth(year, time.Month(month), days, leaves, normalized)
	return attendance.TeamMonthResponse{Records: records, Count: len(records)}, nil
}

// RunAutoCloseJob settles every punch row still open today. Selection by
// "checkout is null" makes reruns no-ops; per-item failures skip the item
// so one bad row cannot wedge the whole sweep.
func (s *attendanceService) RunAutoCloseJob(ctx context.Context) (attendance.AutoCloseResult, error) {
	now := s.now().UTC()
	today := now.Format("2006-01-02")

	open, err := s.activityRepo.ListOpen(ctx, today)
	if err != nil {
		return attendance.AutoCloseResult{}, fmt.Errorf("list open punches: %w", err)
	}

	closed := 0
	for _, activity := range open {
		total := activity.BaseSeconds + attendance.SessionSeconds(activity.CheckInTS, now.Unix())
		checkOutTime := now.Format("15:04:05")

		if err := s.activityRepo.Close(ctx, activity.RecordID, checkOutTime, now.Unix(), total); err != nil {
			slog.Error("Auto-close: failed to settle punch row",
				"employee_id", activity.EmployeeID, "record_id", activity.RecordID, "error", err)
			continue
		}

		day, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, activity.EmployeeID, activity.Date)
		if err != nil || day == nil {
			slog.Error("Auto-close: no attendance day to settle",
				"employee_id", activity.EmployeeID, "date", activity.Date, "error", err)
		} else {
			if err := s.attendanceRepo.UpdateCheckout(ctx, day.RecordID, checkOutTime,
				attendance.DurationHours(total), attendance.DurationText(total), s.thresholds.Derive(total)); err != nil {
				slog.Error("Auto-close: failed to update attendance day",
					"employee_id", activity.EmployeeID, "record_id", day.RecordID, "error", err)
			}
		}

		// A lingering claim would block tomorrow's check-in.
		if err := s.sessions.Delete(ctx, activity.EmployeeID); err != nil {
			slog.Error("Auto-close: failed to reap session claim",
				"employee_id", activity.EmployeeID, "error", err)
		}

		closed++
	}

	if closed > 0 {
		s.emitter.Emit(eventAttendanceChanged, map[string]interface{}{
			"date":   today,
			"action": "auto_close",
			"count":  closed,
		})
	}

	slog.Info("Auto-close job finished", "date", today, "closed", closed)
	return attendance.AutoCloseResult{ClosedCount: closed}, nil
}

// RunAbsenceMarkingJob backfills absence rows for the previous calendar
// day. Weekends are not working days and are skipped outright.
func (s *attendanceService) RunAbsenceMarkingJob(ctx context.Context) (attendance.AbsenceMarkingResult, error) {
	yesterday := s.now().UTC().AddDate(0, 0, -1)
	if wd := yesterday.Weekday(); wd == time.Saturday || wd == time.Sunday {
		slog.Info("Absence marking skipped for weekend", "date", yesterday.Format("2006-01-02"))
		return attendance.AbsenceMarkingResult{}, nil
	}
	date := yesterday.Format("2006-01-02")

	activeIDs, err := s.employeeRepo.ActiveEmployeeIDs(ctx)
	if err != nil {
		return attendance.AbsenceMarkingResult{}, fmt.Errorf("list active employees: %w", err)
	}

	attended, err := s.attendanceRepo.EmployeeIDsWithAttendance(ctx, date)
	if err != nil {
		return attendance.AbsenceMarkingResult{}, fmt.Errorf("list attended employees: %w", err)
	}

	created := 0
	for _, id := range activeIDs {
		if _, ok := attended[id]; ok {
			continue
		}

		day := attendance.AttendanceDay{
			AttendanceID: identifier.New("ATD"),
			EmployeeID:   id,
			Date:         date,
			DurationText: attendance.DurationText(0),
			Status:       attendance.StatusAbsent,
		}
		if _, err := s.attendanceRepo.Create(ctx, day); err != nil {
			slog.Error("Absence marking: failed to create record",
				"employee_id", id, "date", date, "error", err)
			continue
		}
		created++
	}

	slog.Info("Absence marking finished", "date", date, "created", created)
	return attendance.AbsenceMarkingResult{CreatedCount: created}, nil
}
