package dataverse

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vtab-hr/hr-backend-go/internal/domain/attendance"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/dataverse"
)

const (
	attendanceEntity   = "crc6f_table13s"
	attendanceRecordID = "crc6f_table13id"

	fieldAttendanceID   = "crc6f_attendanceid"
	fieldEmployeeID     = "crc6f_employeeid"
	fieldDate           = "crc6f_date"
	fieldCheckIn        = "crc6f_checkin"
	fieldCheckOut       = "crc6f_checkout"
	fieldDuration       = "crc6f_duration"
	fieldDurationInText = "crc6f_duration_intext"
	fieldStatus         = "crc6f_status"
)

type attendanceRepository struct {
	api dataverse.API
}

func NewAttendanceRepository(api dataverse.API) attendance.AttendanceRepository {
	return &attendanceRepository{api: api}
}

func (r *attendanceRepository) Create(ctx context.Context, day attendance.AttendanceDay) (attendance.AttendanceDay, error) {
	fields := dataverse.Record{
		fieldAttendanceID:   day.AttendanceID,
		fieldEmployeeID:     day.EmployeeID,
		fieldDate:           day.Date,
		fieldDuration:       strconv.FormatFloat(day.DurationHours, 'f', -1, 64),
		fieldDurationInText: day.DurationText,
		fieldStatus:         day.Status,
	}
	if day.CheckIn != nil {
		fields[fieldCheckIn] = *day.CheckIn
	}
	if day.CheckOut != nil {
		fields[fieldCheckOut] = *day.CheckOut
	}

	created, err := r.api.Create(ctx, attendanceEntity, fields)
	if err != nil {
		return attendance.AttendanceDay{}, fmt.Errorf("create attendance record: %w", err)
	}

	day.RecordID = created.String(attendanceRecordID)
	return day, nil
}

func (r *attendanceRepository) UpdateCheckout(ctx context.Context, recordID, checkOut string, durationHours float64, durationText, status string) error {
	fields := dataverse.Record{
		fieldCheckOut:       checkOut,
		fieldDuration:       strconv.FormatFloat(durationHours, 'f', -1, 64),
		fieldDurationInText: durationText,
		fieldStatus:         status,
	}
	if err := r.api.Update(ctx, attendanceEntity, recordID, fields); err != nil {
		return fmt.Errorf("update attendance checkout: %w", err)
	}
	return nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*attendance.AttendanceDay, error) {
	filter := dataverse.EqFilter(fieldEmployeeID, employeeID) + " and " + dataverse.EqFilter(fieldDate, date)
	records, err := r.api.Query(ctx, attendanceEntity, dataverse.QueryOptions{Filter: filter, Top: 1})
	if err != nil {
		return nil, fmt.Errorf("query attendance by employee and date: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	day := toAttendanceDay(records[0])
	return &day, nil
}

func (r *attendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID, startDate, endDate string) ([]attendance.AttendanceDay, error) {
	filter := fmt.Sprintf("%s and %s ge '%s' and %s le '%s'",
		dataverse.EqFilter(fieldEmployeeID, employeeID),
		fieldDate, dataverse.Escape(startDate),
		fieldDate, dataverse.Escape(endDate))

	records, err := r.api.Query(ctx, attendanceEntity, dataverse.QueryOptions{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("query attendance range: %w", err)
	}
	return toAttendanceDays(records), nil
}

func (r *attendanceRepository) ListByEmployeesRange(ctx context.Context, employeeIDs []string, startDate, endDate string) ([]attendance.AttendanceDay, error) {
	in := dataverse.InFilter(fieldEmployeeID, employeeIDs)
	if in == "" {
		return nil, nil
	}
	filter := fmt.Sprintf("%s and %s ge '%s' and %s le '%s'",
		in,
		fieldDate, dataverse.Escape(startDate),
		fieldDate, dataverse.Escape(endDate))

	records, err := r.api.Query(ctx, attendanceEntity, dataverse.QueryOptions{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("query team attendance range: %w", err)
	}
	return toAttendanceDays(records), nil
}

func (r *attendanceRepository) EmployeeIDsWithAttendance(ctx context.Context, date string) (map[string]struct{}, error) {
	records, err := r.api.Query(ctx, attendanceEntity, dataverse.QueryOptions{
		Filter: dataverse.EqFilter(fieldDate, date),
		Select: []string{fieldEmployeeID},
	})
	if err != nil {
		return nil, fmt.Errorf("query attended employees: %w", err)
	}

	ids := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if id := rec.String(fieldEmployeeID); id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

func toAttendanceDay(rec dataverse.Record) attendance.AttendanceDay {
	day := attendance.AttendanceDay{
		RecordID:      rec.String(attendanceRecordID),
		AttendanceID:  rec.String(fieldAttendanceID),
		EmployeeID:    rec.String(fieldEmployeeID),
		Date:          rec.String(fieldDate),
		DurationHours: attendance.ParseDurationHours(rec.String(fieldDuration)),
		DurationText:  rec.String(fieldDurationInText),
		Status:        rec.String(fieldStatus),
	}
	if rec.Has(fieldCheckIn) {
		v := rec.String(fieldCheckIn)
		day.CheckIn = &v
	}
	if rec.Has(fieldCheckOut) {
		v := rec.String(fieldCheckOut)
		day.CheckOut = &v
	}
	return day
}

func toAttendanceDays(records []dataverse.Record) []attendance.AttendanceDay {
	days := make([]attendance.AttendanceDay, 0, len(records))
	for _, rec := range records {
		days = append(days, toAttendanceDay(rec))
	}
	return days
}
