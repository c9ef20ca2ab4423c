package dataverse

import (
	"context"
	"fmt"

	"github.com/vtab-hr/hr-backend-go/internal/domain/attendance"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/dataverse"
)

const (
	loginActivityEntity   = "crc6f_hr_loginactivitytbs"
	loginActivityRecordID = "crc6f_hr_loginactivitytbid"

	laFieldEmployeeID       = "crc6f_employeeid"
	laFieldDate             = "crc6f_date"
	laFieldCheckInTime      = "crc6f_checkintime"
	laFieldCheckInTS        = "crc6f_checkin_timestamp"
	laFieldCheckInLocation  = "crc6f_checkinlocation"
	laFieldCheckOutTime     = "crc6f_checkouttime"
	laFieldCheckOutTS       = "crc6f_checkout_timestamp"
	laFieldCheckOutLocation = "crc6f_checkoutlocation"
	laFieldBaseSeconds      = "crc6f_base_seconds"
	laFieldTotalSeconds     = "crc6f_total_seconds"
)

type loginActivityRepository struct {
	api dataverse.API
}

func NewLoginActivityRepository(api dataverse.API) attendance.LoginActivityRepository {
	return &loginActivityRepository{api: api}
}

func (r *loginActivityRepository) Get(ctx context.Context, employeeID, date string) (*attendance.LoginActivity, error) {
	return r.find(ctx, employeeID, date)
}

func (r *loginActivityRepository) UpsertCheckIn(ctx context.Context, employeeID, date, checkInTime string, checkInTS int64, location *string) error {
	existing, err := r.find(ctx, employeeID, date)
	if err != nil {
		return err
	}

	fields := dataverse.Record{
		laFieldCheckInTime: checkInTime,
		laFieldCheckInTS:   checkInTS,
	}
	if location != nil {
		fields[laFieldCheckInLocation] = *location
	}
	// A reopen on the same logical day banks the prior total and clears the
	// checkout, so the day's time keeps accumulating.
	if existing != nil {
		fields[laFieldBaseSeconds] = existing.TotalSeconds
		fields[laFieldCheckOutTime] = nil
		fields[laFieldCheckOutTS] = nil
		fields[laFieldCheckOutLocation] = nil

		if err := r.api.Update(ctx, loginActivityEntity, existing.RecordID, fields); err != nil {
			return fmt.Errorf("update login activity check-in: %w", err)
		}
		return nil
	}

	fields[laFieldEmployeeID] = employeeID
	fields[laFieldDate] = date
	fields[laFieldBaseSeconds] = 0
	fields[laFieldTotalSeconds] = 0

	if _, err := r.api.Create(ctx, loginActivityEntity, fields); err != nil {
		return fmt.Errorf("create login activity: %w", err)
	}
	return nil
}

func (r *loginActivityRepository) UpsertCheckOut(ctx context.Context, employeeID, date, checkOutTime string, checkOutTS, totalSeconds int64, location *string) error {
	existing, err := r.find(ctx, employeeID, date)
	if err != nil {
		return err
	}
	if existing == nil {
		// No punch row to settle; nothing to record against.
		return nil
	}

	fields := dataverse.Record{
		laFieldCheckOutTime: checkOutTime,
		laFieldCheckOutTS:   checkOutTS,
		laFieldTotalSeconds: totalSeconds,
	}
	if location != nil {
		fields[laFieldCheckOutLocation] = *location
	}

	if err := r.api.Update(ctx, loginActivityEntity, existing.RecordID, fields); err != nil {
		return fmt.Errorf("update login activity checkout: %w", err)
	}
	return nil
}

func (r *loginActivityRepository) ListOpen(ctx context.Context, date string) ([]attendance.LoginActivity, error) {
	filter := fmt.Sprintf("%s and %s ne null and %s eq null",
		dataverse.EqFilter(laFieldDate, date), laFieldCheckInTS, laFieldCheckOutTS)

	records, err := r.api.Query(ctx, loginActivityEntity, dataverse.QueryOptions{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("query open login activities: %w", err)
	}

	activities := make([]attendance.LoginActivity, 0, len(records))
	for _, rec := range records {
		activities = append(activities, toLoginActivity(rec))
	}
	return activities, nil
}

func (r *loginActivityRepository) Close(ctx context.Context, recordID, checkOutTime string, checkOutTS, totalSeconds int64) error {
	fields := dataverse.Record{
		laFieldCheckOutTime: checkOutTime,
		laFieldCheckOutTS:   checkOutTS,
		laFieldTotalSeconds: totalSeconds,
	}
	if err := r.api.Update(ctx, loginActivityEntity, recordID, fields); err != nil {
		return fmt.Errorf("close login activity: %w", err)
	}
	return nil
}

func (r *loginActivityRepository) find(ctx context.Context, employeeID, date string) (*attendance.LoginActivity, error) {
	filter := dataverse.EqFilter(laFieldEmployeeID, employeeID) + " and " + dataverse.EqFilter(laFieldDate, date)
	records, err := r.api.Query(ctx, loginActivityEntity, dataverse.QueryOptions{Filter: filter, Top: 1})
	if err != nil {
		return nil, fmt.Errorf("query login activity: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	activity := toLoginActivity(records[0])
	return &activity, nil
}

func toLoginActivity(rec dataverse.Record) attendance.LoginActivity {
	activity := attendance.LoginActivity{
		RecordID:     rec.String(loginActivityRecordID),
		EmployeeID:   rec.String(laFieldEmployeeID),
		Date:         rec.String(laFieldDate),
		CheckInTS:    rec.Int64(laFieldCheckInTS),
		CheckOutTS:   rec.Int64(laFieldCheckOutTS),
		BaseSeconds:  rec.Int64(laFieldBaseSeconds),
		TotalSeconds: rec.Int64(laFieldTotalSeconds),
	}
	if rec.Has(laFieldCheckInTime) {
		v := rec.String(laFieldCheckInTime)
		activity.CheckInTime = &v
	}
	if rec.Has(laFieldCheckInLocation) {
		v := rec.String(laFieldCheckInLocation)
		activity.CheckInLocation = &v
	}
	if rec.Has(laFieldCheckOutTime) {
		v := rec.String(laFieldCheckOutTime)
		activity.CheckOutTime = &v
	}
	if rec.Has(laFieldCheckOutLocation) {
		v := rec.String(laFieldCheckOutLocation)
		activity.CheckOutLocation = &v
	}
	return activity
}
