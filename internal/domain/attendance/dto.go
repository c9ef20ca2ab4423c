package attendance

import (
	"encoding/json"
	"fmt"

	"github.com/vtab-hr/hr-backend-go/internal/pkg/validator"
)

// Location accepts either a plain string or a {lat, lng} object from the
// client and normalizes to "lat,lng".
type Location struct {
	Value string
}

func (l *Location) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		l.Value = s
		return nil
	}

	var obj struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Lat != nil && obj.Lng != nil {
		l.Value = fmt.Sprintf("%.6f,%.6f", *obj.Lat, *obj.Lng)
	}
	return nil
}

// StringPtr returns the normalized location, nil when empty.
func (l *Location) StringPtr() *string {
	if l == nil || l.Value == "" {
		return nil
	}
	return &l.Value
}

type PunchRequest struct {
	EmployeeID string    `json:"employee_id"`
	ClientTime string    `json:"client_time"`
	Timezone   string    `json:"timezone"`
	Location   *Location `json:"location"`
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors
	normalized, ok := validator.NormalizeEmployeeID(r.EmployeeID)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee ID is required in EMP#### format",
		})
		return errs
	}
	r.EmployeeID = normalized
	return nil
}

type CheckInResponse struct {
	RecordID     string `json:"record_id"`
	AttendanceID string `json:"attendance_id"`
	CheckInTime  string `json:"checkin_time"`
}

type CheckOutResponse struct {
	CheckOutTime string  `json:"checkout_time"`
	Duration     string  `json:"duration"`
	TotalHours   float64 `json:"total_hours"`
}

type StatusResponse struct {
	CheckedIn      bool    `json:"checked_in"`
	CheckInTime    *string `json:"checkin_time,omitempty"`
	AttendanceID   *string `json:"attendance_id,omitempty"`
	ElapsedSeconds *int64  `json:"elapsed_seconds,omitempty"`
}

type MonthlyAttendanceResponse struct {
	Records []DayRecord `json:"records"`
	Count   int         `json:"count"`
}

type TeamMonthResponse struct {
	Records map[string][]DayRecord `json:"records"`
	Count   int                    `json:"count"`
}

// AutoCloseResult reports one scheduled auto-close run.
type AutoCloseResult struct {
	ClosedCount int `json:"closed_count"`
}

// AbsenceMarkingResult reports one scheduled absence-marking run.
type AbsenceMarkingResult struct {
	CreatedCount int `json:"created_count"`
}
