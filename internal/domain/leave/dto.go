package leave

import (
	"time"

	"github.com/vtab-hr/hr-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	EmployeeID string  `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	PaidUnpaid *string `json:"paid_unpaid"`
	Reason     string  `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	normalized, ok := validator.NormalizeEmployeeID(r.EmployeeID)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee ID is required in EMP#### format",
		})
	} else {
		r.EmployeeID = normalized
	}

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave type is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start date must be YYYY-MM-DD",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end date must be YYYY-MM-DD",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end date must not precede start date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TotalDays is the inclusive length of the requested range.
func (r *ApplyLeaveRequest) TotalDays() int {
	start, _ := time.Parse("2006-01-02", r.StartDate)
	end, _ := time.Parse("2006-01-02", r.EndDate)
	return int(end.Sub(start).Hours()/24) + 1
}

type LeaveResponse struct {
	LeaveID    string  `json:"leave_id"`
	EmployeeID string  `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalDays  int     `json:"total_days"`
	PaidUnpaid *string `json:"paid_unpaid"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
}

func ToLeaveResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		LeaveID:    l.LeaveID,
		EmployeeID: l.EmployeeID,
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate,
		EndDate:    l.EndDate,
		TotalDays:  l.TotalDays,
		PaidUnpaid: l.PaidUnpaid,
		Reason:     l.Reason,
		Status:     string(l.Status),
	}
}

type BalanceResponse struct {
	EmployeeID string  `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	Balance    float64 `json:"balance"`
}

type OnLeaveTodayResponse struct {
	Date      string          `json:"date"`
	Employees []LeaveResponse `json:"employees"`
}
