package leave

// LeaveStatus is the lifecycle state of a leave application.
type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "Pending"
	LeaveStatusApproved  LeaveStatus = "Approved"
	LeaveStatusRejected  LeaveStatus = "Rejected"
	LeaveStatusCancelled LeaveStatus = "Cancelled"
)

// Leave is one application covering an inclusive date range.
type Leave struct {
	RecordID   string
	LeaveID    string // LVE-XXXXXXX
	EmployeeID string
	LeaveType  string // free-form from client: "casual", "sick", "compoff", ...
	StartDate  string // YYYY-MM-DD
	EndDate    string
	TotalDays  int
	PaidUnpaid *string
	Reason     string
	Status     LeaveStatus
}

// Covers reports whether the date falls inside the leave's range. Dates are
// ISO strings so plain string comparison orders correctly.
func (l Leave) Covers(date string) bool {
	return l.StartDate <= date && date <= l.EndDate
}
