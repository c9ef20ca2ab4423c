package leave

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vtab-hr/hr-backend-go/internal/domain/attendance"
)

// Leave-type display codes used in the month view overlay.
const (
	CodeCasual  = "CL"
	CodeSick    = "SL"
	CodeCompOff = "CO"
)

// MapLeaveCode resolves a stored leave-type string to its display code.
// Unrecognized types return false and the whole leave is ignored by the
// overlay rather than guessed at.
func MapLeaveCode(leaveType string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(leaveType))
	switch {
	case t == "casual" || t == "cl" || strings.HasPrefix(t, "casual"):
		return CodeCasual, true
	case t == "sick" || t == "sl" || strings.HasPrefix(t, "sick"):
		return CodeSick, true
	case t == "co" || strings.HasPrefix(t, "comp"):
		return CodeCompOff, true
	default:
		return "", false
	}
}

// OverlayMonth merges one employee's leaves onto their attendance days for
// (year, month). Days are keyed by day-of-month; leaves clip to the month;
// approved leaves overwrite the day's status with the leave code (last
// processed wins) while pending leaves only append metadata. Days with
// neither attendance nor leave do not appear.
func OverlayMonth(year int, month time.Month, days []attendance.AttendanceDay, leaves []Leave) []attendance.DayRecord {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	startStr := monthStart.Format("2006-01-02")
	endStr := monthEnd.Format("2006-01-02")

	thresholds := attendance.DefaultThresholds()
	byDay := make(map[int]*attendance.DayRecord)

	for _, d := range days {
		parsed, err := time.Parse("2006-01-02", d.Date)
		if err != nil || d.Date < startStr || d.Date > endStr {
			continue
		}

		day := parsed.Day()
		rec := &attendance.DayRecord{
			Date:     d.Date,
			Day:      day,
			CheckIn:  d.CheckIn,
			CheckOut: d.CheckOut,
			Duration: d.DurationHours,
			Status:   d.Status,
		}
		if d.AttendanceID != "" {
			id := d.AttendanceID
			rec.AttendanceID = &id
		}
		if d.DurationText != "" {
			text := d.DurationText
			rec.DurationText = &text
		}
		// Stored status wins only when present; otherwise re-derive from
		// the stored decimal hours so older rows classify consistently.
		if rec.Status == "" {
			rec.Status = thresholds.DeriveFromHours(d.DurationHours)
		}
		byDay[day] = rec
	}

	for i := range leaves {
		l := leaves[i]
		if l.Status != LeaveStatusApproved && l.Status != LeaveStatusPending {
			continue
		}

		code, ok := MapLeaveCode(l.LeaveType)
		if !ok {
			continue
		}

		from := maxDate(l.StartDate, startStr)
		to := minDate(l.EndDate, endStr)
		if from > to {
			continue
		}

		fromT, err1 := time.Parse("2006-01-02", from)
		toT, err2 := time.Parse("2006-01-02", to)
		if err1 != nil || err2 != nil {
			continue
		}

		for d := fromT; !d.After(toT); d = d.AddDate(0, 0, 1) {
			day := d.Day()
			rec, exists := byDay[day]
			if !exists {
				placeholder := ""
				if l.Status == LeaveStatusApproved {
					placeholder = attendance.StatusAbsent
				}
				rec = &attendance.DayRecord{
					Date:   d.Format("2006-01-02"),
					Day:    day,
					Status: placeholder,
				}
				byDay[day] = rec
			}

			if l.Status == LeaveStatusApproved {
				rec.Status = code
				lt := l.LeaveType
				rec.LeaveType = &lt
				rec.PaidUnpaid = l.PaidUnpaid
				ls, le := l.StartDate, l.EndDate
				rec.LeaveStart = &ls
				rec.LeaveEnd = &le
				status := string(LeaveStatusApproved)
				rec.LeaveStatus = &status
			} else {
				rec.PendingLeave = append(rec.PendingLeave, attendance.PendingLeave{
					LeaveID:    l.LeaveID,
					LeaveType:  l.LeaveType,
					Status:     string(LeaveStatusPending),
					PaidUnpaid: l.PaidUnpaid,
					Start:      l.StartDate,
					End:        l.EndDate,
				})
			}
		}
	}

	result := make([]attendance.DayRecord, 0, len(byDay))
	for _, rec := range byDay {
		result = append(result, *rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Day < result[j].Day })
	return result
}

// OverlayTeamMonth runs the month merge per employee over batched rows.
func OverlayTeamMonth(year int, month time.Month, days []attendance.AttendanceDay, leaves []Leave, employeeIDs []string) map[string][]attendance.DayRecord {
	daysByEmp := make(map[string][]attendance.AttendanceDay)
	for _, d := range days {
		daysByEmp[d.EmployeeID] = append(daysByEmp[d.EmployeeID], d)
	}

	leavesByEmp := make(map[string][]Leave)
	for _, l := range leaves {
		leavesByEmp[l.EmployeeID] = append(leavesByEmp[l.EmployeeID], l)
	}

	result := make(map[string][]attendance.DayRecord, len(employeeIDs))
	for _, id := range employeeIDs {
		result[id] = OverlayMonth(year, month, daysByEmp[id], leavesByEmp[id])
	}
	return result
}

// MonthRange returns the inclusive ISO date bounds of (year, month).
func MonthRange(year int, month time.Month) (string, string, error) {
	if month < time.January || month > time.December {
		return "", "", fmt.Errorf("month out of range: %d", month)
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start.Format("2006-01-02"), end.Format("2006-01-02"), nil
}

func maxDate(a, b string) string {
	if a > b {
		return a
	}
	return b
}

func minDate(a, b string) string {
	if a < b {
		return a
	}
	return b
}
