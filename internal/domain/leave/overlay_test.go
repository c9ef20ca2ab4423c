package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtab-hr/hr-backend-go/internal/domain/attendance"
)

func strPtr(s string) *string { return &s }

func TestMapLeaveCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"casual", "CL", true},
		{"CL", "CL", true},
		{"Casual Leave", "CL", true},
		{"sick", "SL", true},
		{"SL", "SL", true},
		{"compoff", "CO", true},
		{"Comp Off", "CO", true},
		{"co", "CO", true},
		{"sabbatical", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := MapLeaveCode(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.expected, got, "input %q", tt.input)
	}
}

func TestOverlayMonthApprovedSynthesizesPlaceholders(t *testing.T) {
	leaves := []Leave{{
		LeaveID:    "LVE-AAAAAA1",
		EmployeeID: "EMP0001",
		LeaveType:  "casual",
		StartDate:  "2025-06-05",
		EndDate:    "2025-06-07",
		Status:     LeaveStatusApproved,
		PaidUnpaid: strPtr("Paid"),
	}}

	records := OverlayMonth(2025, time.June, nil, leaves)

	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, 5+i, rec.Day)
		assert.Equal(t, "CL", rec.Status)
		require.NotNil(t, rec.LeaveType)
		assert.Equal(t, "casual", *rec.LeaveType)
		require.NotNil(t, rec.LeaveStatus)
		assert.Equal(t, "Approved", *rec.LeaveStatus)
		assert.Nil(t, rec.CheckIn)
		assert.Nil(t, rec.AttendanceID)
	}
}

func TestOverlayMonthPendingPreservesAttendanceStatus(t *testing.T) {
	days := []attendance.AttendanceDay{{
		AttendanceID:  "ATD-XYZ1234",
		EmployeeID:    "EMP0001",
		Date:          "2025-06-16",
		CheckIn:       strPtr("09:00:00"),
		CheckOut:      strPtr("18:15:00"),
		DurationHours: 9.25,
		DurationText:  "9 hour(s) 15 minute(s)",
		Status:        "P",
	}}

	leaves := []Leave{{
		LeaveID:    "LVE-BBBBBB2",
		EmployeeID: "EMP0001",
		LeaveType:  "sick",
		StartDate:  "2025-06-16",
		EndDate:    "2025-06-16",
		Status:     LeaveStatusPending,
	}}

	records := OverlayMonth(2025, time.June, days, leaves)

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "P", rec.Status)
	assert.Nil(t, rec.LeaveType)
	require.Len(t, rec.PendingLeave, 1)
	assert.Equal(t, "LVE-BBBBBB2", rec.PendingLeave[0].LeaveID)
	assert.Equal(t, "Pending", rec.PendingLeave[0].Status)
}

func TestOverlayMonthPendingSynthesizesEmptyStatus(t *testing.T) {
	leaves := []Leave{{
		LeaveID:    "LVE-CCCCCC3",
		EmployeeID: "EMP0001",
		LeaveType:  "sick",
		StartDate:  "2025-06-10",
		EndDate:    "2025-06-10",
		Status:     LeaveStatusPending,
	}}

	records := OverlayMonth(2025, time.June, nil, leaves)

	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Status)
	require.Len(t, records[0].PendingLeave, 1)
}

func TestOverlayMonthUnrecognizedTypeSkipsWholeLeave(t *testing.T) {
	leaves := []Leave{{
		LeaveID:    "LVE-DDDDDD4",
		EmployeeID: "EMP0001",
		LeaveType:  "sabbatical",
		StartDate:  "2025-06-05",
		EndDate:    "2025-06-07",
		Status:     LeaveStatusApproved,
	}}

	records := OverlayMonth(2025, time.June, nil, leaves)
	assert.Empty(t, records)
}

func TestOverlayMonthClipsToMonth(t *testing.T) {
	leaves := []Leave{{
		LeaveID:    "LVE-EEEEEE5",
		EmployeeID: "EMP0001",
		LeaveType:  "casual",
		StartDate:  "2025-05-29",
		EndDate:    "2025-06-02",
		Status:     LeaveStatusApproved,
	}}

	records := OverlayMonth(2025, time.June, nil, leaves)

	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Day)
	assert.Equal(t, 2, records[1].Day)
	require.NotNil(t, records[0].LeaveStart)
	assert.Equal(t, "2025-05-29", *records[0].LeaveStart)
}

func TestOverlayMonthApprovedOverwritesLastWins(t *testing.T) {
	leaves := []Leave{
		{
			LeaveID:    "LVE-FFFFFF6",
			EmployeeID: "EMP0001",
			LeaveType:  "casual",
			StartDate:  "2025-06-10",
			EndDate:    "2025-06-10",
			Status:     LeaveStatusApproved,
		},
		{
			LeaveID:    "LVE-GGGGGG7",
			EmployeeID: "EMP0001",
			LeaveType:  "sick",
			StartDate:  "2025-06-10",
			EndDate:    "2025-06-10",
			Status:     LeaveStatusApproved,
		},
	}

	records := OverlayMonth(2025, time.June, nil, leaves)

	require.Len(t, records, 1)
	assert.Equal(t, "SL", records[0].Status)
	require.NotNil(t, records[0].LeaveType)
	assert.Equal(t, "sick", *records[0].LeaveType)
}

func TestOverlayMonthCancelledAndRejectedIgnored(t *testing.T) {
	leaves := []Leave{
		{LeaveID: "LVE-HHHHHH8", EmployeeID: "EMP0001", LeaveType: "casual",
			StartDate: "2025-06-03", EndDate: "2025-06-03", Status: LeaveStatusCancelled},
		{LeaveID: "LVE-IIIIII9", EmployeeID: "EMP0001", LeaveType: "sick",
			StartDate: "2025-06-04", EndDate: "2025-06-04", Status: LeaveStatusRejected},
	}

	records := OverlayMonth(2025, time.June, nil, leaves)
	assert.Empty(t, records)
}

func TestOverlayTeamMonthGroupsByEmployee(t *testing.T) {
	days := []attendance.AttendanceDay{
		{AttendanceID: "ATD-1111111", EmployeeID: "EMP0001", Date: "2025-06-16",
			DurationHours: 9.25, Status: "P"},
	}
	leaves := []Leave{
		{LeaveID: "LVE-2222222", EmployeeID: "EMP0002", LeaveType: "casual",
			StartDate: "2025-06-16", EndDate: "2025-06-16", Status: LeaveStatusApproved},
	}

	result := OverlayTeamMonth(2025, time.June, days, leaves, []string{"EMP0001", "EMP0002", "EMP0003"})

	require.Len(t, result, 3)
	require.Len(t, result["EMP0001"], 1)
	assert.Equal(t, "P", result["EMP0001"][0].Status)
	require.Len(t, result["EMP0002"], 1)
	assert.Equal(t, "CL", result["EMP0002"][0].Status)
	assert.Empty(t, result["EMP0003"])
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange(2025, time.June)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", start)
	assert.Equal(t, "2025-06-30", end)

	start, end, err = MonthRange(2024, time.February)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-02-29", end)

	_, _, err = MonthRange(2025, time.Month(13))
	assert.Error(t, err)
}
