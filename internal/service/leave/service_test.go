package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vtab-hr/hr-backend-go/internal/domain/employee"
	"github.com/vtab-hr/hr-backend-go/internal/domain/leave"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/realtime"
)

type fakeLeaveRepo struct {
	leaves map[string]*leave.Leave // keyed by LeaveID
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: make(map[string]*leave.Leave)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	l.RecordID = "rec-" + l.LeaveID
	copied := l
	f.leaves[l.LeaveID] = &copied
	return l, nil
}

func (f *fakeLeaveRepo) GetByLeaveID(ctx context.Context, leaveID string) (*leave.Leave, error) {
	if l, ok := f.leaves[leaveID]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range f.leaves {
		if l.EmployeeID == employeeID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListByEmployeesIntersecting(ctx context.Context, employeeIDs []string, startDate, endDate string) ([]leave.Leave, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) ListApprovedCovering(ctx context.Context, employeeIDs []string, date string) ([]leave.Leave, error) {
	var out []leave.Leave
	for _, l := range f.leaves {
		if l.Status == leave.LeaveStatusApproved && l.Covers(date) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, recordID string, status leave.LeaveStatus) error {
	for _, l := range f.leaves {
		if l.RecordID == recordID {
			l.Status = status
			return nil
		}
	}
	return leave.ErrLeaveNotFound
}

type fakeBalanceRepo struct {
	balances map[string]float64 // employeeID|type
}

func (f *fakeBalanceRepo) GetBalance(ctx context.Context, employeeID, leaveType string) (float64, error) {
	return f.balances[employeeID+"|"+leaveType], nil
}

type fakeEmployeeRepo struct{}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) { return nil, nil }
func (f *fakeEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	return &employee.Employee{EmployeeID: employeeID, Name: "Test Person"}, nil
}
func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, recordID string, req employee.UpdateEmployeeRequest) error {
	return nil
}
func (f *fakeEmployeeRepo) Delete(ctx context.Context, recordID string) error { return nil }
func (f *fakeEmployeeRepo) ActiveEmployeeIDs(ctx context.Context) ([]string, error) {
	return nil, nil
}

func newService(repo *fakeLeaveRepo, balances *fakeBalanceRepo) *leaveService {
	if balances == nil {
		balances = &fakeBalanceRepo{balances: map[string]float64{}}
	}
	svc := NewLeaveService(repo, balances, &fakeEmployeeRepo{}, nil, realtime.NopEmitter{}).(*leaveService)
	svc.now = func() time.Time { return time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestApplyLeave(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newService(repo, nil)

	resp, err := svc.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeID: "EMP0001",
		LeaveType:  "casual",
		StartDate:  "2025-06-20",
		EndDate:    "2025-06-22",
		Reason:     "family event",
	})
	require.NoError(t, err)

	assert.Regexp(t, `^LVE-[A-Z0-9]{7}$`, resp.LeaveID)
	assert.Equal(t, 3, resp.TotalDays)
	assert.Equal(t, "Pending", resp.Status)

	stored, err := repo.GetByLeaveID(context.Background(), resp.LeaveID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, leave.LeaveStatusPending, stored.Status)
}

func TestApplyLeaveValidation(t *testing.T) {
	svc := newService(newFakeLeaveRepo(), nil)

	_, err := svc.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeID: "EMP0001",
		LeaveType:  "casual",
		StartDate:  "2025-06-22",
		EndDate:    "2025-06-20",
	})
	require.Error(t, err)

	_, err = svc.Apply(context.Background(), leave.ApplyLeaveRequest{
		EmployeeID: "bogus",
		LeaveType:  "casual",
		StartDate:  "2025-06-20",
		EndDate:    "2025-06-20",
	})
	require.Error(t, err)
}

func TestCancelLeave(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newService(repo, nil)
	ctx := context.Background()

	applied, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		EmployeeID: "EMP0001",
		LeaveType:  "sick",
		StartDate:  "2025-06-20",
		EndDate:    "2025-06-20",
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, applied.LeaveID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", cancelled.Status)

	// Cancelling again conflicts: only pending leaves cancel.
	_, err = svc.Cancel(ctx, applied.LeaveID)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	_, err = svc.Cancel(ctx, "LVE-MISSING")
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
}

func TestGetBalance(t *testing.T) {
	svc := newService(newFakeLeaveRepo(), &fakeBalanceRepo{
		balances: map[string]float64{"EMP0001|casual": 7.5},
	})

	resp, err := svc.GetBalance(context.Background(), "EMP0001", "casual")
	require.NoError(t, err)
	assert.Equal(t, 7.5, resp.Balance)

	// Unknown employee or type reads as zero, never an error.
	resp, err = svc.GetBalance(context.Background(), "EMP0099", "sick")
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Balance)
}

func TestOnLeaveToday(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newService(repo, nil)
	ctx := context.Background()

	repo.leaves["LVE-COVER01"] = &leave.Leave{
		RecordID: "rec-1", LeaveID: "LVE-COVER01", EmployeeID: "EMP0001",
		LeaveType: "casual", StartDate: "2025-06-15", EndDate: "2025-06-17",
		Status: leave.LeaveStatusApproved,
	}
	repo.leaves["LVE-PAST002"] = &leave.Leave{
		RecordID: "rec-2", LeaveID: "LVE-PAST002", EmployeeID: "EMP0002",
		LeaveType: "sick", StartDate: "2025-06-01", EndDate: "2025-06-02",
		Status: leave.LeaveStatusApproved,
	}

	resp, err := svc.OnLeaveToday(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-16", resp.Date)
	require.Len(t, resp.Employees, 1)
	assert.Equal(t, "EMP0001", resp.Employees[0].EmployeeID)
}

func TestTeamLeaves(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newService(repo, nil)

	repo.leaves["LVE-TEAM001"] = &leave.Leave{
		RecordID: "rec-1", LeaveID: "LVE-TEAM001", EmployeeID: "EMP0001",
		LeaveType: "casual", StartDate: "2025-06-20", EndDate: "2025-06-21",
		Status: leave.LeaveStatusPending,
	}

	result, err := svc.TeamLeaves(context.Background(), []string{"EMP0001", "2"})
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Len(t, result["EMP0001"], 1)
	assert.Empty(t, result["EMP0002"])
}
