package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/vtab-hr/hr-backend-go/internal/domain/employee"
	"github.com/vtab-hr/hr-backend-go/internal/domain/leave"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/email"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/identifier"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/realtime"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/validator"
)

const eventLeaveChanged = "leave:changed"

type leaveService struct {
	leaveRepo    leave.LeaveRepository
	balanceRepo  leave.BalanceRepository
	employeeRepo employee.EmployeeRepository
	emailSvc     email.EmailService
	emitter      realtime.Emitter
	now          func() time.Time
}

func NewLeaveService(
	leaveRepo leave.LeaveRepository,
	balanceRepo leave.BalanceRepository,
	employeeRepo employee.EmployeeRepository,
	emailSvc email.EmailService,
	emitter realtime.Emitter,
) leave.LeaveService {
	return &leaveService{
		leaveRepo:    leaveRepo,
		balanceRepo:  balanceRepo,
		employeeRepo: employeeRepo,
		emailSvc:     emailSvc,
		emitter:      emitter,
		now:          time.Now,
	}
}

func (s *leaveService) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	l := leave.Leave{
		LeaveID:    identifier.New("LVE"),
		EmployeeID: req.EmployeeID,
		LeaveType:  req.LeaveType,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TotalDays:  req.TotalDays(),
		PaidUnpaid: req.PaidUnpaid,
		Reason:     req.Reason,
		Status:     leave.LeaveStatusPending,
	}

	created, err := s.leaveRepo.Create(ctx, l)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	s.notifyApplied(ctx, created)
	s.emitter.Emit(eventLeaveChanged, map[string]interface{}{
		"employee_id": created.EmployeeID,
		"leave_id":    created.LeaveID,
		"action":      "applied",
	})

	slog.Info("Leave applied",
		"employee_id", created.EmployeeID, "leave_id", created.LeaveID,
		"type", created.LeaveType, "total_days", created.TotalDays)

	return leave.ToLeaveResponse(created), nil
}

func (s *leaveService) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	normalized, ok := validator.NormalizeEmployeeID(employeeID)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "employee_id", Message: "employee ID is required in EMP#### format"}}
	}

	leaves, err := s.leaveRepo.ListByEmployee(ctx, normalized)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, leave.ToLeaveResponse(l))
	}
	return responses, nil
}

func (s *leaveService) Cancel(ctx context.Context, leaveID string) (leave.LeaveResponse, error) {
	l, err := s.leaveRepo.GetByLeaveID(ctx, leaveID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if l == nil {
		return leave.LeaveResponse{}, leave.ErrLeaveNotFound
	}
	if l.Status != leave.LeaveStatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	if err := s.leaveRepo.UpdateStatus(ctx, l.RecordID, leave.LeaveStatusCancelled); err != nil {
		return leave.LeaveResponse{}, err
	}
	l.Status = leave.LeaveStatusCancelled

	s.notifyStatus(ctx, *l)
	s.emitter.Emit(eventLeaveChanged, map[string]interface{}{
		"employee_id": l.EmployeeID,
		"leave_id":    l.LeaveID,
		"action":      "cancelled",
	})

	slog.Info("Leave cancelled", "employee_id", l.EmployeeID, "leave_id", l.LeaveID)
	return leave.ToLeaveResponse(*l), nil
}

func (s *leaveService) GetBalance(ctx context.Context, employeeID, leaveType string) (leave.BalanceResponse, error) {
	normalized, ok := validator.NormalizeEmployeeID(employeeID)
	if !ok {
		return leave.BalanceResponse{}, validator.ValidationErrors{{Field: "employee_id", Message: "employee ID is required in EMP#### format"}}
	}

	balance, err := s.balanceRepo.GetBalance(ctx, normalized, leaveType)
	if err != nil {
		// Balance is advisory; a broken binding reads as zero, not an outage.
		slog.Warn("Balance lookup failed, reporting zero",
			"employee_id", normalized, "leave_type", leaveType, "error", err)
		balance = 0
	}

	return leave.BalanceResponse{
		EmployeeID: normalized,
		LeaveType:  leaveType,
		Balance:    balance,
	}, nil
}

func (s *leaveService) OnLeaveToday(ctx context.Context, employeeIDs []string) (leave.OnLeaveTodayResponse, error) {
	today := s.now().UTC().Format("2006-01-02")

	leaves, err := s.leaveRepo.ListApprovedCovering(ctx, employeeIDs, today)
	if err != nil {
		return leave.OnLeaveTodayResponse{}, err
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, leave.ToLeaveResponse(l))
	}
	return leave.OnLeaveTodayResponse{Date: today, Employees: responses}, nil
}

func (s *leaveService) TeamLeaves(ctx context.Context, employeeIDs []string) (map[string][]leave.LeaveResponse, error) {
	result := make(map[string][]leave.LeaveResponse, len(employeeIDs))
	for _, id := range employeeIDs {
		normalized, ok := validator.NormalizeEmployeeID(id)
		if !ok {
			continue
		}
		leaves, err := s.leaveRepo.ListByEmployee(ctx, normalized)
		if err != nil {
			return nil, err
		}
		responses := make([]leave.LeaveResponse, 0, len(leaves))
		for _, l := range leaves {
			responses = append(responses, leave.ToLeaveResponse(l))
		}
		result[normalized] = responses
	}
	return result, nil
}

// notifyApplied emails the employee's address when the master has one.
// Email is best-effort end to end; failures only log.
func (s *leaveService) notifyApplied(ctx context.Context, l leave.Leave) {
	if s.emailSvc == nil {
		return
	}

	emp, err := s.employeeRepo.GetByEmployeeID(ctx, l.EmployeeID)
	if err != nil || emp == nil || emp.Email == "" {
		slog.Debug("No address for leave notification", "employee_id", l.EmployeeID)
		return
	}

	if err := s.emailSvc.SendLeaveApplied(emp.Email, emp.Name, l.LeaveType, l.StartDate, l.EndDate, l.Reason); err != nil {
		slog.Warn("Leave-applied email failed", "employee_id", l.EmployeeID, "error", err)
	}
}

func (s *leaveService) notifyStatus(ctx context.Context, l leave.Leave) {
	if s.emailSvc == nil {
		return
	}

	emp, err := s.employeeRepo.GetByEmployeeID(ctx, l.EmployeeID)
	if err != nil || emp == nil || emp.Email == "" {
		return
	}

	if err := s.emailSvc.SendLeaveStatusChanged(emp.Email, emp.Name, l.LeaveType, l.StartDate, l.EndDate, string(l.Status)); err != nil {
		slog.Warn("Leave-status email failed", "employee_id", l.EmployeeID, "error", err)
	}
}
