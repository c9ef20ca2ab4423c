package dataverse

import (
	"context"
	"fmt"

	"github.com/vtab-hr/hr-backend-go/internal/domain/leave"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/dataverse"
)

const (
	leaveEntity   = "crc6f_table14s"
	leaveRecordID = "crc6f_table14id"

	lvFieldLeaveID    = "crc6f_leaveid"
	lvFieldEmployeeID = "crc6f_employeeid"
	lvFieldLeaveType  = "crc6f_leavetype"
	lvFieldStartDate  = "crc6f_startdate"
	lvFieldEndDate    = "crc6f_enddate"
	lvFieldTotalDays  = "crc6f_totaldays"
	lvFieldPaidUnpaid = "crc6f_paidunpaid"
	lvFieldReason     = "crc6f_reason"
	lvFieldStatus     = "crc6f_status"
)

type leaveRepository struct {
	api dataverse.API
}

func NewLeaveRepository(api dataverse.API) leave.LeaveRepository {
	return &leaveRepository{api: api}
}

func (r *leaveRepository) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	fields := dataverse.Record{
		lvFieldLeaveID:    l.LeaveID,
		lvFieldEmployeeID: l.EmployeeID,
		lvFieldLeaveType:  l.LeaveType,
		lvFieldStartDate:  l.StartDate,
		lvFieldEndDate:    l.EndDate,
		lvFieldTotalDays:  l.TotalDays,
		lvFieldReason:     l.Reason,
		lvFieldStatus:     string(l.Status),
	}
	if l.PaidUnpaid != nil {
		fields[lvFieldPaidUnpaid] = *l.PaidUnpaid
	}

	created, err := r.api.Create(ctx, leaveEntity, fields)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("create leave record: %w", err)
	}

	l.RecordID = created.String(leaveRecordID)
	return l, nil
}

func (r *leaveRepository) GetByLeaveID(ctx context.Context, leaveID string) (*leave.Leave, error) {
	records, err := r.api.Query(ctx, leaveEntity, dataverse.QueryOptions{
		Filter: dataverse.EqFilter(lvFieldLeaveID, leaveID),
		Top:    1,
	})
	if err != nil {
		return nil, fmt.Errorf("query leave by id: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	l := toLeave(records[0])
	return &l, nil
}

func (r *leaveRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	records, err := r.api.Query(ctx, leaveEntity, dataverse.QueryOptions{
		Filter: dataverse.EqFilter(lvFieldEmployeeID, employeeID),
	})
	if err != nil {
		return nil, fmt.Errorf("query leaves by employee: %w", err)
	}
	return toLeaves(records), nil
}

func (r *leaveRepository) ListByEmployeesIntersecting(ctx context.Context, employeeIDs []string, startDate, endDate string) ([]leave.Leave, error) {
	in := dataverse.InFilter(lvFieldEmployeeID, employeeIDs)
	if in == "" {
		return nil, nil
	}
	// A leave intersects [start, end] when it starts on or before the end
	// and ends on or after the start.
	filter := fmt.Sprintf("%s and %s le '%s' and %s ge '%s'",
		in,
		lvFieldStartDate, dataverse.Escape(endDate),
		lvFieldEndDate, dataverse.Escape(startDate))

	records, err := r.api.Query(ctx, leaveEntity, dataverse.QueryOptions{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("query intersecting leaves: %w", err)
	}
	return toLeaves(records), nil
}

func (r *leaveRepository) ListApprovedCovering(ctx context.Context, employeeIDs []string, date string) ([]leave.Leave, error) {
	filter := fmt.Sprintf("%s and %s le '%s' and %s ge '%s'",
		dataverse.EqFilter(lvFieldStatus, string(leave.LeaveStatusApproved)),
		lvFieldStartDate, dataverse.Escape(date),
		lvFieldEndDate, dataverse.Escape(date))

	if in := dataverse.InFilter(lvFieldEmployeeID, employeeIDs); in != "" {
		filter += " and " + in
	}

	records, err := r.api.Query(ctx, leaveEntity, dataverse.QueryOptions{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("query approved leaves covering date: %w", err)
	}
	return toLeaves(records), nil
}

func (r *leaveRepository) UpdateStatus(ctx context.Context, recordID string, status leave.LeaveStatus) error {
	fields := dataverse.Record{lvFieldStatus: string(status)}
	if err := r.api.Update(ctx, leaveEntity, recordID, fields); err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	return nil
}

func toLeave(rec dataverse.Record) leave.Leave {
	l := leave.Leave{
		RecordID:   rec.String(leaveRecordID),
		LeaveID:    rec.String(lvFieldLeaveID),
		EmployeeID: rec.String(lvFieldEmployeeID),
		LeaveType:  rec.String(lvFieldLeaveType),
		StartDate:  rec.String(lvFieldStartDate),
		EndDate:    rec.String(lvFieldEndDate),
		TotalDays:  int(rec.Int64(lvFieldTotalDays)),
		Reason:     rec.String(lvFieldReason),
		Status:     leave.LeaveStatus(rec.String(lvFieldStatus)),
	}
	if rec.Has(lvFieldPaidUnpaid) {
		v := rec.String(lvFieldPaidUnpaid)
		l.PaidUnpaid = &v
	}
	return l
}

func toLeaves(records []dataverse.Record) []leave.Leave {
	leaves := make([]leave.Leave, 0, len(records))
	for _, rec := range records {
		leaves = append(leaves, toLeave(rec))
	}
	return leaves
}
