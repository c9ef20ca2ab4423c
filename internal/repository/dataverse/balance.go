package dataverse

import (
	"context"
	"fmt"

	"github.com/vtab-hr/hr-backend-go/internal/domain/leave"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/dataverse"
)

type balanceRepository struct {
	api     dataverse.API
	binding *dataverse.BalanceBinding
}

// NewBalanceRepository reads balances through the binding resolved at
// startup. A nil binding means no balance entity answered the probe; every
// lookup then reports zero.
func NewBalanceRepository(api dataverse.API, binding *dataverse.BalanceBinding) leave.BalanceRepository {
	return &balanceRepository{api: api, binding: binding}
}

func (r *balanceRepository) GetBalance(ctx context.Context, employeeID, leaveType string) (float64, error) {
	if r.binding == nil {
		return 0, nil
	}

	field := dataverse.BalanceField(leaveType)
	records, err := r.api.Query(ctx, r.binding.Entity, dataverse.QueryOptions{
		Filter: dataverse.EqFilter(r.binding.FKField, employeeID),
		Select: []string{field},
		Top:    1,
	})
	if err != nil {
		return 0, fmt.Errorf("query leave balance: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	return records[0].Float(field), nil
}
