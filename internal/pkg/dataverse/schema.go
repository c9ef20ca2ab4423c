package dataverse

import (
	"context"
	"log/slog"
	"strings"
)

// FieldMap names the employee-master columns for a given entity set. The
// upstream environments disagree on both the entity-set name and several
// column assignments, so the map travels with the resolved entity.
type FieldMap struct {
	ID            string
	FullName      string
	FirstName     string
	LastName      string
	Email         string
	Contact       string
	Address       string
	Department    string
	Designation   string
	DateOfJoining string
	Active        string
}

var fieldMaps = map[string]FieldMap{
	"crc6f_employees": {
		ID:            "crc6f_employeeid1",
		FullName:      "crc6f_fullname",
		Email:         "crc6f_email",
		Contact:       "crc6f_mobilenumber",
		Address:       "crc6f_address",
		Designation:   "crc6f_designation",
		DateOfJoining: "crc6f_joindate",
		Active:        "crc6f_status",
	},
	"crc6f_table12s": {
		ID:          "crc6f_employeeid",
		FirstName:   "crc6f_firstname",
		LastName:    "crc6f_lastname",
		Contact:     "crc6f_contactnumber",
		Address:     "crc6f_address",
		Department:  "crc6f_department",
		Designation: "crc6f_designation",
		Active:      "crc6f_activeflag",
		// Two columns in this environment hold misaligned data: emails live
		// in the quota-hours column and joining dates in the email column.
		Email:         "crc6f_quotahours",
		DateOfJoining: "crc6f_email",
	},
}

// BalanceBinding names the leave-balance entity and the foreign-key column
// that references the employee.
type BalanceBinding struct {
	Entity  string
	FKField string
}

// Binding is the schema resolution result. It is computed once at startup
// and injected; nothing re-probes at request time.
type Binding struct {
	EmployeeEntity string
	EmployeeFields FieldMap
	LeaveBalance   *BalanceBinding
}

var balanceEntityCandidates = []string{
	"crc6f_hr_leavemangements",
	"crc6f_hr_leavemangement",
	"crc6f_leave_mangement",
	"crc6f_leave_mangements",
}

var balanceFKCandidates = []string{"crc6f_empid", "crc6f_employeeid"}

// Resolve probes the candidate entity sets in priority order and returns the
// binding for the first that answers. The env override, when set, is tried
// first. A failed employee resolution falls back to the first candidate so
// the eventual request error surfaces the attempted entity name.
func Resolve(ctx context.Context, api API, employeeOverride string) Binding {
	candidates := make([]string, 0, 3)
	if employeeOverride != "" {
		candidates = append(candidates, employeeOverride)
	}
	candidates = append(candidates, "crc6f_table12s", "crc6f_employees")

	binding := Binding{}
	for _, cand := range candidates {
		if api.ProbeEntitySet(ctx, cand) {
			binding.EmployeeEntity = cand
			break
		}
	}
	if binding.EmployeeEntity == "" {
		binding.EmployeeEntity = candidates[0]
		slog.Warn("No employee entity set answered the probe, using first candidate",
			"entity", binding.EmployeeEntity)
	} else {
		slog.Info("Resolved employee entity set", "entity", binding.EmployeeEntity)
	}
	binding.EmployeeFields = FieldMapFor(binding.EmployeeEntity)

	binding.LeaveBalance = resolveBalance(ctx, api)
	return binding
}

func resolveBalance(ctx context.Context, api API) *BalanceBinding {
	for _, entity := range balanceEntityCandidates {
		if !api.ProbeEntitySet(ctx, entity) {
			continue
		}
		for _, fk := range balanceFKCandidates {
			if api.ProbeField(ctx, entity, fk) {
				slog.Info("Resolved leave balance binding", "entity", entity, "fk_field", fk)
				return &BalanceBinding{Entity: entity, FKField: fk}
			}
		}
	}
	slog.Warn("No leave balance entity resolved, balance lookups will return zero")
	return nil
}

// FieldMapFor returns the column map for the entity set, defaulting to the
// HR employee master layout.
func FieldMapFor(entity string) FieldMap {
	if m, ok := fieldMaps[entity]; ok {
		return m
	}
	return fieldMaps["crc6f_table12s"]
}

// BalanceField maps a leave-type name to its balance column.
func BalanceField(leaveType string) string {
	lt := strings.ToLower(leaveType)
	switch {
	case strings.Contains(lt, "casual"):
		return "crc6f_cl"
	case strings.Contains(lt, "sick"):
		return "crc6f_sl"
	default:
		return "crc6f_compoff"
	}
}
