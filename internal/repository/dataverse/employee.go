package dataverse

import (
	"context"
	"fmt"
	"strings"

	"github.com/vtab-hr/hr-backend-go/internal/domain/employee"
	"github.com/vtab-hr/hr-backend-go/internal/pkg/dataverse"
)

type employeeRepository struct {
	api     dataverse.API
	entity  string
	fields  dataverse.FieldMap
	idField string
}

// NewEmployeeRepository reads and writes the employee master through the
// entity set and column map resolved at startup.
func NewEmployeeRepository(api dataverse.API, binding dataverse.Binding) employee.EmployeeRepository {
	return &employeeRepository{
		api:     api,
		entity:  binding.EmployeeEntity,
		fields:  binding.EmployeeFields,
		idField: binding.EmployeeFields.ID,
	}
}

func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	records, err := r.api.Query(ctx, r.entity, dataverse.QueryOptions{})
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}

	employees := make([]employee.Employee, 0, len(records))
	for _, rec := range records {
		employees = append(employees, r.toEmployee(rec))
	}
	return employees, nil
}

func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*employee.Employee, error) {
	records, err := r.api.Query(ctx, r.entity, dataverse.QueryOptions{
		Filter: dataverse.EqFilter(r.idField, employeeID),
		Top:    1,
	})
	if err != nil {
		return nil, fmt.Errorf("query employee by id: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	e := r.toEmployee(records[0])
	return &e, nil
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	fields := dataverse.Record{r.idField: e.EmployeeID}

	if r.fields.FullName != "" {
		fields[r.fields.FullName] = e.Name
	} else {
		first, last := splitName(e.Name)
		fields[r.fields.FirstName] = first
		fields[r.fields.LastName] = last
	}
	if e.Email != "" && r.fields.Email != "" {
		fields[r.fields.Email] = e.Email
	}
	if e.Department != "" && r.fields.Department != "" {
		fields[r.fields.Department] = e.Department
	}
	if e.Position != "" && r.fields.Designation != "" {
		fields[r.fields.Designation] = e.Position
	}
	if e.DateOfJoining != "" && r.fields.DateOfJoining != "" {
		fields[r.fields.DateOfJoining] = e.DateOfJoining
	}
	if r.fields.Active != "" {
		fields[r.fields.Active] = activeValue(r.fields.Active, true)
	}

	created, err := r.api.Create(ctx, r.entity, fields)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("create employee: %w", err)
	}

	e.RecordID = recordIDFor(r.entity, created)
	e.Active = true
	return e, nil
}

func (r *employeeRepository) Update(ctx context.Context, recordID string, req employee.UpdateEmployeeRequest) error {
	fields := dataverse.Record{}

	if req.Name != nil {
		if r.fields.FullName != "" {
			fields[r.fields.FullName] = *req.Name
		} else {
			first, last := splitName(*req.Name)
			fields[r.fields.FirstName] = first
			fields[r.fields.LastName] = last
		}
	}
	if req.Email != nil && r.fields.Email != "" {
		fields[r.fields.Email] = *req.Email
	}
	if req.Department != nil && r.fields.Department != "" {
		fields[r.fields.Department] = *req.Department
	}
	if req.Position != nil && r.fields.Designation != "" {
		fields[r.fields.Designation] = *req.Position
	}
	if req.DateOfJoining != nil && r.fields.DateOfJoining != "" {
		fields[r.fields.DateOfJoining] = *req.DateOfJoining
	}
	if req.Active != nil && r.fields.Active != "" {
		fields[r.fields.Active] = activeValue(r.fields.Active, *req.Active)
	}

	if len(fields) == 0 {
		return nil
	}
	if err := r.api.Update(ctx, r.entity, recordID, fields); err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, recordID string) error {
	if err := r.api.Delete(ctx, r.entity, recordID); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

func (r *employeeRepository) ActiveEmployeeIDs(ctx context.Context) ([]string, error) {
	opts := dataverse.QueryOptions{Select: []string{r.idField}}
	if r.fields.Active != "" {
		opts.Select = append(opts.Select, r.fields.Active)
	}

	records, err := r.api.Query(ctx, r.entity, opts)
	if err != nil {
		return nil, fmt.Errorf("query active employees: %w", err)
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if r.fields.Active != "" && !isActive(rec, r.fields.Active) {
			continue
		}
		if id := rec.String(r.idField); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *employeeRepository) toEmployee(rec dataverse.Record) employee.Employee {
	e := employee.Employee{
		RecordID:   recordIDFor(r.entity, rec),
		EmployeeID: rec.String(r.idField),
		Active:     true,
	}

	if r.fields.FullName != "" {
		e.Name = rec.String(r.fields.FullName)
	} else {
		e.Name = strings.TrimSpace(rec.String(r.fields.FirstName) + " " + rec.String(r.fields.LastName))
	}
	if r.fields.Email != "" {
		e.Email = rec.String(r.fields.Email)
	}
	if r.fields.Department != "" {
		e.Department = rec.String(r.fields.Department)
	}
	if r.fields.Designation != "" {
		e.Position = rec.String(r.fields.Designation)
	}
	if r.fields.DateOfJoining != "" {
		e.DateOfJoining = rec.String(r.fields.DateOfJoining)
	}
	if r.fields.Active != "" {
		e.Active = isActive(rec, r.fields.Active)
	}
	return e
}

// recordIDFor derives the primary-key column from the entity-set name:
// Dataverse names it "<logical name>id" with the plural trimmed. Both
// plural forms are tried against the record since the set name alone does
// not disambiguate them.
func recordIDFor(entity string, rec dataverse.Record) string {
	if id := rec.String(strings.TrimSuffix(entity, "s") + "id"); id != "" {
		return id
	}
	return rec.String(strings.TrimSuffix(entity, "es") + "id")
}

// isActive tolerates the two flag encodings seen upstream: booleans and
// "Active"/"Yes" style strings.
func isActive(rec dataverse.Record, field string) bool {
	switch v := rec[field].(type) {
	case bool:
		return v
	case string:
		lower := strings.ToLower(v)
		return lower == "active" || lower == "yes" || lower == "true" || lower == "1"
	case float64:
		return v != 0
	default:
		// Absent flag counts as active; the column is sparsely filled.
		return true
	}
}

func activeValue(field string, active bool) interface{} {
	// crc6f_activeflag stores strings; boolean columns take the flag raw.
	if strings.Contains(field, "flag") || strings.Contains(field, "status") {
		if active {
			return "Active"
		}
		return "Inactive"
	}
	return active
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
