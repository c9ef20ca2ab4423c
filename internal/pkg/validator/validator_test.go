package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmployeeID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"bare number pads to four digits", "7", "EMP0007", true},
		{"bare number wider than four digits", "12345", "EMP12345", true},
		{"canonical form passes through", "EMP0042", "EMP0042", true},
		{"lowercase prefix upper-cased", "emp0042", "EMP0042", true},
		{"surrounding whitespace trimmed", "  EMP0042  ", "EMP0042", true},
		{"empty input rejected", "", "", false},
		{"whitespace only rejected", "   ", "", false},
		{"wrong prefix rejected", "STAFF01", "", false},
		{"short digit run after prefix rejected", "EMP42", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeEmployeeID(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2025-06-16")
	assert.True(t, ok)

	_, ok = IsValidDate("16-06-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	ts, ok := IsValidDateTime("2025-06-16T09:00:00+05:30")
	assert.True(t, ok)
	assert.Equal(t, 9, ts.Hour())

	_, ok = IsValidDateTime("2025-06-16 09:00:00")
	assert.False(t, ok)
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "employee_id", Message: "required"},
		{Field: "date", Message: "invalid format"},
	}

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "required", m["employee_id"])
	assert.Contains(t, errs.Error(), "employee_id: required")
}
