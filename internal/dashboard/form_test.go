package dashboard_test

import (
	"testing"
	"time"

	"github.com/tablestaff/tablestaff/internal/dashboard"
	"github.com/tablestaff/tablestaff/internal/data"

	"github.com/stretchr/testify/assert"
)

func fieldErrorFields(fieldErrors []dashboard.FieldError) []string {
	var fields []string
	for _, fieldError := range fieldErrors {
		fields = append(fields, fieldError.Field)
	}
	return fields
}

func TestEmployeeFormBlank(t *testing.T) {
	form := dashboard.NewEmployeeForm(nil)

	assert.Equal(t, "Add Employee", form.SubmitLabel())
	assert.Empty(t, form.Name)

	// every missing field is reported, not just the first
	ok := form.Validate()
	assert.False(t, ok)
	assert.ElementsMatch(t, []string{"name", "position", "department",
		"hire_date", "wage"}, fieldErrorFields(form.Errors()))
}

func TestEmployeeFormSeeded(t *testing.T) {
	employee := &data.Employee{
		Id:         "1",
		Name:       "Ava Moreno",
		Position:   "Head Chef",
		Department: "Kitchen",
		HireDate:   "2021-03-15",
		Salary:     52000,
		Wage:       34,
	}
	form := dashboard.NewEmployeeForm(employee)

	assert.Equal(t, "Save Changes", form.SubmitLabel())
	assert.Equal(t, "Ava Moreno", form.Name)
	assert.Equal(t, "2021-03-15", form.HireDate)
	assert.Equal(t, "34", form.Wage)

	// a seeded form submits as-is
	employeePartial, ok := form.Submit()
	assert.True(t, ok)
	assert.Equal(t, "Ava Moreno", *employeePartial.Name)
	assert.Equal(t, int64(34), *employeePartial.Wage)
}

func TestEmployeeFormTypedErrors(t *testing.T) {
	form := dashboard.NewEmployeeForm(nil)
	form.Name = "Ava Moreno"
	form.Position = "Head Chef"
	form.Department = "Kitchen"
	form.HireDate = "03/15/2021"
	form.Wage = "a lot"

	// malformed input is reported against the field rather than being
	// coerced to a zero value
	employeePartial, ok := form.Submit()
	assert.False(t, ok)
	assert.Nil(t, employeePartial)
	assert.ElementsMatch(t, []string{"hire_date", "wage"},
		fieldErrorFields(form.Errors()))

	form.HireDate = "2021-03-15"
	form.Wage = "-5"
	_, ok = form.Submit()
	assert.False(t, ok)
	assert.ElementsMatch(t, []string{"wage"}, fieldErrorFields(form.Errors()))

	form.Wage = "34"
	employeePartial, ok = form.Submit()
	assert.True(t, ok)
	assert.Equal(t, int64(34), *employeePartial.Wage)
}

func TestScheduleFormBlank(t *testing.T) {
	form := dashboard.NewScheduleForm(nil)

	assert.Equal(t, "Add Schedule", form.SubmitLabel())
	ok := form.Validate()
	assert.False(t, ok)
	assert.ElementsMatch(t, []string{"start_time", "end_time"},
		fieldErrorFields(form.Errors()))
}

func TestScheduleFormSeeded(t *testing.T) {
	start := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC)
	schedule := &data.Schedule{
		Id:        "a",
		StartTime: start.UnixMilli(),
		EndTime:   end.UnixMilli(),
	}
	form := dashboard.NewScheduleForm(schedule)

	// the form reflects the record being edited
	assert.Equal(t, "2026-01-05", form.StartDate)
	assert.Equal(t, "2026-01-11", form.EndDate)
	assert.Equal(t, "Save Changes", form.SubmitLabel())

	schedulePartial, ok := form.Submit()
	assert.True(t, ok)
	assert.Equal(t, start.UnixMilli(), *schedulePartial.StartTime)
	assert.Equal(t, end.UnixMilli(), *schedulePartial.EndTime)
}

func TestScheduleFormTypedErrors(t *testing.T) {
	form := dashboard.NewScheduleForm(nil)
	form.StartDate = "next monday"
	form.EndDate = "2026-01-11"

	schedulePartial, ok := form.Submit()
	assert.False(t, ok)
	assert.Nil(t, schedulePartial)
	assert.ElementsMatch(t, []string{"start_time"},
		fieldErrorFields(form.Errors()))
}
