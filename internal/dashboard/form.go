package dashboard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tablestaff/tablestaff/internal/data"
)

// FieldError ties a validation failure to the input that caused it; the
// form keeps the raw text so the operator can correct it in place rather
// than having it coerced to a zero value behind their back.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type EmployeeForm struct {
	Name       string
	Position   string
	Department string
	HireDate   string //YYYY-MM-DD
	Wage       string
	Loading    bool
	editing    bool
	errors     []FieldError
}

// NewEmployeeForm returns a form seeded from an existing record when one
// is provided, otherwise a blank form for creation.
func NewEmployeeForm(employee *data.Employee) *EmployeeForm {
	form := &EmployeeForm{}
	if employee != nil {
		form.editing = true
		form.Name = employee.Name
		form.Position = employee.Position
		form.Department = employee.Department
		form.HireDate = employee.HireDate
		form.Wage = strconv.FormatInt(employee.Wage, 10)
	}
	return form
}

func (f *EmployeeForm) SubmitLabel() string {
	if f.editing {
		return "Save Changes"
	}
	return "Add Employee"
}

func (f *EmployeeForm) Errors() []FieldError {
	return f.errors
}

// Validate checks every field and records every failure, not just the
// first one.
func (f *EmployeeForm) Validate() bool {
	f.errors = nil
	if f.Name == "" {
		f.errors = append(f.errors, FieldError{"name", "is required"})
	}
	if f.Position == "" {
		f.errors = append(f.errors, FieldError{"position", "is required"})
	}
	if f.Department == "" {
		f.errors = append(f.errors, FieldError{"department", "is required"})
	}
	switch {
	case f.HireDate == "":
		f.errors = append(f.errors, FieldError{"hire_date", "is required"})
	default:
		if _, err := time.Parse(time.DateOnly, f.HireDate); err != nil {
			f.errors = append(f.errors, FieldError{"hire_date", "must be a date (YYYY-MM-DD)"})
		}
	}
	switch {
	case f.Wage == "":
		f.errors = append(f.errors, FieldError{"wage", "is required"})
	default:
		wage, err := strconv.ParseInt(f.Wage, 10, 64)
		switch {
		case err != nil:
			f.errors = append(f.errors, FieldError{"wage", "must be a number"})
		case wage < 0:
			f.errors = append(f.errors, FieldError{"wage", "must be non-negative"})
		}
	}
	return len(f.errors) == 0
}

// Submit validates and produces the payload; the record id never travels
// with it.
func (f *EmployeeForm) Submit() (*data.EmployeePartial, bool) {
	if !f.Validate() {
		return nil, false
	}
	wage, _ := strconv.ParseInt(f.Wage, 10, 64)
	return &data.EmployeePartial{
		Name:       &f.Name,
		Position:   &f.Position,
		Department: &f.Department,
		HireDate:   &f.HireDate,
		Wage:       &wage,
	}, true
}

type ScheduleForm struct {
	StartDate string //YYYY-MM-DD
	EndDate   string //YYYY-MM-DD
	Loading   bool
	editing   bool
	errors    []FieldError
}

// NewScheduleForm seeds from the record being edited rather than leaving
// the fields blank.
func NewScheduleForm(schedule *data.Schedule) *ScheduleForm {
	form := &ScheduleForm{}
	if schedule != nil {
		form.editing = true
		form.StartDate = time.UnixMilli(schedule.StartTime).UTC().Format(time.DateOnly)
		form.EndDate = time.UnixMilli(schedule.EndTime).UTC().Format(time.DateOnly)
	}
	return form
}

func (f *ScheduleForm) SubmitLabel() string {
	if f.editing {
		return "Save Changes"
	}
	return "Add Schedule"
}

func (f *ScheduleForm) Errors() []FieldError {
	return f.errors
}

func (f *ScheduleForm) Validate() bool {
	f.errors = nil
	switch {
	case f.StartDate == "":
		f.errors = append(f.errors, FieldError{"start_time", "is required"})
	default:
		if _, err := time.Parse(time.DateOnly, f.StartDate); err != nil {
			f.errors = append(f.errors, FieldError{"start_time", "must be a date (YYYY-MM-DD)"})
		}
	}
	switch {
	case f.EndDate == "":
		f.errors = append(f.errors, FieldError{"end_time", "is required"})
	default:
		if _, err := time.Parse(time.DateOnly, f.EndDate); err != nil {
			f.errors = append(f.errors, FieldError{"end_time", "must be a date (YYYY-MM-DD)"})
		}
	}
	return len(f.errors) == 0
}

func (f *ScheduleForm) Submit() (*data.SchedulePartial, bool) {
	if !f.Validate() {
		return nil, false
	}
	start, _ := time.Parse(time.DateOnly, f.StartDate)
	end, _ := time.Parse(time.DateOnly, f.EndDate)
	startTime, endTime := start.UnixMilli(), end.UnixMilli()
	return &data.SchedulePartial{
		StartTime: &startTime,
		EndTime:   &endTime,
	}, true
}
