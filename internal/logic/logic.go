package logic

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/tablestaff/tablestaff/internal/cache"
	"github.com/tablestaff/tablestaff/internal/data"
	"github.com/tablestaff/tablestaff/internal/sql"
	"github.com/tablestaff/tablestaff/internal/utilities"
)

var ErrMutateDisabled = errors.New("mutation disabled")

// ValidationError identifies the field that failed validation so callers
// can surface the failure against the offending input rather than as an
// opaque server error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErrorf(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

type Logic struct {
	sync.RWMutex
	sql.Store
	cache   cache.Cache
	counter utilities.Counter
	logger  utilities.Logger
	config  struct {
		cacheEnabled   bool
		mutateDisabled bool
	}
}

func NewLogic(parameters ...any) *Logic {
	l := &Logic{}
	for _, parameter := range parameters {
		switch v := parameter.(type) {
		case sql.Store:
			l.Store = v
		case cache.Cache:
			l.cache = v
		case utilities.Counter:
			l.counter = v
		case utilities.Logger:
			l.logger = v
		}
	}
	return l
}

func (l *Logic) Configure(envs map[string]string) error {
	l.Lock()
	defer l.Unlock()

	if cacheEnabled, ok := envs["LOGIC_CACHE_ENABLED"]; ok {
		l.config.cacheEnabled, _ = strconv.ParseBool(cacheEnabled)
	}
	if mutateDisabled, ok := envs["MUTATE_DISABLED"]; ok {
		l.config.mutateDisabled, _ = strconv.ParseBool(mutateDisabled)
	}
	return nil
}

func (l *Logic) Open(ctx context.Context) error {
	l.Lock()
	defer l.Unlock()

	if l.config.cacheEnabled && l.cache == nil {
		return errors.New("cache enabled but not provided")
	}
	return nil
}

func (l *Logic) Close(ctx context.Context) error {
	return nil
}

func (l *Logic) errorf(ctx context.Context, format string, v ...any) {
	if l.logger != nil {
		l.logger.Error(ctx, format, v...)
	}
}

func (l *Logic) increment(key string, hit bool) {
	if l.counter == nil {
		return
	}
	if hit {
		l.counter.IncrementHit(key)
		return
	}
	l.counter.IncrementMiss(key)
}

func (l *Logic) EmployeeCreate(ctx context.Context, employeePartial data.EmployeePartial) (*data.Employee, error) {
	if l.config.mutateDisabled {
		return nil, ErrMutateDisabled
	}
	if err := validateEmployeePartial(employeePartial); err != nil {
		return nil, err
	}
	employee, err := l.Store.EmployeeCreate(ctx, employeePartial)
	if err != nil {
		return nil, err
	}
	if l.config.cacheEnabled {
		if err := l.cache.EmployeesWrite(ctx, false, employee); err != nil {
			l.errorf(ctx, "error while writing employee (%s) to cache: %s", employee.Id, err)
		}
	}
	return employee, nil
}

func (l *Logic) EmployeeRead(ctx context.Context, id string) (*data.Employee, error) {
	if l.config.cacheEnabled {
		employee, err := l.cache.EmployeeRead(ctx, id)
		if err == nil {
			l.increment("employee_read", true)
			return employee, nil
		}
		l.increment("employee_read", false)
	}
	employee, err := l.Store.EmployeeRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.config.cacheEnabled {
		if err := l.cache.EmployeesWrite(ctx, false, employee); err != nil {
			l.errorf(ctx, "error while writing employee (%s) to cache: %s", id, err)
		}
	}
	return employee, nil
}

func (l *Logic) EmployeesList(ctx context.Context) ([]*data.Employee, error) {
	if l.config.cacheEnabled {
		employees, err := l.cache.EmployeesRead(ctx)
		if err == nil {
			l.increment("employees_list", true)
			return employees, nil
		}
		l.increment("employees_list", false)
	}
	employees, err := l.Store.EmployeesList(ctx)
	if err != nil {
		return nil, err
	}
	if l.config.cacheEnabled {
		if err := l.cache.EmployeesWrite(ctx, true, employees...); err != nil {
			l.errorf(ctx, "error while writing employees to cache: %s", err)
		}
	}
	return employees, nil
}

func (l *Logic) EmployeeUpdate(ctx context.Context, id string, employeePartial data.EmployeePartial) (*data.Employee, error) {
	if l.config.mutateDisabled {
		return nil, ErrMutateDisabled
	}
	if err := validateEmployeePartial(employeePartial); err != nil {
		return nil, err
	}
	employee, err := l.Store.EmployeeUpdate(ctx, id, employeePartial)
	if err != nil {
		return nil, err
	}
	if l.config.cacheEnabled {
		if err := l.cache.EmployeesDelete(ctx, id); err != nil {
			l.errorf(ctx, "error while deleting employee (%s) from cache: %s", id, err)
		}
	}
	return employee, nil
}

func (l *Logic) EmployeeDelete(ctx context.Context, id string) error {
	if l.config.mutateDisabled {
		return ErrMutateDisabled
	}
	if err := l.Store.EmployeeDelete(ctx, id); err != nil {
		return err
	}
	if l.config.cacheEnabled {
		if err := l.cache.EmployeesDelete(ctx, id); err != nil {
			l.errorf(ctx, "error while deleting employee (%s) from cache: %s", id, err)
		}
	}
	return nil
}

func (l *Logic) ScheduleCreate(ctx context.Context, schedulePartial data.SchedulePartial) (*data.Schedule, error) {
	if l.config.mutateDisabled {
		return nil, ErrMutateDisabled
	}
	if err := validateSchedulePartial(schedulePartial); err != nil {
		return nil, err
	}
	schedule, err := l.Store.ScheduleCreate(ctx, schedulePartial)
	if err != nil {
		return nil, err
	}
	if l.config.cacheEnabled {
		if err := l.cache.SchedulesWrite(ctx, false, schedule); err != nil {
			l.errorf(ctx, "error while writing schedule (%s) to cache: %s", schedule.Id, err)
		}
	}
	return schedule, nil
}

func (l *Logic) ScheduleRead(ctx context.Context, id string) (*data.Schedule, error) {
	if l.config.cacheEnabled {
		schedule, err := l.cache.ScheduleRead(ctx, id)
		if err == nil {
			l.increment("schedule_read", true)
			return schedule, nil
		}
		l.increment("schedule_read", false)
	}
	schedule, err := l.Store.ScheduleRead(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.config.cacheEnabled {
		if err := l.cache.SchedulesWrite(ctx, false, schedule); err != nil {
			l.errorf(ctx, "error while writing schedule (%s) to cache: %s", id, err)
		}
	}
	return schedule, nil
}

func (l *Logic) SchedulesList(ctx context.Context) ([]*data.Schedule, error) {
	if l.config.cacheEnabled {
		schedules, err := l.cache.SchedulesRead(ctx)
		if err == nil {
			l.increment("schedules_list", true)
			return schedules, nil
		}
		l.increment("schedules_list", false)
	}
	schedules, err := l.Store.SchedulesList(ctx)
	if err != nil {
		return nil, err
	}
	if l.config.cacheEnabled {
		if err := l.cache.SchedulesWrite(ctx, true, schedules...); err != nil {
			l.errorf(ctx, "error while writing schedules to cache: %s", err)
		}
	}
	return schedules, nil
}

func (l *Logic) ScheduleDelete(ctx context.Context, id string) error {
	if l.config.mutateDisabled {
		return ErrMutateDisabled
	}
	if err := l.Store.ScheduleDelete(ctx, id); err != nil {
		return err
	}
	if l.config.cacheEnabled {
		if err := l.cache.SchedulesDelete(ctx, id); err != nil {
			l.errorf(ctx, "error while deleting schedule (%s) from cache: %s", id, err)
		}
	}
	return nil
}

func validateEmployeePartial(employeePartial data.EmployeePartial) error {
	if employeePartial.Name == nil || *employeePartial.Name == "" {
		return validationErrorf("name", "is required")
	}
	if employeePartial.Position == nil || *employeePartial.Position == "" {
		return validationErrorf("position", "is required")
	}
	if employeePartial.Department == nil || *employeePartial.Department == "" {
		return validationErrorf("department", "is required")
	}
	if employeePartial.HireDate == nil || *employeePartial.HireDate == "" {
		return validationErrorf("hire_date", "is required")
	}
	if _, err := time.Parse(time.DateOnly, *employeePartial.HireDate); err != nil {
		return validationErrorf("hire_date", "is not a valid date")
	}
	if employeePartial.Wage == nil {
		return validationErrorf("wage", "is required")
	}
	if *employeePartial.Wage < 0 {
		return validationErrorf("wage", "must be non-negative")
	}
	return nil
}

// validateSchedulePartial requires both timestamps. start <= end is not
// enforced; existing rows violate it and rejecting them now would break
// writes that used to succeed.
func validateSchedulePartial(schedulePartial data.SchedulePartial) error {
	if schedulePartial.StartTime == nil {
		return validationErrorf("start_time", "is required")
	}
	if schedulePartial.EndTime == nil {
		return validationErrorf("end_time", "is required")
	}
	return nil
}
