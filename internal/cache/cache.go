package cache

import (
	"context"
	"errors"

	"github.com/tablestaff/tablestaff/internal/data"
)

var (
	ErrEmployeeNotCached  = errors.New("employee not cached")
	ErrEmployeesNotListed = errors.New("employee list not cached")
	ErrScheduleNotCached  = errors.New("schedule not cached")
	ErrSchedulesNotListed = errors.New("schedule list not cached")
)

// Cache holds records keyed by id alongside a marker that says whether the
// cached set is a complete copy of the remote list. Writes with complete
// set to true replace the list wholesale and set the marker; partial
// writes upsert records and clear the marker so the next list read falls
// through to the source of truth.
type Cache interface {
	EmployeeRead(ctx context.Context, id string) (*data.Employee, error)
	EmployeesRead(ctx context.Context) ([]*data.Employee, error)
	EmployeesWrite(ctx context.Context, complete bool, employees ...*data.Employee) error
	EmployeesDelete(ctx context.Context, ids ...string) error
	ScheduleRead(ctx context.Context, id string) (*data.Schedule, error)
	SchedulesRead(ctx context.Context) ([]*data.Schedule, error)
	SchedulesWrite(ctx context.Context, complete bool, schedules ...*data.Schedule) error
	SchedulesDelete(ctx context.Context, ids ...string) error
}

func copyEmployee(e *data.Employee) *data.Employee {
	employee := &data.Employee{}
	*employee = *e
	return employee
}

func copySchedule(s *data.Schedule) *data.Schedule {
	schedule := &data.Schedule{}
	*schedule = *s
	return schedule
}

func sortSchedules(schedules []*data.Schedule) []*data.Schedule {
	// the service lists schedules by ascending start time; the cache has
	// to uphold that ordering too
	for i := 1; i < len(schedules); i++ {
		for j := i; j > 0 && schedules[j-1].StartTime > schedules[j].StartTime; j-- {
			schedules[j-1], schedules[j] = schedules[j], schedules[j-1]
		}
	}
	return schedules
}
