package cache

import (
	"context"
	"sync"

	"github.com/tablestaff/tablestaff/internal"
	"github.com/tablestaff/tablestaff/internal/data"
	"github.com/tablestaff/tablestaff/internal/utilities"
)

type memoryCache struct {
	sync.RWMutex
	employees       map[string]*data.Employee //map[id]employee
	schedules       map[string]*data.Schedule //map[id]schedule
	employeesListed bool
	schedulesListed bool
	utilities.Logger
}

func NewMemory(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	internal.Clearer
	Cache
} {
	c := &memoryCache{}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case utilities.Logger:
			c.Logger = p
		}
	}
	return c
}

func (c *memoryCache) Configure(envs map[string]string) error {
	return nil
}

func (c *memoryCache) Open(ctx context.Context) error {
	c.Lock()
	defer c.Unlock()

	c.employees = make(map[string]*data.Employee)
	c.schedules = make(map[string]*data.Schedule)
	return nil
}

func (c *memoryCache) Close(ctx context.Context) error {
	return nil
}

func (c *memoryCache) Clear(ctx context.Context) error {
	c.Lock()
	defer c.Unlock()

	c.employees = make(map[string]*data.Employee)
	c.schedules = make(map[string]*data.Schedule)
	c.employeesListed, c.schedulesListed = false, false
	return nil
}

func (c *memoryCache) EmployeeRead(ctx context.Context, id string) (*data.Employee, error) {
	c.RLock()
	defer c.RUnlock()

	employee, ok := c.employees[id]
	if !ok {
		return nil, ErrEmployeeNotCached
	}
	return copyEmployee(employee), nil
}

func (c *memoryCache) EmployeesRead(ctx context.Context) ([]*data.Employee, error) {
	c.RLock()
	defer c.RUnlock()

	if !c.employeesListed {
		return nil, ErrEmployeesNotListed
	}
	employees := make([]*data.Employee, 0, len(c.employees))
	for _, employee := range c.employees {
		employees = append(employees, copyEmployee(employee))
	}
	return employees, nil
}

func (c *memoryCache) EmployeesWrite(ctx context.Context, complete bool, employees ...*data.Employee) error {
	c.Lock()
	defer c.Unlock()

	if complete {
		c.employees = make(map[string]*data.Employee)
	}
	for _, e := range employees {
		employee := copyEmployee(e)
		c.employees[employee.Id] = employee
	}
	c.employeesListed = complete
	return nil
}

func (c *memoryCache) EmployeesDelete(ctx context.Context, ids ...string) error {
	c.Lock()
	defer c.Unlock()

	for _, id := range ids {
		delete(c.employees, id)
	}
	return nil
}

func (c *memoryCache) ScheduleRead(ctx context.Context, id string) (*data.Schedule, error) {
	c.RLock()
	defer c.RUnlock()

	schedule, ok := c.schedules[id]
	if !ok {
		return nil, ErrScheduleNotCached
	}
	return copySchedule(schedule), nil
}

func (c *memoryCache) SchedulesRead(ctx context.Context) ([]*data.Schedule, error) {
	c.RLock()
	defer c.RUnlock()

	if !c.schedulesListed {
		return nil, ErrSchedulesNotListed
	}
	schedules := make([]*data.Schedule, 0, len(c.schedules))
	for _, schedule := range c.schedules {
		schedules = append(schedules, copySchedule(schedule))
	}
	return sortSchedules(schedules), nil
}

func (c *memoryCache) SchedulesWrite(ctx context.Context, complete bool, schedules ...*data.Schedule) error {
	c.Lock()
	defer c.Unlock()

	if complete {
		c.schedules = make(map[string]*data.Schedule)
	}
	for _, s := range schedules {
		schedule := copySchedule(s)
		c.schedules[schedule.Id] = schedule
	}
	c.schedulesListed = complete
	return nil
}

func (c *memoryCache) SchedulesDelete(ctx context.Context, ids ...string) error {
	c.Lock()
	defer c.Unlock()

	for _, id := range ids {
		delete(c.schedules, id)
	}
	return nil
}
