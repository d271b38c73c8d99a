package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tablestaff/tablestaff/internal"
	"github.com/tablestaff/tablestaff/internal/data"
	"github.com/tablestaff/tablestaff/internal/utilities"

	"github.com/antonio-alexander/go-stash"
)

const (
	stashKeyEmployeef    string = "employee_%s"
	stashKeySchedulef    string = "schedule_%s"
	stashKeyEmployeeList string = "employees_all"
	stashKeyScheduleList string = "schedules_all"
)

// idList is the stashed marker for a complete list; it self-invalidates
// when any member record has been evicted underneath it.
type idList struct {
	Ids []string `json:"ids"`
}

func (l *idList) MarshalBinary() ([]byte, error) {
	return json.Marshal(l)
}

func (l *idList) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, l)
}

type stashCache struct {
	logger utilities.Logger
	stash  interface {
		stash.Configurer
		stash.Parameterizer
		stash.Initializer
		stash.Shutdowner
	}
	stash.Stasher
}

func NewStash(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	internal.Clearer
	Cache
} {
	c := &stashCache{}
	for _, p := range parameters {
		switch p := p.(type) {
		case utilities.Logger:
			c.logger = p
		case interface {
			stash.Configurer
			stash.Parameterizer
			stash.Initializer
			stash.Shutdowner
			stash.Stasher
		}:
			c.stash = p
			c.Stasher = p
		}
	}
	if c.stash != nil {
		c.stash.SetParameters(parameters...)
	}
	return c
}

func (c *stashCache) errorf(ctx context.Context, format string, v ...any) {
	if c.logger != nil {
		c.logger.Error(ctx, format, v...)
	}
}

func (c *stashCache) Configure(envs map[string]string) error {
	if c.stash != nil {
		return c.stash.Configure(envs)
	}
	return nil
}

func (c *stashCache) Open(ctx context.Context) error {
	if c.stash != nil {
		return c.stash.Initialize()
	}
	return nil
}

func (c *stashCache) Close(ctx context.Context) error {
	if c.stash != nil {
		return c.stash.Shutdown()
	}
	return nil
}

func (c *stashCache) Clear(ctx context.Context) error {
	return c.Stasher.Clear()
}

func (c *stashCache) EmployeeRead(ctx context.Context, id string) (*data.Employee, error) {
	employee := &data.Employee{}
	if err := c.Stasher.Read(fmt.Sprintf(stashKeyEmployeef, id), employee); err != nil {
		return nil, ErrEmployeeNotCached
	}
	return employee, nil
}

func (c *stashCache) EmployeesRead(ctx context.Context) ([]*data.Employee, error) {
	list := &idList{}
	if err := c.Stasher.Read(stashKeyEmployeeList, list); err != nil {
		return nil, ErrEmployeesNotListed
	}
	employees := make([]*data.Employee, 0, len(list.Ids))
	for _, id := range list.Ids {
		employee := &data.Employee{}
		if err := c.Stasher.Read(fmt.Sprintf(stashKeyEmployeef, id), employee); err != nil {
			if err := c.Stasher.Delete(stashKeyEmployeeList); err != nil {
				c.errorf(ctx, "error while deleting employee list key: %s", err)
			}
			return nil, ErrEmployeesNotListed
		}
		employees = append(employees, employee)
	}
	return employees, nil
}

func (c *stashCache) EmployeesWrite(ctx context.Context, complete bool, employees ...*data.Employee) error {
	for _, employee := range employees {
		if _, err := c.Stasher.Write(fmt.Sprintf(stashKeyEmployeef, employee.Id), employee); err != nil {
			return err
		}
	}
	if !complete {
		if err := c.Stasher.Delete(stashKeyEmployeeList); err != nil {
			c.errorf(ctx, "error while invalidating employee list: %s", err)
		}
		return nil
	}
	list := &idList{}
	for _, employee := range employees {
		list.Ids = append(list.Ids, employee.Id)
	}
	if _, err := c.Stasher.Write(stashKeyEmployeeList, list); err != nil {
		return err
	}
	return nil
}

func (c *stashCache) EmployeesDelete(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if err := c.Stasher.Delete(fmt.Sprintf(stashKeyEmployeef, id)); err != nil {
			c.errorf(ctx, "error while deleting employee (%s): %s", id, err)
		}
	}
	return nil
}

func (c *stashCache) ScheduleRead(ctx context.Context, id string) (*data.Schedule, error) {
	schedule := &data.Schedule{}
	if err := c.Stasher.Read(fmt.Sprintf(stashKeySchedulef, id), schedule); err != nil {
		return nil, ErrScheduleNotCached
	}
	return schedule, nil
}

func (c *stashCache) SchedulesRead(ctx context.Context) ([]*data.Schedule, error) {
	list := &idList{}
	if err := c.Stasher.Read(stashKeyScheduleList, list); err != nil {
		return nil, ErrSchedulesNotListed
	}
	schedules := make([]*data.Schedule, 0, len(list.Ids))
	for _, id := range list.Ids {
		schedule := &data.Schedule{}
		if err := c.Stasher.Read(fmt.Sprintf(stashKeySchedulef, id), schedule); err != nil {
			if err := c.Stasher.Delete(stashKeyScheduleList); err != nil {
				c.errorf(ctx, "error while deleting schedule list key: %s", err)
			}
			return nil, ErrSchedulesNotListed
		}
		schedules = append(schedules, schedule)
	}
	return sortSchedules(schedules), nil
}

func (c *stashCache) SchedulesWrite(ctx context.Context, complete bool, schedules ...*data.Schedule) error {
	for _, schedule := range schedules {
		if _, err := c.Stasher.Write(fmt.Sprintf(stashKeySchedulef, schedule.Id), schedule); err != nil {
			return err
		}
	}
	if !complete {
		if err := c.Stasher.Delete(stashKeyScheduleList); err != nil {
			c.errorf(ctx, "error while invalidating schedule list: %s", err)
		}
		return nil
	}
	list := &idList{}
	for _, schedule := range schedules {
		list.Ids = append(list.Ids, schedule.Id)
	}
	if _, err := c.Stasher.Write(stashKeyScheduleList, list); err != nil {
		return err
	}
	return nil
}

func (c *stashCache) SchedulesDelete(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if err := c.Stasher.Delete(fmt.Sprintf(stashKeySchedulef, id)); err != nil {
			c.errorf(ctx, "error while deleting schedule (%s): %s", id, err)
		}
	}
	return nil
}
