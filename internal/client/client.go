package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/tablestaff/tablestaff/internal"
	"github.com/tablestaff/tablestaff/internal/cache"
	"github.com/tablestaff/tablestaff/internal/data"
	"github.com/tablestaff/tablestaff/internal/utilities"

	"github.com/pkg/errors"
)

// Client is the typed gateway the dashboard talks through; every method
// maps onto exactly one remote operation.
type Client interface {
	EmployeeCreate(ctx context.Context, employeePartial data.EmployeePartial) (*data.Employee, error)
	EmployeeRead(ctx context.Context, id string) (*data.Employee, error)
	EmployeesList(ctx context.Context) ([]*data.Employee, error)
	EmployeeUpdate(ctx context.Context, id string, employeePartial data.EmployeePartial) (*data.Employee, error)
	EmployeeDelete(ctx context.Context, id string) error
	ScheduleCreate(ctx context.Context, schedulePartial data.SchedulePartial) (*data.Schedule, error)
	ScheduleRead(ctx context.Context, id string) (*data.Schedule, error)
	SchedulesList(ctx context.Context) ([]*data.Schedule, error)
	ScheduleDelete(ctx context.Context, id string) error
}

type client struct {
	sync.RWMutex
	config struct {
		address      string
		port         string
		timeout      time.Duration
		sessionToken string
		maxRetries   uint
		tlsEnabled   bool
		caCrt        string
	}
	*http.Client
	cache cache.Cache
	utilities.Logger
	utilities.Counter
}

func NewClient(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Client
} {
	c := &client{
		Client: &http.Client{},
	}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case cache.Cache:
			c.cache = p
		case utilities.Counter:
			c.Counter = p
		case utilities.Logger:
			c.Logger = p
		}
	}
	return c
}

func (c *client) Configure(envs map[string]string) error {
	c.config.timeout = 10 * time.Second
	if address, ok := envs["CLIENT_ADDRESS"]; ok {
		c.config.address = address
	}
	if port, ok := envs["CLIENT_PORT"]; ok {
		c.config.port = port
	}
	if timeoutString, ok := envs["CLIENT_TIMEOUT"]; ok {
		if timeoutInt, err := strconv.Atoi(timeoutString); err == nil && timeoutInt > 0 {
			c.config.timeout = time.Duration(timeoutInt) * time.Second
		}
	}
	if sessionToken, ok := envs["SESSION_TOKEN"]; ok {
		c.config.sessionToken = sessionToken
	}
	if maxRetriesString, ok := envs["CLIENT_MAX_RETRIES"]; ok {
		if maxRetries, err := strconv.ParseUint(maxRetriesString, 10, 32); err == nil {
			c.config.maxRetries = uint(maxRetries)
		}
	}
	if tlsEnabledString, ok := envs["CLIENT_TLS_ENABLED"]; ok {
		c.config.tlsEnabled, _ = strconv.ParseBool(tlsEnabledString)
	}
	if caCrt, ok := envs["CLIENT_CA_CRT"]; ok {
		c.config.caCrt = caCrt
	}
	return nil
}

func (c *client) Open(ctx context.Context) error {
	c.Lock()
	defer c.Unlock()

	c.Client.Timeout = c.config.timeout
	if c.config.tlsEnabled {
		transport, err := tlsTransport(c.config.caCrt)
		if err != nil {
			return err
		}
		c.Client.Transport = transport
	}
	return nil
}

func (c *client) Close(ctx context.Context) error {
	c.CloseIdleConnections()
	return nil
}

func (c *client) increment(key string, hit bool) {
	if c.Counter == nil {
		return
	}
	if hit {
		c.Counter.IncrementHit(key)
		return
	}
	c.Counter.IncrementMiss(key)
}

func (c *client) tracef(ctx context.Context, format string, v ...any) {
	if c.Logger != nil {
		c.Trace(ctx, format, v...)
	}
}

func (c *client) errorf(ctx context.Context, format string, v ...any) {
	if c.Logger != nil {
		c.Error(ctx, format, v...)
	}
}

func (c *client) EmployeeCreate(ctx context.Context, employeePartial data.EmployeePartial) (*data.Employee, error) {
	body, err := json.Marshal(&data.Request{EmployeePartial: &employeePartial})
	if err != nil {
		return nil, err
	}
	bytes, err := c.doRequest(ctx, c.uri(data.RouteEmployees), http.MethodPut, body)
	if err != nil {
		return nil, err
	}
	response := &data.Response{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	if response.Employee == nil {
		return nil, errors.New("no employee in response")
	}
	if c.cache != nil {
		if err := c.cache.EmployeesWrite(ctx, false, response.Employee); err != nil {
			c.errorf(ctx, "error while writing employee (%s) to cache: %s",
				response.Employee.Id, err)
		}
	}
	return response.Employee, nil
}

func (c *client) EmployeeRead(ctx context.Context, id string) (*data.Employee, error) {
	if c.cache != nil {
		employee, err := c.cache.EmployeeRead(ctx, id)
		if err == nil {
			c.increment("employee_read", true)
			return employee, nil
		}
		c.increment("employee_read", false)
	}
	bytes, err := c.doRequest(ctx, c.uri(data.RouteEmployeesIdf, id), http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	response := &data.Response{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	if response.Employee == nil {
		return nil, errors.New("no employee in response")
	}
	if c.cache != nil {
		if err := c.cache.EmployeesWrite(ctx, false, response.Employee); err != nil {
			c.errorf(ctx, "error while writing employee (%s) to cache: %s", id, err)
		}
	}
	return response.Employee, nil
}

func (c *client) EmployeesList(ctx context.Context) ([]*data.Employee, error) {
	if c.cache != nil {
		employees, err := c.cache.EmployeesRead(ctx)
		if err == nil {
			c.increment("employees_list", true)
			return employees, nil
		}
		c.increment("employees_list", false)
	}
	bytes, err := c.doRequest(ctx, c.uri(data.RouteEmployees), http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	response := &data.Response{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.EmployeesWrite(ctx, true, response.Employees...); err != nil {
			c.errorf(ctx, "error while writing employees to cache: %s", err)
		}
	}
	return response.Employees, nil
}

func (c *client) EmployeeUpdate(ctx context.Context, id string, employeePartial data.EmployeePartial) (*data.Employee, error) {
	body, err := json.Marshal(&data.Request{EmployeePartial: &employeePartial})
	if err != nil {
		return nil, err
	}
	bytes, err := c.doRequest(ctx, c.uri(data.RouteEmployeesIdf, id), http.MethodPost, body)
	if err != nil {
		return nil, err
	}
	response := &data.Response{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	if response.Employee == nil {
		return nil, errors.New("no employee in response")
	}
	if c.cache != nil {
		if err := c.cache.EmployeesDelete(ctx, id); err != nil {
			c.errorf(ctx, "error while deleting employee (%s) from cache: %s", id, err)
		}
	}
	return response.Employee, nil
}

func (c *client) EmployeeDelete(ctx context.Context, id string) error {
	if _, err := c.doRequest(ctx, c.uri(data.RouteEmployeesIdf, id),
		http.MethodDelete, nil); err != nil {
		return err
	}
	if c.cache != nil {
		if err := c.cache.EmployeesDelete(ctx, id); err != nil {
			c.errorf(ctx, "error while deleting employee (%s) from cache: %s", id, err)
		}
	}
	return nil
}

func (c *client) ScheduleCreate(ctx context.Context, schedulePartial data.SchedulePartial) (*data.Schedule, error) {
	body, err := json.Marshal(&data.Request{SchedulePartial: &schedulePartial})
	if err != nil {
		return nil, err
	}
	bytes, err := c.doRequest(ctx, c.uri(data.RouteSchedules), http.MethodPut, body)
	if err != nil {
		return nil, err
	}
	response := &data.Response{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	if response.Schedule == nil {
		return nil, errors.New("no schedule in response")
	}
	if c.cache != nil {
		if err := c.cache.SchedulesWrite(ctx, false, response.Schedule); err != nil {
			c.errorf(ctx, "error while writing schedule (%s) to cache: %s",
				response.Schedule.Id, err)
		}
	}
	return response.Schedule, nil
}

func (c *client) ScheduleRead(ctx context.Context, id string) (*data.Schedule, error) {
	if c.cache != nil {
		schedule, err := c.cache.ScheduleRead(ctx, id)
		if err == nil {
			c.increment("schedule_read", true)
			return schedule, nil
		}
		c.increment("schedule_read", false)
	}
	bytes, err := c.doRequest(ctx, c.uri(data.RouteSchedulesIdf, id), http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	response := &data.Response{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	if response.Schedule == nil {
		return nil, errors.New("no schedule in response")
	}
	if c.cache != nil {
		if err := c.cache.SchedulesWrite(ctx, false, response.Schedule); err != nil {
			c.errorf(ctx, "error while writing schedule (%s) to cache: %s", id, err)
		}
	}
	return response.Schedule, nil
}

func (c *client) SchedulesList(ctx context.Context) ([]*data.Schedule, error) {
	if c.cache != nil {
		schedules, err := c.cache.SchedulesRead(ctx)
		if err == nil {
			c.increment("schedules_list", true)
			return schedules, nil
		}
		c.increment("schedules_list", false)
	}
	bytes, err := c.doRequest(ctx, c.uri(data.RouteSchedules), http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	response := &data.Response{}
	if err := json.Unmarshal(bytes, response); err != nil {
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.SchedulesWrite(ctx, true, response.Schedules...); err != nil {
			c.errorf(ctx, "error while writing schedules to cache: %s", err)
		}
	}
	return response.Schedules, nil
}

func (c *client) ScheduleDelete(ctx context.Context, id string) error {
	if _, err := c.doRequest(ctx, c.uri(data.RouteSchedulesIdf, id),
		http.MethodDelete, nil); err != nil {
		return err
	}
	if c.cache != nil {
		if err := c.cache.SchedulesDelete(ctx, id); err != nil {
			c.errorf(ctx, "error while deleting schedule (%s) from cache: %s", id, err)
		}
	}
	return nil
}

func (c *client) uri(route string, v ...any) string {
	scheme := "http"
	if c.config.tlsEnabled {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%s%s", scheme, c.config.address,
		c.config.port, fmt.Sprintf(route, v...))
}

func (c *client) doRequest(ctx context.Context, uri, method string, body []byte) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, method, uri, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Correlation-Id", correlationId(ctx))
	if c.config.sessionToken != "" {
		request.Header.Set("Authorization", "Bearer "+c.config.sessionToken)
	}
	c.tracef(ctx, "%s %s", method, uri)
	return c.execute(ctx, request)
}
