package client_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tablestaff/tablestaff/internal"
	"github.com/tablestaff/tablestaff/internal/cache"
	"github.com/tablestaff/tablestaff/internal/client"
	"github.com/tablestaff/tablestaff/internal/data"
	"github.com/tablestaff/tablestaff/internal/logic"
	"github.com/tablestaff/tablestaff/internal/service"
	"github.com/tablestaff/tablestaff/internal/sql"
	"github.com/tablestaff/tablestaff/internal/utilities"

	"github.com/stretchr/testify/assert"
)

var (
	envs = map[string]string{
		//sql
		"DATABASE_DRIVER":        "sqlite3",
		"DATABASE_FILE":          "",
		"DATABASE_MIGRATE":       "true",
		"DATABASE_QUERY_TIMEOUT": "10",
		//logic
		"LOGIC_CACHE_ENABLED": "false",
		//service
		"SERVICE_ADDRESS":       "localhost",
		"SERVICE_PORT":          "9000",
		"SERVICE_CORS_DISABLED": "true",
		"SESSION_DISABLED":      "true",
		//client
		"CLIENT_ADDRESS": "localhost",
		"CLIENT_PORT":    "9000",
		"CLIENT_TIMEOUT": "10",
	}
)

func init() {
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
}

type clientTest struct {
	store interface {
		internal.Configurer
		internal.Opener
		sql.Store
	}
	service interface {
		internal.Configurer
		internal.Opener
	}
	cache interface {
		internal.Configurer
		internal.Opener
		internal.Clearer
		cache.Cache
	}
	client interface {
		internal.Configurer
		internal.Opener
		client.Client
	}
}

func newClientTest() *clientTest {
	logger := utilities.NewLogger()
	_ = logger.Configure(envs)
	store := sql.NewStore(logger)
	l := logic.NewLogic(store, logger)
	c := cache.NewMemory(logger)
	return &clientTest{
		store: store,
		service: service.NewService(l, logger,
			utilities.NewCounter(), utilities.NewTimers()),
		cache:  c,
		client: client.NewClient(logger, c),
	}
}

func (c *clientTest) Configure(envs map[string]string) error {
	if err := c.store.Configure(envs); err != nil {
		return err
	}
	if err := c.service.Configure(envs); err != nil {
		return err
	}
	if err := c.cache.Configure(envs); err != nil {
		return err
	}
	return c.client.Configure(envs)
}

func (c *clientTest) Open(ctx context.Context) error {
	if err := c.store.Open(ctx); err != nil {
		return err
	}
	if err := c.service.Open(ctx); err != nil {
		return err
	}
	if err := c.cache.Open(ctx); err != nil {
		return err
	}
	return c.client.Open(ctx)
}

func (c *clientTest) Close(ctx context.Context) error {
	if err := c.client.Close(ctx); err != nil {
		return err
	}
	if err := c.service.Close(ctx); err != nil {
		return err
	}
	return c.store.Close(ctx)
}

func (c *clientTest) TestEmployeeRoundTrip(t *testing.T) {
	ctx := internal.CtxWithCorrelationId(context.TODO(), "client_test")

	// create employee through the wire
	name, position, department := "Ava Moreno", "Head Chef", "Kitchen"
	hireDate, wage := "2021-03-15", int64(34)
	employeeCreated, err := c.client.EmployeeCreate(ctx, data.EmployeePartial{
		Name:       &name,
		Position:   &position,
		Department: &department,
		HireDate:   &hireDate,
		Wage:       &wage,
	})
	assert.Nil(t, err)
	assert.NotNil(t, employeeCreated)
	assert.NotEmpty(t, employeeCreated.Id)
	id := employeeCreated.Id
	defer func(id string) {
		_ = c.client.EmployeeDelete(ctx, id)
	}(id)

	// read employee; this comes from the client cache
	employeeRead, err := c.client.EmployeeRead(ctx, id)
	assert.Nil(t, err)
	assert.Equal(t, employeeCreated, employeeRead)

	// list employees
	employees, err := c.client.EmployeesList(ctx)
	assert.Nil(t, err)
	assert.Contains(t, employees, employeeCreated)

	// update employee
	updatedPosition := "Executive Chef"
	employeeUpdated, err := c.client.EmployeeUpdate(ctx, id, data.EmployeePartial{
		Name:       &name,
		Position:   &updatedPosition,
		Department: &department,
		HireDate:   &hireDate,
		Wage:       &wage,
	})
	assert.Nil(t, err)
	assert.Equal(t, updatedPosition, employeeUpdated.Position)

	// the cached record was invalidated, a fresh read round-trips
	employeeRead, err = c.client.EmployeeRead(ctx, id)
	assert.Nil(t, err)
	assert.Equal(t, employeeUpdated, employeeRead)

	// delete employee
	err = c.client.EmployeeDelete(ctx, id)
	assert.Nil(t, err)

	// deleting again surfaces the remote not-found
	err = c.client.EmployeeDelete(ctx, id)
	assert.NotNil(t, err)
}

func (c *clientTest) TestScheduleRoundTrip(t *testing.T) {
	ctx := internal.CtxWithCorrelationId(context.TODO(), "client_test")

	startTime := time.Now().UnixMilli()
	endTime := startTime + int64(6*24*time.Hour/time.Millisecond)
	scheduleCreated, err := c.client.ScheduleCreate(ctx, data.SchedulePartial{
		StartTime: &startTime,
		EndTime:   &endTime,
	})
	assert.Nil(t, err)
	assert.NotNil(t, scheduleCreated)
	assert.False(t, scheduleCreated.Published)
	id := scheduleCreated.Id
	defer func(id string) {
		_ = c.client.ScheduleDelete(ctx, id)
	}(id)

	scheduleRead, err := c.client.ScheduleRead(ctx, id)
	assert.Nil(t, err)
	assert.Equal(t, scheduleCreated, scheduleRead)

	schedules, err := c.client.SchedulesList(ctx)
	assert.Nil(t, err)
	assert.Contains(t, schedules, scheduleCreated)

	err = c.client.ScheduleDelete(ctx, id)
	assert.Nil(t, err)
	err = c.client.ScheduleDelete(ctx, id)
	assert.NotNil(t, err)
}

func (c *clientTest) TestValidationOverTheWire(t *testing.T) {
	ctx := context.TODO()

	// a create with a bad hire date is rejected with a field error
	name, position, department := "Ava Moreno", "Head Chef", "Kitchen"
	hireDate, wage := "03/15/2021", int64(34)
	employee, err := c.client.EmployeeCreate(ctx, data.EmployeePartial{
		Name:       &name,
		Position:   &position,
		Department: &department,
		HireDate:   &hireDate,
		Wage:       &wage,
	})
	assert.NotNil(t, err)
	assert.Nil(t, employee)
	assert.Contains(t, err.Error(), "hire_date")
}

func TestClient(t *testing.T) {
	c := newClientTest()

	err := c.Configure(envs)
	assert.Nil(t, err)
	err = c.Open(context.TODO())
	assert.Nil(t, err)
	defer c.Close(context.TODO())

	t.Run("Employee Round Trip", c.TestEmployeeRoundTrip)
	t.Run("Schedule Round Trip", c.TestScheduleRoundTrip)
	t.Run("Validation Over The Wire", c.TestValidationOverTheWire)
}
