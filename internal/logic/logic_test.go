package logic_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tablestaff/tablestaff/internal"
	"github.com/tablestaff/tablestaff/internal/cache"
	"github.com/tablestaff/tablestaff/internal/data"
	"github.com/tablestaff/tablestaff/internal/logic"
	"github.com/tablestaff/tablestaff/internal/sql"

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
		"LOGIC_CACHE_ENABLED": "true",
		"MUTATE_DISABLED":     "false",
	}
)

func init() {
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
}

type logicTest struct {
	store interface {
		internal.Configurer
		internal.Opener
		sql.Store
	}
	cache interface {
		internal.Configurer
		internal.Opener
		internal.Clearer
		cache.Cache
	}
	*logic.Logic
}

func newLogicTest() *logicTest {
	store := sql.NewStore()
	c := cache.NewMemory()
	return &logicTest{
		store: store,
		cache: c,
		Logic: logic.NewLogic(store, c),
	}
}

func (l *logicTest) Configure(envs map[string]string) error {
	if err := l.store.Configure(envs); err != nil {
		return err
	}
	if err := l.cache.Configure(envs); err != nil {
		return err
	}
	return l.Logic.Configure(envs)
}

func (l *logicTest) Open(ctx context.Context) error {
	if err := l.store.Open(ctx); err != nil {
		return err
	}
	if err := l.cache.Open(ctx); err != nil {
		return err
	}
	return l.Logic.Open(ctx)
}

func (l *logicTest) Close(ctx context.Context) error {
	if err := l.Logic.Close(ctx); err != nil {
		return err
	}
	if err := l.cache.Close(ctx); err != nil {
		return err
	}
	return l.store.Close(ctx)
}

func employeePartial() data.EmployeePartial {
	name := "Employee " + internal.GenerateId()[:8]
	position, department := "Server", "Front of House"
	hireDate, wage := "2024-05-30", int64(16)
	return data.EmployeePartial{
		Name:       &name,
		Position:   &position,
		Department: &department,
		HireDate:   &hireDate,
		Wage:       &wage,
	}
}

func (l *logicTest) TestEmployees(t *testing.T) {
	ctx := context.TODO()

	// create employee
	employeeCreated, err := l.EmployeeCreate(ctx, employeePartial())
	assert.Nil(t, err)
	assert.NotNil(t, employeeCreated)
	id := employeeCreated.Id
	defer func(id string) {
		_ = l.EmployeeDelete(ctx, id)
	}(id)

	// create wrote through to the cache
	employeeCached, err := l.cache.EmployeeRead(ctx, id)
	assert.Nil(t, err)
	assert.Equal(t, employeeCreated, employeeCached)

	// read employee
	employeeRead, err := l.EmployeeRead(ctx, id)
	assert.Nil(t, err)
	assert.Equal(t, employeeCreated, employeeRead)

	// list employees
	employees, err := l.EmployeesList(ctx)
	assert.Nil(t, err)
	assert.Contains(t, employees, employeeCreated)

	// update invalidates the cached record
	updatedPartial := employeePartial()
	employeeUpdated, err := l.EmployeeUpdate(ctx, id, updatedPartial)
	assert.Nil(t, err)
	assert.Equal(t, *updatedPartial.Name, employeeUpdated.Name)
	employeeCached, err = l.cache.EmployeeRead(ctx, id)
	assert.ErrorIs(t, err, cache.ErrEmployeeNotCached)
	assert.Nil(t, employeeCached)

	// read repopulates the cache
	employeeRead, err = l.EmployeeRead(ctx, id)
	assert.Nil(t, err)
	assert.Equal(t, employeeUpdated, employeeRead)
	employeeCached, err = l.cache.EmployeeRead(ctx, id)
	assert.Nil(t, err)
	assert.Equal(t, employeeUpdated, employeeCached)

	// delete employee
	err = l.EmployeeDelete(ctx, id)
	assert.Nil(t, err)
	_, err = l.cache.EmployeeRead(ctx, id)
	assert.ErrorIs(t, err, cache.ErrEmployeeNotCached)
	_, err = l.EmployeeRead(ctx, id)
	assert.ErrorIs(t, err, sql.ErrEmployeeNotFound)

	// delete of a missing employee is a well-defined failure
	err = l.EmployeeDelete(ctx, id)
	assert.ErrorIs(t, err, sql.ErrEmployeeNotFound)
}

func (l *logicTest) TestSchedules(t *testing.T) {
	ctx := context.TODO()

	// create schedules out of order
	now := time.Now().UnixMilli()
	var ids []string
	for _, offset := range []int64{2, 1} {
		startTime := now + offset*int64(24*time.Hour/time.Millisecond)
		endTime := startTime + int64(6*24*time.Hour/time.Millisecond)
		schedule, err := l.ScheduleCreate(ctx, data.SchedulePartial{
			StartTime: &startTime,
			EndTime:   &endTime,
		})
		assert.Nil(t, err)
		assert.NotNil(t, schedule)
		ids = append(ids, schedule.Id)
	}
	defer func(ids []string) {
		for _, id := range ids {
			_ = l.ScheduleDelete(ctx, id)
		}
	}(ids)

	// list comes back ascending by start time, and the cached list
	// upholds the same ordering
	for i := 0; i < 2; i++ {
		schedules, err := l.SchedulesList(ctx)
		assert.Nil(t, err)
		assert.GreaterOrEqual(t, len(schedules), 2)
		for i := 1; i < len(schedules); i++ {
			assert.LessOrEqual(t, schedules[i-1].StartTime, schedules[i].StartTime)
		}
	}

	// delete schedule
	err := l.ScheduleDelete(ctx, ids[0])
	assert.Nil(t, err)
	err = l.ScheduleDelete(ctx, ids[0])
	assert.ErrorIs(t, err, sql.ErrScheduleNotFound)
}

func (l *logicTest) TestValidation(t *testing.T) {
	ctx := context.TODO()

	// missing name
	partial := employeePartial()
	partial.Name = nil
	_, err := l.EmployeeCreate(ctx, partial)
	validationError := &logic.ValidationError{}
	assert.ErrorAs(t, err, &validationError)
	assert.Equal(t, "name", validationError.Field)

	// malformed hire date
	partial = employeePartial()
	hireDate := "05/30/2024"
	partial.HireDate = &hireDate
	_, err = l.EmployeeCreate(ctx, partial)
	assert.ErrorAs(t, err, &validationError)
	assert.Equal(t, "hire_date", validationError.Field)

	// negative wage
	partial = employeePartial()
	wage := int64(-1)
	partial.Wage = &wage
	_, err = l.EmployeeCreate(ctx, partial)
	assert.ErrorAs(t, err, &validationError)
	assert.Equal(t, "wage", validationError.Field)

	// schedule missing end time
	startTime := time.Now().UnixMilli()
	_, err = l.ScheduleCreate(ctx, data.SchedulePartial{StartTime: &startTime})
	assert.ErrorAs(t, err, &validationError)
	assert.Equal(t, "end_time", validationError.Field)
}

func TestLogic(t *testing.T) {
	l := newLogicTest()

	err := l.Configure(envs)
	assert.Nil(t, err)
	err = l.Open(context.TODO())
	assert.Nil(t, err)
	defer l.Close(context.TODO())

	t.Run("Employees", l.TestEmployees)
	t.Run("Schedules", l.TestSchedules)
	t.Run("Validation", l.TestValidation)
}

func TestLogicMutateDisabled(t *testing.T) {
	l := newLogicTest()

	mutateDisabledEnvs := make(map[string]string)
	for key, value := range envs {
		mutateDisabledEnvs[key] = value
	}
	mutateDisabledEnvs["MUTATE_DISABLED"] = "true"
	err := l.Configure(mutateDisabledEnvs)
	assert.Nil(t, err)
	err = l.Open(context.TODO())
	assert.Nil(t, err)
	defer l.Close(context.TODO())

	_, err = l.EmployeeCreate(context.TODO(), employeePartial())
	assert.ErrorIs(t, err, logic.ErrMutateDisabled)
	err = l.EmployeeDelete(context.TODO(), internal.GenerateId())
	assert.ErrorIs(t, err, logic.ErrMutateDisabled)
}
