package sql_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tablestaff/tablestaff/internal"
	"github.com/tablestaff/tablestaff/internal/data"
	"github.com/tablestaff/tablestaff/internal/sql"

	"github.com/stretchr/testify/assert"
)

var (
	envs = map[string]string{
		"DATABASE_DRIVER":        "sqlite3",
		"DATABASE_FILE":          "",
		"DATABASE_MIGRATE":       "true",
		"DATABASE_QUERY_TIMEOUT": "10",
	}
)

func init() {
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
}

type sqlTest struct {
	store interface {
		internal.Configurer
		internal.Opener
		sql.Store
	}
}

func newSqlTest() *sqlTest {
	return &sqlTest{store: sql.NewStore()}
}

func (s *sqlTest) TestEmployeeCrud(t *testing.T) {
	ctx := context.TODO()

	// create employee
	name := "Ava " + internal.GenerateId()[:8]
	position, department := "Server", "Front of House"
	hireDate, wage := "2023-02-09", int64(16)
	employeeCreated, err := s.store.EmployeeCreate(ctx, data.EmployeePartial{
		Name:       &name,
		Position:   &position,
		Department: &department,
		HireDate:   &hireDate,
		Wage:       &wage,
	})
	assert.Nil(t, err)
	assert.NotNil(t, employeeCreated)
	assert.NotEmpty(t, employeeCreated.Id)
	assert.Equal(t, name, employeeCreated.Name)
	assert.Equal(t, int64(0), employeeCreated.Salary)
	id := employeeCreated.Id
	defer func(id string) {
		_ = s.store.EmployeeDelete(ctx, id)
	}(id)

	// read employee
	employeeRead, err := s.store.EmployeeRead(ctx, id)
	assert.Nil(t, err)
	assert.Equal(t, employeeCreated, employeeRead)

	// list employees
	employees, err := s.store.EmployeesList(ctx)
	assert.Nil(t, err)
	assert.Contains(t, employees, employeeCreated)

	// update employee
	updatedPosition := "Shift Lead"
	updatedWage := int64(19)
	employeeUpdated, err := s.store.EmployeeUpdate(ctx, id, data.EmployeePartial{
		Position: &updatedPosition,
		Wage:     &updatedWage,
	})
	assert.Nil(t, err)
	assert.Equal(t, updatedPosition, employeeUpdated.Position)
	assert.Equal(t, updatedWage, employeeUpdated.Wage)
	assert.Equal(t, name, employeeUpdated.Name)

	// update of a missing employee fails
	_, err = s.store.EmployeeUpdate(ctx, internal.GenerateId(), data.EmployeePartial{
		Position: &updatedPosition,
	})
	assert.ErrorIs(t, err, sql.ErrEmployeeNotFound)

	// delete employee
	err = s.store.EmployeeDelete(ctx, id)
	assert.Nil(t, err)

	// read after delete fails
	_, err = s.store.EmployeeRead(ctx, id)
	assert.ErrorIs(t, err, sql.ErrEmployeeNotFound)

	// double delete fails the same way
	err = s.store.EmployeeDelete(ctx, id)
	assert.ErrorIs(t, err, sql.ErrEmployeeNotFound)
}

func (s *sqlTest) TestScheduleOrdering(t *testing.T) {
	ctx := context.TODO()

	// create schedules out of order
	now := time.Now().UnixMilli()
	var ids []string
	for _, offset := range []int64{3, 1, 2} {
		startTime := now + offset*24*int64(time.Hour/time.Millisecond)
		endTime := startTime + 6*24*int64(time.Hour/time.Millisecond)
		schedule, err := s.store.ScheduleCreate(ctx, data.SchedulePartial{
			StartTime: &startTime,
			EndTime:   &endTime,
		})
		assert.Nil(t, err)
		assert.NotNil(t, schedule)
		assert.False(t, schedule.Published)
		assert.NotZero(t, schedule.CreatedAt)
		assert.Equal(t, schedule.CreatedAt, schedule.UpdatedAt)
		ids = append(ids, schedule.Id)
	}
	defer func(ids []string) {
		for _, id := range ids {
			_ = s.store.ScheduleDelete(ctx, id)
		}
	}(ids)

	// list comes back ascending by start time
	schedules, err := s.store.SchedulesList(ctx)
	assert.Nil(t, err)
	assert.GreaterOrEqual(t, len(schedules), 3)
	for i := 1; i < len(schedules); i++ {
		assert.LessOrEqual(t, schedules[i-1].StartTime, schedules[i].StartTime)
	}

	// read schedule
	scheduleRead, err := s.store.ScheduleRead(ctx, ids[0])
	assert.Nil(t, err)
	assert.Equal(t, ids[0], scheduleRead.Id)

	// delete schedule
	err = s.store.ScheduleDelete(ctx, ids[0])
	assert.Nil(t, err)

	// double delete fails
	err = s.store.ScheduleDelete(ctx, ids[0])
	assert.ErrorIs(t, err, sql.ErrScheduleNotFound)
}

func TestSqlStore(t *testing.T) {
	s := newSqlTest()

	err := s.store.Configure(envs)
	assert.Nil(t, err)
	err = s.store.Open(context.TODO())
	assert.Nil(t, err)
	defer s.store.Close(context.TODO())

	t.Run("Employee CRUD", s.TestEmployeeCrud)
	t.Run("Schedule Ordering", s.TestScheduleOrdering)
}
