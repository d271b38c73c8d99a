package dashboard_test

import (
	"strings"
	"testing"

	"github.com/tablestaff/tablestaff/internal/dashboard"
	"github.com/tablestaff/tablestaff/internal/data"

	"github.com/stretchr/testify/assert"
)

func testEmployees() []*data.Employee {
	return []*data.Employee{
		{Id: "1", Name: "Ava Moreno", Position: "Head Chef", Department: "Kitchen", HireDate: "2021-03-15", Wage: 34},
		{Id: "2", Name: "Marcus Lee", Position: "Sous Chef", Department: "Kitchen", HireDate: "2022-07-01", Wage: 27},
		{Id: "3", Name: "Daniel Okafor", Position: "Server", Department: "Front of House", HireDate: "2023-02-09", Wage: 16},
		{Id: "4", Name: "Elena Petrova", Position: "Bartender", Department: "Bar", HireDate: "2022-10-03", Wage: 19},
	}
}

func testSchedules() []*data.Schedule {
	//start times: Jan 5, Jan 12 and Feb 2, 2026 (UTC)
	return []*data.Schedule{
		{Id: "a", StartTime: 1767571200000, EndTime: 1768089600000},
		{Id: "b", StartTime: 1768176000000, EndTime: 1768694400000},
		{Id: "c", StartTime: 1769990400000, EndTime: 1770508800000},
	}
}

func TestEmployeeTableFilter(t *testing.T) {
	table := &dashboard.EmployeeTable{}
	employees := testEmployees()

	// no search matches everything
	rows := table.Rows(employees)
	assert.Len(t, rows, len(employees))

	// name match, case-insensitive
	table.SetSearch("ava")
	rows = table.Rows(employees)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Ava Moreno", rows[0].Name)

	// position match
	table.SetSearch("chef")
	rows = table.Rows(employees)
	assert.Len(t, rows, 2)

	// department match
	table.SetSearch("front of house")
	rows = table.Rows(employees)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Daniel Okafor", rows[0].Name)

	// no match
	table.SetSearch("zzz")
	rows = table.Rows(employees)
	assert.Empty(t, rows)

	// filtering never mutates the input
	assert.Len(t, employees, 4)
}

func TestEmployeeTableSortToggle(t *testing.T) {
	table := &dashboard.EmployeeTable{}
	employees := testEmployees()

	// first click sorts ascending
	table.SortBy(dashboard.SortFieldName)
	rows := table.Rows(employees)
	assert.Equal(t, "Ava Moreno", rows[0].Name)
	assert.Equal(t, "Marcus Lee", rows[len(rows)-1].Name)
	field, direction := table.Sort()
	assert.Equal(t, dashboard.SortFieldName, field)
	assert.Equal(t, dashboard.SortAscending, direction)

	// same field again flips to descending
	table.SortBy(dashboard.SortFieldName)
	rows = table.Rows(employees)
	assert.Equal(t, "Marcus Lee", rows[0].Name)
	_, direction = table.Sort()
	assert.Equal(t, dashboard.SortDescending, direction)

	// a different field resets to ascending
	table.SortBy(dashboard.SortFieldWage)
	rows = table.Rows(employees)
	assert.Equal(t, int64(16), rows[0].Wage)
	assert.Equal(t, int64(34), rows[len(rows)-1].Wage)
	field, direction = table.Sort()
	assert.Equal(t, dashboard.SortFieldWage, field)
	assert.Equal(t, dashboard.SortAscending, direction)
}

func TestEmployeeTableEmptyMessage(t *testing.T) {
	table := &dashboard.EmployeeTable{}

	assert.Equal(t, "No employees found.", table.EmptyMessage())
	table.SetSearch("nobody")
	assert.Equal(t, "No employees found matching your search.", table.EmptyMessage())
}

func TestEmployeeTableRender(t *testing.T) {
	table := &dashboard.EmployeeTable{}
	sb := &strings.Builder{}

	// loading takes precedence over rows
	table.Loading = true
	table.Render(sb, testEmployees())
	assert.Contains(t, sb.String(), "Loading employees...")

	// wage renders as grouped whole dollars
	table.Loading = false
	sb.Reset()
	table.Render(sb, []*data.Employee{
		{Id: "1", Name: "Ava Moreno", Position: "Head Chef",
			Department: "Kitchen", HireDate: "2021-03-15", Wage: 1250},
	})
	assert.Contains(t, sb.String(), "$1,250")
	assert.Contains(t, sb.String(), "Mar 15, 2021")

	// empty state
	sb.Reset()
	table.SetSearch("zzz")
	table.Render(sb, testEmployees())
	assert.Contains(t, sb.String(), "No employees found matching your search.")
}

func TestScheduleTableFilter(t *testing.T) {
	table := &dashboard.ScheduleTable{}
	schedules := testSchedules()

	// search matches against the formatted dates
	table.SetSearch("jan")
	rows := table.Rows(schedules)
	assert.Len(t, rows, 2)

	table.SetSearch("feb 2")
	rows = table.Rows(schedules)
	assert.Len(t, rows, 1)
	assert.Equal(t, "c", rows[0].Id)

	table.SetSearch("2026")
	rows = table.Rows(schedules)
	assert.Len(t, rows, 3)

	table.SetSearch("1768176000000")
	rows = table.Rows(schedules)
	assert.Empty(t, rows)
}

func TestScheduleTableSortToggle(t *testing.T) {
	table := &dashboard.ScheduleTable{}
	schedules := testSchedules()

	table.SortBy(dashboard.SortFieldStartTime)
	rows := table.Rows(schedules)
	assert.Equal(t, "a", rows[0].Id)

	table.SortBy(dashboard.SortFieldStartTime)
	rows = table.Rows(schedules)
	assert.Equal(t, "c", rows[0].Id)
}

func TestScheduleTableEmptyMessage(t *testing.T) {
	table := &dashboard.ScheduleTable{}

	assert.Equal(t, "No schedules found.", table.EmptyMessage())
	table.SetSearch("never")
	assert.Equal(t, "No schedules found matching your search.", table.EmptyMessage())
}
