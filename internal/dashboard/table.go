package dashboard

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/tablestaff/tablestaff/internal/data"

	"github.com/fatih/color"
)

type SortDirection int

const (
	SortAscending SortDirection = iota
	SortDescending
)

const (
	SortFieldName       string = "name"
	SortFieldPosition   string = "position"
	SortFieldDepartment string = "department"
	SortFieldHireDate   string = "hire_date"
	SortFieldWage       string = "wage"
	SortFieldStartTime  string = "start_time"
	SortFieldEndTime    string = "end_time"
)

// EmployeeTable holds the presentation state for the employee listing:
// the search text, the active sort and whether a load is in flight. The
// row slice itself belongs to the page controller.
type EmployeeTable struct {
	search        string
	sortField     string
	sortDirection SortDirection
	Loading       bool
	OnAdd         func()
	OnEdit        func(employee *data.Employee)
	OnDelete      func(employee *data.Employee)
}

func (t *EmployeeTable) SetSearch(search string) {
	t.search = search
}

func (t *EmployeeTable) Search() string {
	return t.search
}

// SortBy toggles direction when the field is already active and resets
// to ascending when a different field is chosen.
func (t *EmployeeTable) SortBy(field string) {
	if t.sortField == field {
		if t.sortDirection == SortAscending {
			t.sortDirection = SortDescending
			return
		}
		t.sortDirection = SortAscending
		return
	}
	t.sortField = field
	t.sortDirection = SortAscending
}

func (t *EmployeeTable) Sort() (string, SortDirection) {
	return t.sortField, t.sortDirection
}

// Rows filters then sorts; the input slice is never mutated.
func (t *EmployeeTable) Rows(employees []*data.Employee) []*data.Employee {
	rows := make([]*data.Employee, 0, len(employees))
	for _, employee := range employees {
		if matchesEmployee(employee, t.search) {
			rows = append(rows, employee)
		}
	}
	if t.sortField == "" {
		return rows
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if t.sortDirection == SortDescending {
			return employeeLess(rows[j], rows[i], t.sortField)
		}
		return employeeLess(rows[i], rows[j], t.sortField)
	})
	return rows
}

func (t *EmployeeTable) EmptyMessage() string {
	if t.search != "" {
		return "No employees found matching your search."
	}
	return "No employees found."
}

func (t *EmployeeTable) Render(writer io.Writer, employees []*data.Employee) {
	if t.Loading {
		fmt.Fprintln(writer, "Loading employees...")
		return
	}
	rows := t.Rows(employees)
	if len(rows) == 0 {
		fmt.Fprintln(writer, t.EmptyMessage())
		return
	}
	header := color.New(color.Bold)
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header.Sprint("NAME\tPOSITION\tDEPARTMENT\tHIRE DATE\tWAGE"))
	for _, employee := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			employee.Name, employee.Position, employee.Department,
			formatHireDate(employee.HireDate), formatCurrency(employee.Wage))
	}
	tw.Flush()
	fmt.Fprintf(writer, "%d employee(s)\n", len(rows))
}

func matchesEmployee(employee *data.Employee, search string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(employee.Name), search) ||
		strings.Contains(strings.ToLower(employee.Position), search) ||
		strings.Contains(strings.ToLower(employee.Department), search)
}

func employeeLess(a, b *data.Employee, field string) bool {
	switch field {
	default:
		return false
	case SortFieldName:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	case SortFieldPosition:
		return strings.ToLower(a.Position) < strings.ToLower(b.Position)
	case SortFieldDepartment:
		return strings.ToLower(a.Department) < strings.ToLower(b.Department)
	case SortFieldHireDate:
		return a.HireDate < b.HireDate
	case SortFieldWage:
		return a.Wage < b.Wage
	}
}

// ScheduleTable mirrors EmployeeTable for the schedule listing; its
// search matches against the formatted dates the operator actually sees.
type ScheduleTable struct {
	search        string
	sortField     string
	sortDirection SortDirection
	Loading       bool
	OnAdd         func()
	OnDelete      func(schedule *data.Schedule)
}

func (t *ScheduleTable) SetSearch(search string) {
	t.search = search
}

func (t *ScheduleTable) Search() string {
	return t.search
}

func (t *ScheduleTable) SortBy(field string) {
	if t.sortField == field {
		if t.sortDirection == SortAscending {
			t.sortDirection = SortDescending
			return
		}
		t.sortDirection = SortAscending
		return
	}
	t.sortField = field
	t.sortDirection = SortAscending
}

func (t *ScheduleTable) Sort() (string, SortDirection) {
	return t.sortField, t.sortDirection
}

func (t *ScheduleTable) Rows(schedules []*data.Schedule) []*data.Schedule {
	rows := make([]*data.Schedule, 0, len(schedules))
	for _, schedule := range schedules {
		if matchesSchedule(schedule, t.search) {
			rows = append(rows, schedule)
		}
	}
	if t.sortField == "" {
		return rows
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if t.sortDirection == SortDescending {
			return scheduleLess(rows[j], rows[i], t.sortField)
		}
		return scheduleLess(rows[i], rows[j], t.sortField)
	})
	return rows
}

func (t *ScheduleTable) EmptyMessage() string {
	if t.search != "" {
		return "No schedules found matching your search."
	}
	return "No schedules found."
}

func (t *ScheduleTable) Render(writer io.Writer, schedules []*data.Schedule) {
	if t.Loading {
		fmt.Fprintln(writer, "Loading schedules...")
		return
	}
	rows := t.Rows(schedules)
	if len(rows) == 0 {
		fmt.Fprintln(writer, t.EmptyMessage())
		return
	}
	header := color.New(color.Bold)
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header.Sprint("START\tEND\tPUBLISHED"))
	for _, schedule := range rows {
		published := "no"
		if schedule.Published {
			published = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", formatDate(schedule.StartTime),
			formatDate(schedule.EndTime), published)
	}
	tw.Flush()
	fmt.Fprintf(writer, "%d schedule(s)\n", len(rows))
}

func matchesSchedule(schedule *data.Schedule, search string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(formatDate(schedule.StartTime)), search) ||
		strings.Contains(strings.ToLower(formatDate(schedule.EndTime)), search)
}

func scheduleLess(a, b *data.Schedule, field string) bool {
	switch field {
	default:
		return false
	case SortFieldStartTime:
		return a.StartTime < b.StartTime
	case SortFieldEndTime:
		return a.EndTime < b.EndTime
	}
}

// formatDate renders an epoch-millisecond timestamp the way the listing
// displays it, e.g. "Jan 2, 2006".
func formatDate(millis int64) string {
	return time.UnixMilli(millis).UTC().Format("Jan 2, 2006")
}

func formatHireDate(hireDate string) string {
	t, err := time.Parse(time.DateOnly, hireDate)
	if err != nil {
		return hireDate
	}
	return t.Format("Jan 2, 2006")
}

// formatCurrency renders whole dollars with comma grouping, e.g. "$45,000".
func formatCurrency(amount int64) string {
	sign := ""
	if amount < 0 {
		sign, amount = "-", -amount
	}
	digits := fmt.Sprintf("%d", amount)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return sign + "$" + strings.Join(groups, ",")
}
