package dashboard

import (
	"context"

	"github.com/tablestaff/tablestaff/internal"
	"github.com/tablestaff/tablestaff/internal/data"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateCreating
	StateEditing
	StateSubmitting
)

// EmployeeGateway is the slice of the remote surface the employee page
// needs; the http client satisfies it.
type EmployeeGateway interface {
	EmployeeCreate(ctx context.Context, employeePartial data.EmployeePartial) (*data.Employee, error)
	EmployeesList(ctx context.Context) ([]*data.Employee, error)
	EmployeeUpdate(ctx context.Context, id string, employeePartial data.EmployeePartial) (*data.Employee, error)
	EmployeeDelete(ctx context.Context, id string) error
}

type ScheduleGateway interface {
	ScheduleCreate(ctx context.Context, schedulePartial data.SchedulePartial) (*data.Schedule, error)
	SchedulesList(ctx context.Context) ([]*data.Schedule, error)
	ScheduleDelete(ctx context.Context, id string) error
}

// EmployeePage owns the employee collection and applies every mutation
// optimistically: the row changes first, the remote call follows, and a
// failure rolls the row back and notifies the operator.
type EmployeePage struct {
	Table     *EmployeeTable
	Form      *EmployeeForm
	gateway   EmployeeGateway
	notify    func(message string)
	confirm   func(prompt string) bool
	employees []*data.Employee
	editing   *data.Employee
	state     State
}

func NewEmployeePage(gateway EmployeeGateway, notify func(string), confirm func(string) bool) *EmployeePage {
	if notify == nil {
		notify = func(string) {}
	}
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	page := &EmployeePage{
		Table:   &EmployeeTable{},
		gateway: gateway,
		notify:  notify,
		confirm: confirm,
	}
	page.Table.OnAdd = page.Add
	page.Table.OnEdit = page.Edit
	return page
}

func (p *EmployeePage) State() State {
	return p.state
}

func (p *EmployeePage) Employees() []*data.Employee {
	return p.employees
}

// Load replaces the collection wholesale with the server's.
func (p *EmployeePage) Load(ctx context.Context) error {
	p.state = StateLoading
	p.Table.Loading = true
	defer func() {
		p.Table.Loading = false
		p.state = StateIdle
	}()
	employees, err := p.gateway.EmployeesList(ctx)
	if err != nil {
		p.notify("Failed to load employees")
		return err
	}
	p.employees = employees
	return nil
}

func (p *EmployeePage) Add() {
	p.Form = NewEmployeeForm(nil)
	p.editing = nil
	p.state = StateCreating
}

func (p *EmployeePage) Edit(employee *data.Employee) {
	p.Form = NewEmployeeForm(employee)
	p.editing = employee
	p.state = StateEditing
}

func (p *EmployeePage) Cancel() {
	p.Form = nil
	p.editing = nil
	p.state = StateIdle
}

// Submit applies the form. Creation appends a provisional row immediately
// and reconciles it against the server record; an update merges into a
// copy of the row. Either way a failed call restores what was there
// before and notifies.
func (p *EmployeePage) Submit(ctx context.Context) bool {
	if p.Form == nil {
		return false
	}
	employeePartial, ok := p.Form.Submit()
	if !ok {
		return false
	}
	editing := p.editing
	p.state = StateSubmitting
	p.Form.Loading = true
	defer func() {
		p.Form = nil
		p.editing = nil
		p.state = StateIdle
	}()
	if editing == nil {
		return p.submitCreate(ctx, *employeePartial)
	}
	return p.submitUpdate(ctx, editing, *employeePartial)
}

func (p *EmployeePage) submitCreate(ctx context.Context, employeePartial data.EmployeePartial) bool {
	provisional := &data.Employee{
		Id:         internal.GenerateId(),
		Name:       *employeePartial.Name,
		Position:   *employeePartial.Position,
		Department: *employeePartial.Department,
		HireDate:   *employeePartial.HireDate,
		Wage:       *employeePartial.Wage,
	}
	p.employees = append(p.employees, provisional)
	employee, err := p.gateway.EmployeeCreate(ctx, employeePartial)
	if err != nil {
		p.removeEmployee(provisional.Id)
		p.notify("Failed to create employee")
		return false
	}
	for i := range p.employees {
		if p.employees[i].Id == provisional.Id {
			p.employees[i] = employee
			break
		}
	}
	return true
}

func (p *EmployeePage) submitUpdate(ctx context.Context, editing *data.Employee, employeePartial data.EmployeePartial) bool {
	index := p.indexOfEmployee(editing.Id)
	if index < 0 {
		return false
	}
	prior := p.employees[index]
	merged := *prior
	merged.Name = *employeePartial.Name
	merged.Position = *employeePartial.Position
	merged.Department = *employeePartial.Department
	merged.HireDate = *employeePartial.HireDate
	merged.Wage = *employeePartial.Wage
	p.employees[index] = &merged
	if _, err := p.gateway.EmployeeUpdate(ctx, editing.Id, employeePartial); err != nil {
		if index := p.indexOfEmployee(editing.Id); index >= 0 {
			p.employees[index] = prior
		}
		p.notify("Failed to update employee")
		return false
	}
	//KIM: the merged row is kept over the server's response so the salary
	// field the update contract can't carry isn't clobbered locally
	return true
}

// Delete asks for confirmation, removes the row at its recorded index and
// puts it back there if the remote call fails.
func (p *EmployeePage) Delete(ctx context.Context, employee *data.Employee) bool {
	if !p.confirm("Are you sure you want to delete this employee?") {
		return false
	}
	index := p.indexOfEmployee(employee.Id)
	if index < 0 {
		return false
	}
	removed := p.employees[index]
	p.employees = append(p.employees[:index], p.employees[index+1:]...)
	if err := p.gateway.EmployeeDelete(ctx, employee.Id); err != nil {
		p.employees = append(p.employees[:index],
			append([]*data.Employee{removed}, p.employees[index:]...)...)
		p.notify("Failed to delete employee")
		return false
	}
	return true
}

func (p *EmployeePage) indexOfEmployee(id string) int {
	for i := range p.employees {
		if p.employees[i].Id == id {
			return i
		}
	}
	return -1
}

func (p *EmployeePage) removeEmployee(id string) {
	if index := p.indexOfEmployee(id); index >= 0 {
		p.employees = append(p.employees[:index], p.employees[index+1:]...)
	}
}

// SchedulePage mirrors EmployeePage; schedules can't be edited, only
// created and deleted, and the collection stays ordered by start time.
type SchedulePage struct {
	Table     *ScheduleTable
	Form      *ScheduleForm
	gateway   ScheduleGateway
	notify    func(message string)
	confirm   func(prompt string) bool
	schedules []*data.Schedule
	state     State
}

func NewSchedulePage(gateway ScheduleGateway, notify func(string), confirm func(string) bool) *SchedulePage {
	if notify == nil {
		notify = func(string) {}
	}
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	page := &SchedulePage{
		Table:   &ScheduleTable{},
		gateway: gateway,
		notify:  notify,
		confirm: confirm,
	}
	page.Table.OnAdd = page.Add
	return page
}

func (p *SchedulePage) State() State {
	return p.state
}

func (p *SchedulePage) Schedules() []*data.Schedule {
	return p.schedules
}

func (p *SchedulePage) Load(ctx context.Context) error {
	p.state = StateLoading
	p.Table.Loading = true
	defer func() {
		p.Table.Loading = false
		p.state = StateIdle
	}()
	schedules, err := p.gateway.SchedulesList(ctx)
	if err != nil {
		p.notify("Failed to load schedules")
		return err
	}
	p.schedules = schedules
	return nil
}

func (p *SchedulePage) Add() {
	p.Form = NewScheduleForm(nil)
	p.state = StateCreating
}

func (p *SchedulePage) Cancel() {
	p.Form = nil
	p.state = StateIdle
}

func (p *SchedulePage) Submit(ctx context.Context) bool {
	if p.Form == nil {
		return false
	}
	schedulePartial, ok := p.Form.Submit()
	if !ok {
		return false
	}
	p.state = StateSubmitting
	p.Form.Loading = true
	defer func() {
		p.Form = nil
		p.state = StateIdle
	}()
	provisional := &data.Schedule{
		Id:        internal.GenerateId(),
		StartTime: *schedulePartial.StartTime,
		EndTime:   *schedulePartial.EndTime,
	}
	p.insertSchedule(provisional)
	schedule, err := p.gateway.ScheduleCreate(ctx, *schedulePartial)
	if err != nil {
		p.removeSchedule(provisional.Id)
		p.notify("Failed to create schedule")
		return false
	}
	for i := range p.schedules {
		if p.schedules[i].Id == provisional.Id {
			p.schedules[i] = schedule
			break
		}
	}
	return true
}

func (p *SchedulePage) Delete(ctx context.Context, schedule *data.Schedule) bool {
	if !p.confirm("Are you sure you want to delete this schedule?") {
		return false
	}
	index := p.indexOfSchedule(schedule.Id)
	if index < 0 {
		return false
	}
	removed := p.schedules[index]
	p.schedules = append(p.schedules[:index], p.schedules[index+1:]...)
	if err := p.gateway.ScheduleDelete(ctx, schedule.Id); err != nil {
		p.schedules = append(p.schedules[:index],
			append([]*data.Schedule{removed}, p.schedules[index:]...)...)
		p.notify("Failed to delete schedule")
		return false
	}
	return true
}

func (p *SchedulePage) indexOfSchedule(id string) int {
	for i := range p.schedules {
		if p.schedules[i].Id == id {
			return i
		}
	}
	return -1
}

// insertSchedule keeps the start-time ordering the server hands back.
func (p *SchedulePage) insertSchedule(schedule *data.Schedule) {
	index := len(p.schedules)
	for i := range p.schedules {
		if p.schedules[i].StartTime > schedule.StartTime {
			index = i
			break
		}
	}
	p.schedules = append(p.schedules[:index],
		append([]*data.Schedule{schedule}, p.schedules[index:]...)...)
}

func (p *SchedulePage) removeSchedule(id string) {
	if index := p.indexOfSchedule(id); index >= 0 {
		p.schedules = append(p.schedules[:index], p.schedules[index+1:]...)
	}
}
