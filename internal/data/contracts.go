package data

const (
	RouteEmployees     string = "/employees"
	RouteEmployeesId   string = RouteEmployees + "/{" + PathEmployeeId + "}"
	RouteEmployeesIdf  string = RouteEmployees + "/%s"
	RouteSchedules     string = "/schedules"
	RouteSchedulesId   string = RouteSchedules + "/{" + PathScheduleId + "}"
	RouteSchedulesIdf  string = RouteSchedules + "/%s"
	RouteCache         string = "/cache"
	RouteCacheCounters string = RouteCache + "/counters"
	RouteTimers        string = "/timers"
)

const (
	PathEmployeeId string = "EmployeeId"
	PathScheduleId string = "ScheduleId"
)

type Request struct {
	EmployeePartial *EmployeePartial `json:"employee_partial,omitempty"`
	SchedulePartial *SchedulePartial `json:"schedule_partial,omitempty"`
}

type Response struct {
	Employee  *Employee   `json:"employee,omitempty"`
	Employees []*Employee `json:"employees,omitempty"`
	Schedule  *Schedule   `json:"schedule,omitempty"`
	Schedules []*Schedule `json:"schedules,omitempty"`
	Error     string      `json:"error,omitempty"`
}
