package swagger

import "github.com/tablestaff/tablestaff/internal/data"

// swagger:route GET /employees Employee ListEmployees
// Lists all employees.
//
//     Produces:
//     - application/json
//
// responses:
//   200: EmployeesGetResponseOk

// swagger:response EmployeesGetResponseOk
type EmployeesGetResponseOk struct {
	// in:body
	Employees []data.Employee `json:"employees"`
}

// swagger:parameters ListEmployees
type EmployeesGetParams struct {
	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
