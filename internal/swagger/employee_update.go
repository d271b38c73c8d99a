package swagger

import "github.com/tablestaff/tablestaff/internal/data"

// swagger:route POST /employees/{EmployeeId} Employee UpdateEmployee
// Updates an employee; the salary field can't be changed through this
// operation.
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// responses:
//   200: EmployeePostResponseOk
//   404: description:Employee not found

// swagger:response EmployeePostResponseOk
type EmployeePostResponseOk struct {
	// in:body
	Employee data.Employee `json:"employee"`
}

// swagger:parameters UpdateEmployee
type EmployeePostParams struct {
	// in:path
	EmployeeId string `json:"EmployeeId"`

	// in:body
	EmployeePartial data.EmployeePartial `json:"employee_partial"`

	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
