package swagger

import "github.com/tablestaff/tablestaff/internal/data"

// swagger:route GET /employees/{EmployeeId} Employee ReadEmployee
// Reads an employee by id.
//
//     Produces:
//     - application/json
//
// responses:
//   200: EmployeeGetResponseOk
//   404: description:Employee not found

// swagger:response EmployeeGetResponseOk
type EmployeeGetResponseOk struct {
	// in:body
	Employee data.Employee `json:"employee"`
}

// swagger:parameters ReadEmployee
type EmployeeGetParams struct {
	// in:path
	EmployeeId string `json:"EmployeeId"`

	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
