package swagger

// swagger:route DELETE /employees/{EmployeeId} Employee DeleteEmployee
// Deletes an employee by id.
//
// responses:
//   204: description:Employee deleted
//   404: description:Employee not found

// swagger:parameters DeleteEmployee
type EmployeeDeleteParams struct {
	// in:path
	EmployeeId string `json:"EmployeeId"`

	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
