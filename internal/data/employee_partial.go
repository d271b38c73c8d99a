package data

import "encoding/json"

// EmployeePartial is the create/update payload for an employee.
// KIM: salary is intentionally absent; the table stores it, but the wire
// contract never carried it and existing consumers depend on that shape.
type EmployeePartial struct {
	Name       *string `json:"name,omitempty"`
	Position   *string `json:"position,omitempty"`
	Department *string `json:"department,omitempty"`
	HireDate   *string `json:"hire_date,omitempty"`
	Wage       *int64  `json:"wage,omitempty"`
}

func (e *EmployeePartial) MarshalBinary() ([]byte, error) {
	return json.Marshal(e)
}

func (e *EmployeePartial) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, e)
}
