package data

import "encoding/json"

type Employee struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	HireDate   string `json:"hire_date"` //ISO date (YYYY-MM-DD)
	Salary     int64  `json:"salary"`    //annual
	Wage       int64  `json:"wage"`      //hourly
}

func (e *Employee) MarshalBinary() ([]byte, error) {
	return json.Marshal(e)
}

func (e *Employee) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, e)
}
