package data

import "encoding/json"

type Schedule struct {
	Id        string `json:"id"`
	StartTime int64  `json:"start_time"` //epoch millis
	EndTime   int64  `json:"end_time"`   //epoch millis
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
	Published bool   `json:"published"`
}

func (s *Schedule) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *Schedule) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}
