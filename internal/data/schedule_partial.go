package data

import "encoding/json"

// SchedulePartial is the create payload for a schedule; the service sets
// published and the timestamps.
type SchedulePartial struct {
	StartTime *int64 `json:"start_time,omitempty"`
	EndTime   *int64 `json:"end_time,omitempty"`
}

func (s *SchedulePartial) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *SchedulePartial) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}
