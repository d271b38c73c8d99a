package swagger

import "github.com/tablestaff/tablestaff/internal/data"

// swagger:route GET /schedules/{ScheduleId} Schedule ReadSchedule
// Reads a schedule by id.
//
//     Produces:
//     - application/json
//
// responses:
//   200: ScheduleGetResponseOk
//   404: description:Schedule not found

// swagger:response ScheduleGetResponseOk
type ScheduleGetResponseOk struct {
	// in:body
	Schedule data.Schedule `json:"schedule"`
}

// swagger:parameters ReadSchedule
type ScheduleGetParams struct {
	// in:path
	ScheduleId string `json:"ScheduleId"`

	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
