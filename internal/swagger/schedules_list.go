package swagger

import "github.com/tablestaff/tablestaff/internal/data"

// swagger:route GET /schedules Schedule ListSchedules
// Lists all schedules ordered by start time.
//
//     Produces:
//     - application/json
//
// responses:
//   200: SchedulesGetResponseOk

// swagger:response SchedulesGetResponseOk
type SchedulesGetResponseOk struct {
	// in:body
	Schedules []data.Schedule `json:"schedules"`
}

// swagger:parameters ListSchedules
type SchedulesGetParams struct {
	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
