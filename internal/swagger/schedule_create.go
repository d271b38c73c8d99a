package swagger

import "github.com/tablestaff/tablestaff/internal/data"

// swagger:route PUT /schedules Schedule CreateSchedule
// Creates a schedule.
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
// responses:
//   200: SchedulePutResponseOk

// swagger:response SchedulePutResponseOk
type SchedulePutResponseOk struct {
	// in:body
	Schedule data.Schedule `json:"schedule"`
}

// swagger:parameters CreateSchedule
type SchedulePutParams struct {
	// in:body
	SchedulePartial data.SchedulePartial `json:"schedule_partial"`

	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
