package swagger

// swagger:route DELETE /schedules/{ScheduleId} Schedule DeleteSchedule
// Deletes a schedule by id.
//
// responses:
//   204: description:Schedule deleted
//   404: description:Schedule not found

// swagger:parameters DeleteSchedule
type ScheduleDeleteParams struct {
	// in:path
	ScheduleId string `json:"ScheduleId"`

	// in:header
	CorrelationId string `json:"Correlation-Id"`
}
