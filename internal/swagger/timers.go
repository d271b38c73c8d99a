package swagger

import "github.com/tablestaff/tablestaff/internal/data"

// swagger:route GET /timers Timers ReadTimers
// Reads the endpoint timers.
//
//     Produces:
//     - application/json
//
// responses:
//   200: TimersGetResponseOk

// swagger:response TimersGetResponseOk
type TimersGetResponseOk struct {
	// in:body
	Timers data.Timers `json:"timers"`
}

// swagger:route DELETE /timers Timers ClearTimers
// Clears the endpoint timers.
//
// responses:
//   204: description:Timers cleared
