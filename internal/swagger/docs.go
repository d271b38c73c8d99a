// Package Swagger tablestaff
//
// An API for managing restaurant staff and schedules.
//
//   Schemes: http, https
//   Version: 1.0
//   Host: localhost:8080
//   BasePath:/
//
//   Consumes:
//   - application/json
//
//   Produces:
//   - application/json
//
//   Security:
//   - bearer
//
//  SecurityDefinitions:
//  bearer:
//    type: apiKey
//    name: Authorization
//    in: header
//
// swagger:meta
package swagger
