package service

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tablestaff/tablestaff/internal"
	"github.com/tablestaff/tablestaff/internal/data"
	"github.com/tablestaff/tablestaff/internal/logic"
	"github.com/tablestaff/tablestaff/internal/sql"
)

var errUnauthorized = errors.New("unauthorized")

func getCorrelationId(request *http.Request) string {
	if correlationId := request.Header.Get("Correlation-Id"); correlationId != "" {
		return correlationId
	}
	return internal.GenerateId()
}

func statusFromError(err error) int {
	switch {
	default:
		return http.StatusInternalServerError
	case errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, sql.ErrEmployeeNotFound),
		errors.Is(err, sql.ErrScheduleNotFound):
		return http.StatusNotFound
	case errors.Is(err, logic.ErrMutateDisabled):
		return http.StatusForbidden
	case errors.As(err, new(*logic.ValidationError)):
		return http.StatusBadRequest
	}
}

func handleResponse(writer http.ResponseWriter, err error, item any) {
	if err != nil {
		bytes, _ := json.Marshal(&data.Response{Error: err.Error()})
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(statusFromError(err))
		writer.Write(bytes)
		return
	}
	if item == nil {
		writer.WriteHeader(http.StatusNoContent)
		return
	}
	bytes, err := json.Marshal(item)
	if err != nil {
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	writer.Write(bytes)
}
