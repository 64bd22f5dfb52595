package v1

import (
	"errors"
	"net/http"

	"github.com/opsconsole/planning-backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errOrderIDRequired = errors.New("the orderId must be set")
	errWeekIDRequired  = errors.New("the weekId must be set")
	errNoWeeks         = errors.New("at least one week must be given")
)
