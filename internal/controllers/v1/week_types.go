package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/opsconsole/planning-backend/internal/models"
	"github.com/opsconsole/planning-backend/internal/types"
)

type WeekEditable struct {
	StartDate types.Date `json:"startDate" example:"2026-10-12"` // Monday of the week. Year and number are derived from it if they are not set
	EndDate   types.Date `json:"endDate" example:"2026-10-17"`   // Last production day of the week. Defaults to the Saturday
	Year      int        `json:"year" example:"2026"`            // ISO 8601 year of the week
	Number    int        `json:"number" example:"42"`            // ISO 8601 week number
}

func (editable WeekEditable) model() models.Week {
	return models.Week{
		StartDate: editable.StartDate,
		EndDate:   editable.EndDate,
		Year:      editable.Year,
		Number:    editable.Number,
	}
}

type WeekLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/weeks/1ee3ee53-02a4-4a8e-a0e5-9ae0e2c9e4a6"`                   // The week itself
	Grid        string `json:"grid" example:"https://example.com/api/v1/weeks/1ee3ee53-02a4-4a8e-a0e5-9ae0e2c9e4a6/grid"`              // Planning grid of the week
	Load        string `json:"load" example:"https://example.com/api/v1/weeks/1ee3ee53-02a4-4a8e-a0e5-9ae0e2c9e4a6/load"`              // Workload analysis of the week
	Allocations string `json:"allocations" example:"https://example.com/api/v1/allocations?week=1ee3ee53-02a4-4a8e-a0e5-9ae0e2c9e4a6"` // Allocations of the week
}

// Week is the API representation of a Week.
type Week struct {
	models.DefaultModel
	WeekEditable
	Links WeekLinks `json:"links"`
}

func newWeek(c *gin.Context, model models.Week) Week {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/weeks/%s", url, model.ID)

	return Week{
		DefaultModel: model.DefaultModel,
		WeekEditable: WeekEditable{
			StartDate: model.StartDate,
			EndDate:   model.EndDate,
			Year:      model.Year,
			Number:    model.Number,
		},
		Links: WeekLinks{
			Self:        self,
			Grid:        self + "/grid",
			Load:        self + "/load",
			Allocations: fmt.Sprintf("%s/v1/allocations?week=%s", url, model.ID),
		},
	}
}

type WeekListResponse struct {
	Data       []Week      `json:"data"`                                                          // List of weeks
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type WeekCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []WeekResponse `json:"data"`                                                          // List of created weeks
}

func (w *WeekCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	w.Data = append(w.Data, WeekResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type WeekResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this week
	Data  *Week   `json:"data"`                                                          // The week data, if creation was successful
}

// WeekQueryFilter contains the fields that weeks can be filtered with.
type WeekQueryFilter struct {
	Year   int  `form:"year"`                       // By ISO year
	Number int  `form:"number"`                     // By ISO week number
	Offset uint `form:"offset" filterField:"false"` // The offset of the first week returned. Defaults to 0.
	Limit  int  `form:"limit" filterField:"false"`  // Maximum number of weeks to return. Defaults to 50.
}

func (f WeekQueryFilter) model() models.Week {
	return models.Week{
		Year:   f.Year,
		Number: f.Number,
	}
}
