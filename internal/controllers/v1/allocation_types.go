package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opsconsole/planning-backend/internal/httputil"
	"github.com/opsconsole/planning-backend/internal/models"
	"github.com/opsconsole/planning-backend/internal/planning"
	"github.com/opsconsole/planning-backend/internal/types"
)

type AllocationEditable struct {
	OrderID   uuid.UUID          `json:"orderId" example:"2e2f5a47-4b62-4e7a-9e43-0bd0a1c5d7e8"`     // ID of the order
	WeekID    uuid.UUID          `json:"weekId" example:"1ee3ee53-02a4-4a8e-a0e5-9ae0e2c9e4a6"`      // ID of the week
	Objective int                `json:"objective" example:"40"`                                     // Quantity to produce and invoice in the week
	Planned   planning.DayVector `json:"planned" swaggertype:"array,integer" example:"8,8,8,8,8,0"`  // Planned quantity per day, Monday to Saturday
	Packaged  planning.DayVector `json:"packaged" swaggertype:"array,integer" example:"8,8,0,0,0,0"` // Packaged quantity per day, Monday to Saturday
	StartDate types.Date         `json:"startDate" example:"2026-10-12"`                             // Production start, if known
	LotLabel  string             `json:"lotLabel" example:"L-2642-01"`                               // Label of the production lot
	Comment   string             `json:"comment" example:"Waiting for the paint shop"`               // A comment on the allocation
}

func (editable AllocationEditable) model() models.Allocation {
	a := models.Allocation{
		OrderID:   editable.OrderID,
		WeekID:    editable.WeekID,
		Objective: editable.Objective,
		StartDate: editable.StartDate,
		LotLabel:  editable.LotLabel,
		Comment:   editable.Comment,
	}
	a.SetPlanned(editable.Planned)
	a.SetPackaged(editable.Packaged)

	return a
}

type AllocationLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/allocations/5a5c2a8e-3b0e-4a36-a9a4-5c1f4e7e2a10"` // The allocation itself
	Order string `json:"order" example:"https://example.com/api/v1/orders/2e2f5a47-4b62-4e7a-9e43-0bd0a1c5d7e8"`     // The order that is allocated
	Week  string `json:"week" example:"https://example.com/api/v1/weeks/1ee3ee53-02a4-4a8e-a0e5-9ae0e2c9e4a6"`       // The week the order is allocated to
}

// Allocation is the API representation of an Allocation.
type Allocation struct {
	models.DefaultModel
	AllocationEditable
	PlannedTotal  int             `json:"plannedTotal" example:"40"`  // Sum of the planned quantities
	PackagedTotal int             `json:"packagedTotal" example:"16"` // Sum of the packaged quantities
	Links         AllocationLinks `json:"links"`
}

func newAllocation(c *gin.Context, model models.Allocation) Allocation {
	url := c.GetString(string(models.DBContextURL))

	return Allocation{
		DefaultModel: model.DefaultModel,
		AllocationEditable: AllocationEditable{
			OrderID:   model.OrderID,
			WeekID:    model.WeekID,
			Objective: model.Objective,
			Planned:   model.Planned(),
			Packaged:  model.Packaged(),
			StartDate: model.StartDate,
			LotLabel:  model.LotLabel,
			Comment:   model.Comment,
		},
		PlannedTotal:  model.Planned().Sum(),
		PackagedTotal: model.Packaged().Sum(),
		Links: AllocationLinks{
			Self:  fmt.Sprintf("%s/v1/allocations/%s", url, model.ID),
			Order: fmt.Sprintf("%s/v1/orders/%s", url, model.OrderID),
			Week:  fmt.Sprintf("%s/v1/weeks/%s", url, model.WeekID),
		},
	}
}

type AllocationListResponse struct {
	Data       []Allocation `json:"data"`                                                          // List of allocations
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type AllocationCreateResponse struct {
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []AllocationResponse `json:"data"`                                                          // List of created allocations
}

func (a *AllocationCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AllocationResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AllocationResponse struct {
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this allocation
	Data  *Allocation `json:"data"`                                                          // The allocation data, if creation was successful
}

// AllocationQueryFilter contains the fields that allocations can be filtered with.
type AllocationQueryFilter struct {
	OrderID string `form:"order"`                      // By ID of the order
	WeekID  string `form:"week"`                       // By ID of the week
	Offset  uint   `form:"offset" filterField:"false"` // The offset of the first allocation returned. Defaults to 0.
	Limit   int    `form:"limit" filterField:"false"`  // Maximum number of allocations to return. Defaults to 50.
}

func (f AllocationQueryFilter) model() (models.Allocation, error) {
	orderID, err := httputil.UUIDFromString(f.OrderID)
	if err != nil {
		return models.Allocation{}, err
	}

	weekID, err := httputil.UUIDFromString(f.WeekID)
	if err != nil {
		return models.Allocation{}, err
	}

	return models.Allocation{
		OrderID: orderID,
		WeekID:  weekID,
	}, nil
}

// allocationUpdateFields returns the model fields for the editable fields set in
// the request body. Day vectors map to one field per day.
func allocationUpdateFields(bodyFields []any) []any {
	fields := make([]any, 0, len(bodyFields))
	for _, f := range bodyFields {
		switch f {
		case "Planned":
			for _, p := range models.PlannedFields {
				fields = append(fields, p)
			}
		case "Packaged":
			for _, p := range models.PackagedFields {
				fields = append(fields, p)
			}
		default:
			fields = append(fields, f)
		}
	}

	return fields
}
