package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opsconsole/planning-backend/internal/models"
	"github.com/opsconsole/planning-backend/internal/planning"
)

type SplitRequest struct {
	Quantity float64 `json:"quantity" example:"23"` // Quantity to spread over Monday to Friday
}

type SplitResult struct {
	Days  planning.DayVector `json:"days" swaggertype:"array,integer" example:"5,5,5,4,4,0"` // Quantity per day, Monday to Saturday
	Total int                `json:"total" example:"23"`                                     // Sum of the days
}

type SplitResponse struct {
	Error *string      `json:"error" example:"the request body must not be empty"` // The error, if any occurred
	Data  *SplitResult `json:"data"`                                               // The split quantity
}

type DistributeBucket struct {
	Objective float64 `json:"objective" example:"40"` // Objective of the week
	Planned   int     `json:"planned" example:"30"`   // Currently planned quantity of the week
}

type DistributeRequest struct {
	Policy  string             `json:"policy" binding:"required" example:"PROPORTIONAL"` // One of COPY_OBJECTIF, EQUALIZE, PROPORTIONAL, SPLIT_HALF
	Total   float64            `json:"total" example:"120"`                              // Total to distribute. Ignored by COPY_OBJECTIF
	Buckets []DistributeBucket `json:"buckets"`                                          // Weeks of the order in chronological order
}

func (r DistributeRequest) buckets() []planning.Bucket {
	buckets := make([]planning.Bucket, 0, len(r.Buckets))
	for _, b := range r.Buckets {
		buckets = append(buckets, planning.Bucket{Objective: b.Objective, Planned: b.Planned})
	}

	return buckets
}

type DistributeResult struct {
	Policy  planning.Policy `json:"policy" swaggertype:"string" example:"PROPORTIONAL"` // The policy used
	Planned []int           `json:"planned" example:"40,40,40"`                         // New planned quantity per bucket
	Total   int             `json:"total" example:"120"`                                // Sum of the planned quantities
}

type DistributeResponse struct {
	Error *string           `json:"error" example:"unknown distribution policy: \"EVEN\""` // The error, if any occurred
	Data  *DistributeResult `json:"data"`                                                  // The distribution
}

type QuickPlanRequest struct {
	OrderID  uuid.UUID `json:"orderId" example:"2e2f5a47-4b62-4e7a-9e43-0bd0a1c5d7e8"` // ID of the order
	WeekID   uuid.UUID `json:"weekId" example:"1ee3ee53-02a4-4a8e-a0e5-9ae0e2c9e4a6"`  // ID of the week
	Quantity int       `json:"quantity" binding:"gt=0,lte=2147483647" example:"25"`    // Quantity to add to the week
}

type AdvancedPlanWeek struct {
	WeekID    uuid.UUID `json:"weekId" example:"1ee3ee53-02a4-4a8e-a0e5-9ae0e2c9e4a6"` // ID of the week
	Objective int       `json:"objective" binding:"gte=0" example:"40"`                // New objective of the week
	Planned   int       `json:"planned" binding:"gte=0" example:"40"`                  // New planned quantity of the week, spread over Monday to Friday
}

type AdvancedPlanRequest struct {
	OrderID uuid.UUID          `json:"orderId" example:"2e2f5a47-4b62-4e7a-9e43-0bd0a1c5d7e8"` // ID of the order
	Weeks   []AdvancedPlanWeek `json:"weeks" binding:"dive"`                                   // Targets per week, written in this order
}

func (r AdvancedPlanRequest) rows() []planning.WeekRow {
	rows := make([]planning.WeekRow, 0, len(r.Weeks))
	for _, w := range r.Weeks {
		rows = append(rows, planning.WeekRow{WeekID: w.WeekID, Objective: w.Objective, Planned: w.Planned})
	}

	return rows
}

type PlanResultLinks struct {
	Allocation string `json:"allocation,omitempty" example:"https://example.com/api/v1/allocations/5a5c2a8e-3b0e-4a36-a9a4-5c1f4e7e2a10"` // The allocation written
}

// PlanResult is what a planning operation did for one week.
type PlanResult struct {
	WeekID       uuid.UUID          `json:"weekId" example:"1ee3ee53-02a4-4a8e-a0e5-9ae0e2c9e4a6"`       // ID of the week
	Op           planning.Op        `json:"op" swaggertype:"string" example:"UPDATE"`                    // CREATE, UPDATE or SKIP
	AllocationID *uuid.UUID         `json:"allocationId" example:"5a5c2a8e-3b0e-4a36-a9a4-5c1f4e7e2a10"` // ID of the allocation, unset for skipped weeks
	Objective    int                `json:"objective" example:"40"`                                      // Objective after the write
	Planned      planning.DayVector `json:"planned" swaggertype:"array,integer" example:"8,8,8,8,8,0"`   // Planned quantity per day after the write
	Packaged     planning.DayVector `json:"packaged" swaggertype:"array,integer" example:"0,0,0,0,0,0"`  // Packaged quantity per day, never changed by planning
	Links        PlanResultLinks    `json:"links"`
}

func newPlanResult(c *gin.Context, result planning.Result) PlanResult {
	r := PlanResult{
		WeekID: result.WeekID,
		Op:     result.Op,
	}

	if result.Op == planning.OpSkip {
		return r
	}

	url := c.GetString(string(models.DBContextURL))
	id := result.Record.ID

	r.AllocationID = &id
	r.Objective = result.Record.Objective
	r.Planned = result.Record.Planned
	r.Packaged = result.Record.Packaged
	r.Links.Allocation = fmt.Sprintf("%s/v1/allocations/%s", url, id)

	return r
}

type QuickPlanResponse struct {
	Error *string     `json:"error" example:"the value of 'Quantity' must be gt 0"` // The error, if any occurred
	Data  *PlanResult `json:"data"`                                                 // What was written
}

type AdvancedPlanResponse struct {
	Error *string      `json:"error" example:"CREATE of allocation for week 1ee3ee53-02a4-4a8e-a0e5-9ae0e2c9e4a6 failed: allocation quantities must not be negative"` // The error, if any occurred
	Data  []PlanResult `json:"data"`                                                                                                                                  // Results for the weeks handled, in request order. On error, the weeks written before the failure
}
