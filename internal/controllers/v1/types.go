package v1

import (
	"github.com/opsconsole/planning-backend/internal/planning"
	"github.com/opsconsole/planning-backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type URIID struct {
	ID uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// Controller holds the settings shared by the v1 handlers.
type Controller struct {
	// Production hours per day used when a load request does not set a capacity
	CapacityPerDay decimal.Decimal

	// Called after every allocation write of the planning endpoints
	OnWrite func(op planning.Op, err error)
}
