package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opsconsole/planning-backend/internal/httputil"
	"github.com/opsconsole/planning-backend/internal/models"
)

type OrderEditable struct {
	Number    string    `json:"number" example:"OF-2026-118"`                             // Unique number of the order
	ArticleID uuid.UUID `json:"articleId" example:"51c8b5f4-6b59-44a8-a0b4-5e0f6f7a0a1c"` // ID of the article produced
	Unit      string    `json:"unit" example:"assembly-1"`                                // Production unit the order is made in
	Quantity  int       `json:"quantity" example:"120"`                                   // Total quantity to produce and invoice
	Note      string    `json:"note" example:"Customer asked for delivery in two lots"`   // A note for the order
}

func (editable OrderEditable) model() models.Order {
	return models.Order{
		Number:    editable.Number,
		ArticleID: editable.ArticleID,
		Unit:      editable.Unit,
		Quantity:  editable.Quantity,
		Note:      editable.Note,
	}
}

type OrderLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/orders/2e2f5a47-4b62-4e7a-9e43-0bd0a1c5d7e8"`                   // The order itself
	Article     string `json:"article" example:"https://example.com/api/v1/articles/51c8b5f4-6b59-44a8-a0b4-5e0f6f7a0a1c"`              // The article of the order
	Allocations string `json:"allocations" example:"https://example.com/api/v1/allocations?order=2e2f5a47-4b62-4e7a-9e43-0bd0a1c5d7e8"` // Allocations of the order
}

// Order is the API representation of an Order.
type Order struct {
	models.DefaultModel
	OrderEditable
	Links OrderLinks `json:"links"`
}

func newOrder(c *gin.Context, model models.Order) Order {
	url := c.GetString(string(models.DBContextURL))

	return Order{
		DefaultModel: model.DefaultModel,
		OrderEditable: OrderEditable{
			Number:    model.Number,
			ArticleID: model.ArticleID,
			Unit:      model.Unit,
			Quantity:  model.Quantity,
			Note:      model.Note,
		},
		Links: OrderLinks{
			Self:        fmt.Sprintf("%s/v1/orders/%s", url, model.ID),
			Article:     fmt.Sprintf("%s/v1/articles/%s", url, model.ArticleID),
			Allocations: fmt.Sprintf("%s/v1/allocations?order=%s", url, model.ID),
		},
	}
}

type OrderListResponse struct {
	Data       []Order     `json:"data"`                                                          // List of orders
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type OrderCreateResponse struct {
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []OrderResponse `json:"data"`                                                          // List of created orders
}

func (o *OrderCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	o.Data = append(o.Data, OrderResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type OrderResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this order
	Data  *Order  `json:"data"`                                                          // The order data, if creation was successful
}

// OrderQueryFilter contains the fields that orders can be filtered with.
type OrderQueryFilter struct {
	Number    string `form:"number"`                     // By number
	ArticleID string `form:"article"`                    // By ID of the article
	Unit      string `form:"unit" filterField:"false"`   // By production unit, glob pattern
	Offset    uint   `form:"offset" filterField:"false"` // The offset of the first order returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`  // Maximum number of orders to return. Defaults to 50.
}

func (f OrderQueryFilter) model() (models.Order, error) {
	articleID, err := httputil.UUIDFromString(f.ArticleID)
	if err != nil {
		return models.Order{}, err
	}

	return models.Order{
		Number:    f.Number,
		ArticleID: articleID,
	}, nil
}
