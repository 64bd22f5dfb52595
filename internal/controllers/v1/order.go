package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsconsole/planning-backend/internal/httputil"
	"github.com/opsconsole/planning-backend/internal/models"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterOrderRoutes registers the routes for orders with
// the RouterGroup that is passed.
func (co Controller) RegisterOrderRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsOrderList)
		r.GET("", GetOrders)
		r.POST("", CreateOrders)
	}

	// Order with ID
	{
		r.OPTIONS("/:id", OptionsOrderDetail)
		r.GET("/:id", GetOrder)
		r.PATCH("/:id", UpdateOrder)
		r.DELETE("/:id", DeleteOrder)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Orders
// @Success		204
// @Router			/v1/orders [options]
func OptionsOrderList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Orders
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/orders/{id} [options]
func OptionsOrderDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Order{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create orders
// @Description	Creates orders from the list of submitted order data. The response code is the highest response code number that a single order creation would have caused. If it is not equal to 201, at least one order has an error.
// @Tags			Orders
// @Produce		json
// @Success		201		{object}	OrderCreateResponse
// @Failure		400		{object}	OrderCreateResponse
// @Failure		404		{object}	OrderCreateResponse
// @Failure		500		{object}	OrderCreateResponse
// @Param			orders	body		[]OrderEditable	true	"Orders"
// @Router			/v1/orders [post]
func CreateOrders(c *gin.Context) {
	var orders []OrderEditable

	err := httputil.BindData(c, &orders)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OrderCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := OrderCreateResponse{}

	for _, editable := range orders {
		order := editable.model()

		err = models.DB.Create(&order).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newOrder(c, order)
		r.Data = append(r.Data, OrderResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get orders
// @Description	Returns a list of orders ordered by number
// @Tags			Orders
// @Produce		json
// @Success		200		{object}	OrderListResponse
// @Failure		400		{object}	OrderListResponse
// @Failure		500		{object}	OrderListResponse
// @Param			number	query		string	false	"Filter by number"
// @Param			article	query		string	false	"Filter by article ID"
// @Param			unit	query		string	false	"Filter by production unit. Glob pattern, * matches any characters"
// @Param			offset	query		uint	false	"The offset of the first order returned. Defaults to 0."
// @Param			limit	query		int		false	"Maximum number of orders to return. Defaults to 50."
// @Router			/v1/orders [get]
func GetOrders(c *gin.Context) {
	var filter OrderQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, OrderListResponse{
			Error: &s,
		})
		return
	}

	// Get the parameters set in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OrderListResponse{Error: &e})
		return
	}

	var orders []models.Order
	err = models.DB.
		Order("number ASC").
		Where(&model, queryFields...).
		Find(&orders).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OrderListResponse{Error: &e})
		return
	}

	// Units are matched with globs, which SQLite's GLOB does not
	// implement the same way. Pagination is therefore applied here.
	if slices.Contains(setFields, "Unit") {
		orders = slices.DeleteFunc(orders, func(o models.Order) bool {
			return !glob.Glob(filter.Unit, o.Unit)
		})
	}

	total := int64(len(orders))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}

	offset := min(int(filter.Offset), len(orders))
	orders = orders[offset:]
	if limit >= 0 && limit < len(orders) {
		orders = orders[:limit]
	}

	data := make([]Order, 0)
	for _, order := range orders {
		data = append(data, newOrder(c, order))
	}

	c.JSON(http.StatusOK, OrderListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get order
// @Description	Returns a specific order
// @Tags			Orders
// @Produce		json
// @Success		200	{object}	OrderResponse
// @Failure		400	{object}	OrderResponse
// @Failure		404	{object}	OrderResponse
// @Failure		500	{object}	OrderResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/orders/{id} [get]
func GetOrder(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OrderResponse{Error: &e})
		return
	}

	var order models.Order
	err = models.DB.First(&order, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OrderResponse{Error: &e})
		return
	}

	data := newOrder(c, order)
	c.JSON(http.StatusOK, OrderResponse{Data: &data})
}

// @Summary		Update order
// @Description	Update an order. Only values to be updated need to be specified.
// @Tags			Orders
// @Accept			json
// @Produce		json
// @Success		200		{object}	OrderResponse
// @Failure		400		{object}	OrderResponse
// @Failure		404		{object}	OrderResponse
// @Failure		500		{object}	OrderResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			order	body		OrderEditable	true	"Order"
// @Router			/v1/orders/{id} [patch]
func UpdateOrder(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OrderResponse{Error: &e})
		return
	}

	var order models.Order
	err = models.DB.First(&order, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OrderResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, OrderEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OrderResponse{Error: &e})
		return
	}

	var data OrderEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OrderResponse{Error: &e})
		return
	}

	err = models.DB.Model(&order).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OrderResponse{Error: &e})
		return
	}

	apiResource := newOrder(c, order)
	c.JSON(http.StatusOK, OrderResponse{Data: &apiResource})
}

// @Summary		Delete order
// @Description	Deletes an order together with all its allocations
// @Tags			Orders
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/orders/{id} [delete]
func DeleteOrder(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var order models.Order
	err = models.DB.First(&order, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&order).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}
