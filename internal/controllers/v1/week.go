package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsconsole/planning-backend/internal/httputil"
	"github.com/opsconsole/planning-backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterWeekRoutes registers the routes for weeks with
// the RouterGroup that is passed.
func (co Controller) RegisterWeekRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsWeekList)
		r.GET("", GetWeeks)
		r.POST("", CreateWeeks)
	}

	// Week with ID
	{
		r.OPTIONS("/:id", OptionsWeekDetail)
		r.GET("/:id", GetWeek)
		r.PATCH("/:id", UpdateWeek)
		r.DELETE("/:id", DeleteWeek)
	}

	// Planning views of the week
	{
		r.OPTIONS("/:id/grid", OptionsWeekView)
		r.GET("/:id/grid", GetWeekGrid)
		r.OPTIONS("/:id/load", OptionsWeekView)
		r.GET("/:id/load", co.GetWeekLoad)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Weeks
// @Success		204
// @Router			/v1/weeks [options]
func OptionsWeekList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Weeks
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/weeks/{id} [options]
func OptionsWeekDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Week{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create weeks
// @Description	Creates weeks from the list of submitted week data. The response code is the highest response code number that a single week creation would have caused. If it is not equal to 201, at least one week has an error.
// @Tags			Weeks
// @Produce		json
// @Success		201		{object}	WeekCreateResponse
// @Failure		400		{object}	WeekCreateResponse
// @Failure		500		{object}	WeekCreateResponse
// @Param			weeks	body		[]WeekEditable	true	"Weeks"
// @Router			/v1/weeks [post]
func CreateWeeks(c *gin.Context) {
	var weeks []WeekEditable

	err := httputil.BindData(c, &weeks)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeekCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := WeekCreateResponse{}

	for _, editable := range weeks {
		week := editable.model()

		err = models.DB.Create(&week).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newWeek(c, week)
		r.Data = append(r.Data, WeekResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get weeks
// @Description	Returns a list of weeks, latest first
// @Tags			Weeks
// @Produce		json
// @Success		200		{object}	WeekListResponse
// @Failure		400		{object}	WeekListResponse
// @Failure		500		{object}	WeekListResponse
// @Param			year	query		int	false	"Filter by ISO year"
// @Param			number	query		int	false	"Filter by ISO week number"
// @Param			offset	query		uint	false	"The offset of the first week returned. Defaults to 0."
// @Param			limit	query		int	false	"Maximum number of weeks to return. Defaults to 50."
// @Router			/v1/weeks [get]
func GetWeeks(c *gin.Context) {
	var filter WeekQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, WeekListResponse{
			Error: &s,
		})
		return
	}

	// Get the parameters set in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model := filter.model()
	q := models.DB.
		Order("start_date DESC, year DESC, number DESC").
		Where(&model, queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var weeks []models.Week
	err := q.Find(&weeks).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeekListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeekListResponse{Error: &e})
		return
	}

	data := make([]Week, 0)
	for _, week := range weeks {
		data = append(data, newWeek(c, week))
	}

	c.JSON(http.StatusOK, WeekListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get week
// @Description	Returns a specific week
// @Tags			Weeks
// @Produce		json
// @Success		200	{object}	WeekResponse
// @Failure		400	{object}	WeekResponse
// @Failure		404	{object}	WeekResponse
// @Failure		500	{object}	WeekResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/weeks/{id} [get]
func GetWeek(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeekResponse{Error: &e})
		return
	}

	var week models.Week
	err = models.DB.First(&week, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeekResponse{Error: &e})
		return
	}

	data := newWeek(c, week)
	c.JSON(http.StatusOK, WeekResponse{Data: &data})
}

// @Summary		Update week
// @Description	Update a week. Only values to be updated need to be specified.
// @Tags			Weeks
// @Accept			json
// @Produce		json
// @Success		200		{object}	WeekResponse
// @Failure		400		{object}	WeekResponse
// @Failure		404		{object}	WeekResponse
// @Failure		500		{object}	WeekResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			week	body		WeekEditable	true	"Week"
// @Router			/v1/weeks/{id} [patch]
func UpdateWeek(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeekResponse{Error: &e})
		return
	}

	var week models.Week
	err = models.DB.First(&week, "id = ?", uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeekResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, WeekEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeekResponse{Error: &e})
		return
	}

	var data WeekEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeekResponse{Error: &e})
		return
	}

	// The dates are checked against each other, not only the updated one
	update := data.model()
	if !slices.Contains(updateFields, "StartDate") {
		update.StartDate = week.StartDate
	}
	if !slices.Contains(updateFields, "EndDate") {
		update.EndDate = week.EndDate
	}

	err = models.DB.Model(&week).Select("", updateFields...).Updates(update).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeekResponse{Error: &e})
		return
	}

	apiResource := newWeek(c, week)
	c.JSON(http.StatusOK, WeekResponse{Data: &apiResource})
}

// @Summary		Delete week
// @Description	Deletes a week together with all allocations in it
// @Tags			Weeks
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/weeks/{id} [delete]
func DeleteWeek(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var week models.Week
	err = models.DB.First(&week, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&week).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}
