package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opsconsole/planning-backend/internal/config"
	"github.com/opsconsole/planning-backend/internal/httputil"
	"github.com/opsconsole/planning-backend/internal/models"
	"github.com/opsconsole/planning-backend/internal/planning"
	"github.com/rs/zerolog/log"
)

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Weeks
// @Success		204
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/weeks/{id}/grid [options]
// @Router			/v1/weeks/{id}/load [options]
func OptionsWeekView(c *gin.Context) {
	httputil.OptionsGet(c)
}

// weekGrid loads the week from the URI and returns its grid.
func weekGrid(c *gin.Context, unit string) ([]models.WeekGridRow, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return nil, err
	}

	db := models.DB.WithContext(c.Request.Context())

	var week models.Week
	err = db.First(&week, "id = ?", uri.ID.UUID).Error
	if err != nil {
		return nil, err
	}

	return week.Grid(db, unit)
}

// @Summary		Get week grid
// @Description	Returns the planning of the week for every order that is allocated in it or still has quantity to plan
// @Tags			Weeks
// @Produce		json
// @Success		200		{object}	WeekGridResponse
// @Failure		400		{object}	WeekGridResponse
// @Failure		404		{object}	WeekGridResponse
// @Failure		500		{object}	WeekGridResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			unit	query		string	false	"Glob matched against the production unit of the orders"
// @Router			/v1/weeks/{id}/grid [get]
func GetWeekGrid(c *gin.Context) {
	var query WeekViewQuery
	if err := c.BindQuery(&query); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, WeekGridResponse{Error: &e})
		return
	}

	rows, err := weekGrid(c, query.Unit)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeekGridResponse{Error: &e})
		return
	}

	data := make([]WeekGridRow, 0, len(rows))
	for _, row := range rows {
		data = append(data, newWeekGridRow(row))
	}

	c.JSON(http.StatusOK, WeekGridResponse{Data: data})
}

// @Summary		Get week load
// @Description	Returns the theoretical workload of the week per day and per article against the production capacity
// @Tags			Weeks
// @Produce		json
// @Success		200			{object}	WeekLoadResponse
// @Failure		400			{object}	WeekLoadResponse
// @Failure		404			{object}	WeekLoadResponse
// @Failure		500			{object}	WeekLoadResponse
// @Param			id			path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			unit		query		string	false	"Glob matched against the production unit of the orders"
// @Param			capacity	query		string	false	"Production hours per day. Defaults to the configured capacity"
// @Router			/v1/weeks/{id}/load [get]
func (co Controller) GetWeekLoad(c *gin.Context) {
	var query WeekViewQuery
	if err := c.BindQuery(&query); err != nil {
		e := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, WeekLoadResponse{Error: &e})
		return
	}

	capacity := co.CapacityPerDay
	if query.Capacity != "" {
		var err error
		capacity, err = config.ParseCapacity(query.Capacity)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, WeekLoadResponse{Error: &e})
			return
		}
	}

	rows, err := weekGrid(c, query.Unit)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeekLoadResponse{Error: &e})
		return
	}

	plans := models.DayPlans(rows)
	articleIDs := make([]uuid.UUID, 0, len(plans))
	for _, p := range plans {
		articleIDs = append(articleIDs, p.ArticleID)
	}

	times := planning.NewTimeCache()
	err = times.Fill(c.Request.Context(), models.ArticleTimes{DB: models.DB}, articleIDs)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), WeekLoadResponse{Error: &e})
		return
	}

	analysis := planning.Analyze(plans, times, capacity)
	if len(analysis.MissingTimes) > 0 {
		log.Debug().Int("articles", len(analysis.MissingTimes)).Msg("load analysis without theoretical times")
	}

	data := newWeekLoad(analysis, capacity)
	c.JSON(http.StatusOK, WeekLoadResponse{Data: &data})
}
