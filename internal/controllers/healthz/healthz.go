package healthz

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/opsconsole/planning-backend/internal/httputil"
	"github.com/opsconsole/planning-backend/internal/models"
	"github.com/rs/zerolog/log"
)

type httpError struct {
	Error string `json:"error" example:"an error occurred on the server during your request"`
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	httpError
// @Router			/healthz [get]
func Get(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err != nil {
		unhealthy(c, err)
		return
	}

	err = sqlDB.PingContext(c.Request.Context())
	if err != nil {
		unhealthy(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func unhealthy(c *gin.Context, err error) {
	log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("health check failed")
	c.JSON(http.StatusInternalServerError, httpError{Error: models.ErrGeneral.Error()})
}
