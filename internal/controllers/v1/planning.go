package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opsconsole/planning-backend/internal/httputil"
	"github.com/opsconsole/planning-backend/internal/models"
	"github.com/opsconsole/planning-backend/internal/planning"
	"golang.org/x/exp/maps"
)

// RegisterPlanningRoutes registers the routes for the planning
// operations with the RouterGroup that is passed.
func (co Controller) RegisterPlanningRoutes(r *gin.RouterGroup) {
	// Previews
	{
		r.OPTIONS("/split", OptionsPlanning)
		r.POST("/split", Split)
		r.OPTIONS("/distribute", OptionsPlanning)
		r.POST("/distribute", Distribute)
	}

	// Writes
	{
		r.OPTIONS("/quick-plan", OptionsPlanning)
		r.POST("/quick-plan", co.QuickPlan)
		r.OPTIONS("/advanced-plan", OptionsPlanning)
		r.POST("/advanced-plan", co.AdvancedPlan)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Planning
// @Success		204
// @Router			/v1/planning/split [options]
// @Router			/v1/planning/distribute [options]
// @Router			/v1/planning/quick-plan [options]
// @Router			/v1/planning/advanced-plan [options]
func OptionsPlanning(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Split a quantity
// @Description	Spreads a quantity over Monday to Friday. Every weekday gets the integer fifth, the first days one more unit each for the remainder. Negative or fractional quantities give 0 on every day.
// @Tags			Planning
// @Accept			json
// @Produce		json
// @Success		200		{object}	SplitResponse
// @Failure		400		{object}	SplitResponse
// @Param			split	body		SplitRequest	true	"Quantity"
// @Router			/v1/planning/split [post]
func Split(c *gin.Context) {
	var data SplitRequest
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SplitResponse{Error: &e})
		return
	}

	days := planning.SplitFloat(data.Quantity)
	c.JSON(http.StatusOK, SplitResponse{Data: &SplitResult{
		Days:  days,
		Total: days.Sum(),
	}})
}

// @Summary		Distribute a total
// @Description	Computes the planned quantity of each week of an order for a distribution policy. Nothing is written.
// @Tags			Planning
// @Accept			json
// @Produce		json
// @Success		200			{object}	DistributeResponse
// @Failure		400			{object}	DistributeResponse
// @Param			distribute	body		DistributeRequest	true	"Policy and weeks"
// @Router			/v1/planning/distribute [post]
func Distribute(c *gin.Context) {
	var data DistributeRequest
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DistributeResponse{Error: &e})
		return
	}

	policy, err := planning.ParsePolicy(data.Policy)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, DistributeResponse{Error: &e})
		return
	}

	d, err := planning.Distribute(policy, data.buckets(), data.Total)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, DistributeResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, DistributeResponse{Data: &DistributeResult{
		Policy:  d.Policy,
		Planned: d.Planned,
		Total:   d.Total,
	}})
}

// @Summary		Quick plan
// @Description	Adds a quantity to the allocation of an order in a week. The quantity is added to the objective and its split to the planned days. The allocation is created if it does not exist yet. Sending the same request twice adds the quantity twice.
// @Tags			Planning
// @Accept			json
// @Produce		json
// @Success		200		{object}	QuickPlanResponse	"The existing allocation was updated"
// @Success		201		{object}	QuickPlanResponse	"A new allocation was created"
// @Failure		400		{object}	QuickPlanResponse
// @Failure		404		{object}	QuickPlanResponse
// @Failure		500		{object}	QuickPlanResponse
// @Param			plan	body		QuickPlanRequest	true	"Order, week and quantity"
// @Router			/v1/planning/quick-plan [post]
func (co Controller) QuickPlan(c *gin.Context) {
	var data QuickPlanRequest
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuickPlanResponse{Error: &e})
		return
	}

	err = checkOrder(c.Request.Context(), data.OrderID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuickPlanResponse{Error: &e})
		return
	}

	err = checkWeeks(c.Request.Context(), []uuid.UUID{data.WeekID})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuickPlanResponse{Error: &e})
		return
	}

	result, err := co.orchestrator().QuickPlan(c.Request.Context(), data.OrderID, data.WeekID, data.Quantity)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuickPlanResponse{Error: &e})
		return
	}

	code := http.StatusOK
	if result.Op == planning.OpCreate {
		code = http.StatusCreated
	}

	r := newPlanResult(c, result)
	c.JSON(code, QuickPlanResponse{Data: &r})
}

// @Summary		Advanced plan
// @Description	Sets objective and planned quantity for several weeks of an order. Existing allocations are overwritten, weeks with neither objective nor planned quantity are skipped. Weeks are written in request order. If a write fails, the response has the status of the failure and contains the weeks written before it. These writes are not reverted.
// @Tags			Planning
// @Accept			json
// @Produce		json
// @Success		200		{object}	AdvancedPlanResponse
// @Failure		400		{object}	AdvancedPlanResponse
// @Failure		404		{object}	AdvancedPlanResponse
// @Failure		500		{object}	AdvancedPlanResponse
// @Param			plan	body		AdvancedPlanRequest	true	"Order and targets per week"
// @Router			/v1/planning/advanced-plan [post]
func (co Controller) AdvancedPlan(c *gin.Context) {
	var data AdvancedPlanRequest
	err := httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AdvancedPlanResponse{Error: &e})
		return
	}

	if len(data.Weeks) == 0 {
		e := errNoWeeks.Error()
		c.JSON(http.StatusBadRequest, AdvancedPlanResponse{Error: &e})
		return
	}

	err = checkOrder(c.Request.Context(), data.OrderID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AdvancedPlanResponse{Error: &e})
		return
	}

	weekIDs := make([]uuid.UUID, 0, len(data.Weeks))
	for _, w := range data.Weeks {
		weekIDs = append(weekIDs, w.WeekID)
	}

	err = checkWeeks(c.Request.Context(), weekIDs)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AdvancedPlanResponse{Error: &e})
		return
	}

	results, err := co.orchestrator().AdvancedPlan(c.Request.Context(), data.OrderID, data.rows())

	// Results are returned in any case, on errors they show
	// which weeks have already been written
	planned := make([]PlanResult, 0, len(results))
	for _, result := range results {
		planned = append(planned, newPlanResult(c, result))
	}

	if err != nil {
		e := err.Error()
		c.JSON(status(err), AdvancedPlanResponse{Error: &e, Data: planned})
		return
	}

	c.JSON(http.StatusOK, AdvancedPlanResponse{Data: planned})
}

func (co Controller) orchestrator() *planning.Orchestrator {
	o := planning.NewOrchestrator(models.NewAllocationStore(models.DB))
	o.OnWrite = co.OnWrite

	return o
}

// checkOrder verifies that the order exists.
func checkOrder(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errOrderIDRequired
	}

	return models.DB.WithContext(ctx).First(&models.Order{}, "id = ?", id).Error
}

// checkWeeks verifies that all weeks exist.
func checkWeeks(ctx context.Context, ids []uuid.UUID) error {
	unique := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return errWeekIDRequired
		}
		unique[id] = struct{}{}
	}

	var count int64
	err := models.DB.WithContext(ctx).Model(&models.Week{}).Where("id IN ?", maps.Keys(unique)).Count(&count).Error
	if err != nil {
		return err
	}

	if count != int64(len(unique)) {
		return fmt.Errorf("%w week matching your query", models.ErrResourceNotFound)
	}

	return nil
}
