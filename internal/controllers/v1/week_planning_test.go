package v1_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opsconsole/planning-backend/internal/config"
	v1 "github.com/opsconsole/planning-backend/internal/controllers/v1"
	"github.com/opsconsole/planning-backend/internal/planning"
	"github.com/opsconsole/planning-backend/internal/types"
	"github.com/opsconsole/planning-backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type weekPlanningFixture struct {
	week       v1.WeekResponse
	timed      v1.ArticleResponse
	untimed    v1.ArticleResponse
	allocated  v1.OrderResponse
	unplanned  v1.OrderResponse
	otherWeeks v1.OrderResponse
}

// createWeekPlanningFixture sets up a week with one allocated order, one
// order without any allocation and one order that is fully planned in
// another week.
func createWeekPlanningFixture(t *testing.T) weekPlanningFixture {
	f := weekPlanningFixture{
		week:    createTestWeek(t, v1.WeekEditable{StartDate: types.NewDate(2026, time.October, 12)}),
		timed:   createTestArticle(t, v1.ArticleEditable{Reference: "HNG-L-40", TimePerUnit: decimal.RequireFromString("0.25")}),
		untimed: createTestArticle(t, v1.ArticleEditable{Reference: "HNG-S-20"}),
	}
	other := createTestWeek(t, v1.WeekEditable{StartDate: types.NewDate(2026, time.October, 19)})

	f.allocated = createTestOrder(t, v1.OrderEditable{Number: "OF-1", ArticleID: f.timed.Data.ID, Unit: "assembly-1", Quantity: 100})
	f.unplanned = createTestOrder(t, v1.OrderEditable{Number: "OF-2", ArticleID: f.untimed.Data.ID, Unit: "assembly-2", Quantity: 50})
	f.otherWeeks = createTestOrder(t, v1.OrderEditable{Number: "OF-3", ArticleID: f.timed.Data.ID, Unit: "paint", Quantity: 10})

	_ = createTestAllocation(t, v1.AllocationEditable{
		OrderID:   f.allocated.Data.ID,
		WeekID:    f.week.Data.ID,
		Objective: 40,
		Planned:   planning.DayVector{8, 8, 8, 8, 8, 0},
		Packaged:  planning.DayVector{5, 0, 0, 0, 0, 0},
	})

	_ = createTestAllocation(t, v1.AllocationEditable{
		OrderID:   f.otherWeeks.Data.ID,
		WeekID:    other.Data.ID,
		Objective: 10,
		Planned:   planning.DayVector{2, 2, 2, 2, 2, 0},
	})

	return f
}

func (suite *TestSuiteStandard) TestWeekGrid() {
	f := createWeekPlanningFixture(suite.T())

	r := test.Request(suite.T(), http.MethodGet, f.week.Data.Links.Grid, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.WeekGridResponse
	test.DecodeResponse(suite.T(), &r, &response)

	// The fully planned order is not part of the grid
	suite.Require().Len(response.Data, 2)

	allocated := response.Data[0]
	assert.Equal(suite.T(), f.allocated.Data.ID, allocated.OrderID)
	assert.Equal(suite.T(), "HNG-L-40", allocated.ArticleReference)
	assert.NotNil(suite.T(), allocated.AllocationID)
	assert.Equal(suite.T(), 40, allocated.Objective)
	assert.Equal(suite.T(), 40, allocated.TotalPlanned)
	assert.Equal(suite.T(), 5, allocated.TotalPackaged)
	assert.Equal(suite.T(), 40, allocated.PlannedAllWeeks)
	assert.Equal(suite.T(), 60, allocated.RemainingToInvoice)

	unplanned := response.Data[1]
	assert.Equal(suite.T(), f.unplanned.Data.ID, unplanned.OrderID)
	assert.Nil(suite.T(), unplanned.AllocationID)
	assert.Equal(suite.T(), planning.DayVector{}, unplanned.Planned)
	assert.Equal(suite.T(), 50, unplanned.RemainingToInvoice)
}

func (suite *TestSuiteStandard) TestWeekGridUnitFilter() {
	f := createWeekPlanningFixture(suite.T())

	tests := []struct {
		name   string
		unit   string
		orders []uuid.UUID
	}{
		{"Exact", "assembly-1", []uuid.UUID{f.allocated.Data.ID}},
		{"Glob", "assembly-*", []uuid.UUID{f.allocated.Data.ID, f.unplanned.Data.ID}},
		{"No match", "paint", []uuid.UUID{}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, f.week.Data.Links.Grid+"?unit="+tt.unit, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.WeekGridResponse
			test.DecodeResponse(t, &r, &response)

			orders := make([]uuid.UUID, 0, len(response.Data))
			for _, row := range response.Data {
				orders = append(orders, row.OrderID)
			}
			assert.Equal(t, tt.orders, orders)
		})
	}
}

func (suite *TestSuiteStandard) TestWeekLoad() {
	f := createWeekPlanningFixture(suite.T())

	r := test.Request(suite.T(), http.MethodGet, f.week.Data.Links.Load+"?capacity=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.WeekLoadResponse
	test.DecodeResponse(suite.T(), &r, &response)
	load := response.Data

	// No quantity on saturday, only the working days are analyzed
	suite.Require().Len(load.PerDay, 5)
	for _, p := range load.PerDay {
		assert.True(suite.T(), decimal.NewFromInt(2).Equal(p.Hours), "hours on %s: %s", p.Day, p.Hours)
		assert.True(suite.T(), decimal.NewFromInt(100).Equal(p.Utilization), "utilization on %s: %s", p.Day, p.Utilization)
		assert.Equal(suite.T(), planning.StatusOverloaded, p.Status)
	}
	assert.Equal(suite.T(), "monday", load.PerDay[0].Day)

	assert.Equal(suite.T(), 5, load.Synthesis.Days)
	assert.True(suite.T(), decimal.NewFromInt(10).Equal(load.Synthesis.TotalHours))
	assert.True(suite.T(), decimal.NewFromInt(10).Equal(load.Synthesis.TotalCapacity))
	assert.True(suite.T(), decimal.NewFromInt(2).Equal(load.Synthesis.PeakHours))
	assert.Equal(suite.T(), "monday", load.Synthesis.PeakDay)

	// The order without allocation in the week is part of the grid, not of the load
	suite.Require().Len(load.Articles, 1)
	assert.Equal(suite.T(), f.timed.Data.ID, load.Articles[0].ArticleID)
	assert.Equal(suite.T(), 40, load.Articles[0].PlannedUnits)
	assert.True(suite.T(), decimal.NewFromInt(10).Equal(load.Articles[0].TotalHours))
	assert.Empty(suite.T(), load.MissingTimes)
}

func (suite *TestSuiteStandard) TestWeekLoadMissingTimes() {
	f := createWeekPlanningFixture(suite.T())

	o := createTestOrder(suite.T(), v1.OrderEditable{ArticleID: f.untimed.Data.ID, Quantity: 20})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{
		OrderID:   o.Data.ID,
		WeekID:    f.week.Data.ID,
		Objective: 10,
		Planned:   planning.DayVector{2, 2, 2, 2, 2, 0},
	})

	r := test.Request(suite.T(), http.MethodGet, f.week.Data.Links.Load+"?capacity=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.WeekLoadResponse
	test.DecodeResponse(suite.T(), &r, &response)
	load := response.Data

	// Units without theoretical time add no hours
	assert.True(suite.T(), decimal.NewFromInt(10).Equal(load.Synthesis.TotalHours))

	suite.Require().Len(load.Articles, 2)
	assert.Equal(suite.T(), f.timed.Data.ID, load.Articles[0].ArticleID)
	assert.Equal(suite.T(), f.untimed.Data.ID, load.Articles[1].ArticleID)
	assert.Equal(suite.T(), 10, load.Articles[1].PlannedUnits)
	assert.True(suite.T(), load.Articles[1].TotalHours.IsZero())

	assert.Equal(suite.T(), []uuid.UUID{f.untimed.Data.ID}, load.MissingTimes)
}

func (suite *TestSuiteStandard) TestWeekLoadCapacity() {
	f := createWeekPlanningFixture(suite.T())

	tests := []struct {
		name        string
		query       string
		capacity    decimal.Decimal
		utilization decimal.Decimal
		status      planning.Status
	}{
		{"Configured", "", config.DefaultCapacityPerDay, decimal.RequireFromString("2").Div(decimal.RequireFromString("7.5")).Mul(decimal.NewFromInt(100)), planning.StatusNominal},
		{"Nominal", "?capacity=2.5", decimal.RequireFromString("2.5"), decimal.NewFromInt(80), planning.StatusNominal},
		{"Warning", "?capacity=2.2", decimal.RequireFromString("2.2"), decimal.NewFromInt(2).Div(decimal.RequireFromString("2.2")).Mul(decimal.NewFromInt(100)), planning.StatusWarning},
		{"Overloaded", "?capacity=1", decimal.NewFromInt(1), decimal.NewFromInt(200), planning.StatusOverloaded},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, f.week.Data.Links.Load+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.WeekLoadResponse
			test.DecodeResponse(t, &r, &response)

			assert.True(t, tt.capacity.Equal(response.Data.Synthesis.CapacityPerDay), "capacity: %s", response.Data.Synthesis.CapacityPerDay)
			assert.True(t, tt.utilization.Equal(response.Data.PerDay[0].Utilization), "utilization: %s", response.Data.PerDay[0].Utilization)
			assert.Equal(t, tt.status, response.Data.PerDay[0].Status)
		})
	}
}

func (suite *TestSuiteStandard) TestWeekLoadSaturday() {
	w := createTestWeek(suite.T(), v1.WeekEditable{})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{
		WeekID:    w.Data.ID,
		Objective: 5,
		Planned:   planning.DayVector{0, 0, 0, 0, 0, 5},
	})

	r := test.Request(suite.T(), http.MethodGet, w.Data.Links.Load, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.WeekLoadResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data.PerDay, 6)
	assert.Equal(suite.T(), "saturday", response.Data.PerDay[5].Day)
	assert.Equal(suite.T(), 6, response.Data.Synthesis.Days)
}

func (suite *TestSuiteStandard) TestWeekPlanningViewsFail() {
	f := createWeekPlanningFixture(suite.T())
	missing := "http://example.com/v1/weeks/" + uuid.NewString()

	tests := []struct {
		name   string
		url    string
		status int
		err    string
	}{
		{"Grid of missing week", missing + "/grid", http.StatusNotFound, "there is no week matching your query"},
		{"Load of missing week", missing + "/load", http.StatusNotFound, "there is no week matching your query"},
		{"Grid with invalid ID", "http://example.com/v1/weeks/not-a-uuid/grid", http.StatusBadRequest, ""},
		{"Load with invalid capacity", f.week.Data.Links.Load + "?capacity=abc", http.StatusBadRequest, config.ErrCapacityInvalid.Error()},
		{"Load with negative capacity", f.week.Data.Links.Load + "?capacity=-1", http.StatusBadRequest, config.ErrCapacityInvalid.Error()},
		{"Load with zero capacity", f.week.Data.Links.Load + "?capacity=0", http.StatusBadRequest, config.ErrCapacityInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.err != "" {
				assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestWeekPlanningViewsDatabaseClosed() {
	w := createTestWeek(suite.T(), v1.WeekEditable{})
	suite.CloseDB()

	for _, url := range []string{w.Data.Links.Grid, w.Data.Links.Load} {
		r := test.Request(suite.T(), http.MethodGet, url, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
	}
}

// TestPlanningLookupsUseRequestContext verifies that the existence checks
// run with the context of the request. With a cancelled request, a missing
// week or order is not reported as 404 but as the cancellation.
func (suite *TestSuiteStandard) TestPlanningLookupsUseRequestContext() {
	co := v1.Controller{CapacityPerDay: config.DefaultCapacityPerDay}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	co.RegisterWeekRoutes(r.Group("/v1/weeks"))
	co.RegisterPlanningRoutes(r.Group("/v1/planning"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"Grid", http.MethodGet, "/v1/weeks/" + uuid.NewString() + "/grid", ""},
		{"Load", http.MethodGet, "/v1/weeks/" + uuid.NewString() + "/load", ""},
		{"Quick plan", http.MethodPost, "/v1/planning/quick-plan", fmt.Sprintf(`{"orderId": %q, "weekId": %q, "quantity": 5}`, uuid.New(), uuid.New())},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequestWithContext(ctx, tt.method, tt.path, strings.NewReader(tt.body))
			require.Nil(t, err)

			recorder := httptest.NewRecorder()
			r.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusBadRequest, recorder.Code, recorder.Body.String())
			assert.Contains(t, test.DecodeError(t, recorder.Body.Bytes()), context.Canceled.Error())
		})
	}
}
