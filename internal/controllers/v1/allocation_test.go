package v1_test

import (
	"fmt"
	"math/rand"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	v1 "github.com/opsconsole/planning-backend/internal/controllers/v1"
	"github.com/opsconsole/planning-backend/internal/models"
	"github.com/opsconsole/planning-backend/internal/planning"
	"github.com/opsconsole/planning-backend/internal/types"
	"github.com/opsconsole/planning-backend/test"
	"github.com/stretchr/testify/assert"
)

func createTestAllocation(t *testing.T, a v1.AllocationEditable, expectedStatus ...int) v1.AllocationResponse {
	if a.OrderID == uuid.Nil {
		a.OrderID = createTestOrder(t, v1.OrderEditable{Quantity: 100}).Data.ID
	}

	// Weeks without dates, the year only keeps them apart
	if a.WeekID == uuid.Nil {
		a.WeekID = createTestWeek(t, v1.WeekEditable{Year: 3000 + rand.Intn(1_000_000), Number: 1}).Data.ID
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.AllocationEditable{a}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/allocations", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var allocation v1.AllocationCreateResponse
	test.DecodeResponse(t, &r, &allocation)

	if r.Code == http.StatusCreated {
		return allocation.Data[0]
	}

	return v1.AllocationResponse{}
}

func (suite *TestSuiteStandard) TestAllocationsCreate() {
	o := createTestOrder(suite.T(), v1.OrderEditable{Quantity: 100})
	w := createTestWeek(suite.T(), v1.WeekEditable{})

	a := createTestAllocation(suite.T(), v1.AllocationEditable{
		OrderID:   o.Data.ID,
		WeekID:    w.Data.ID,
		Objective: 40,
		Planned:   planning.DayVector{8, 8, 8, 8, 8, 0},
		Packaged:  planning.DayVector{5, 0, 0, 0, 0, 0},
		StartDate: types.NewDate(2026, time.October, 13),
		LotLabel:  " L-2642-01 ",
	})

	assert.Equal(suite.T(), 40, a.Data.PlannedTotal)
	assert.Equal(suite.T(), 5, a.Data.PackagedTotal)
	assert.Equal(suite.T(), planning.DayVector{8, 8, 8, 8, 8, 0}, a.Data.Planned)
	assert.Equal(suite.T(), "L-2642-01", a.Data.LotLabel)
	assert.Equal(suite.T(), "2026-10-13", a.Data.StartDate.String())
	assert.Equal(suite.T(), o.Data.Links.Self, a.Data.Links.Order)
	assert.Equal(suite.T(), w.Data.Links.Self, a.Data.Links.Week)
}

func (suite *TestSuiteStandard) TestAllocationsCreateFails() {
	existing := createTestAllocation(suite.T(), v1.AllocationEditable{Objective: 10})

	tests := []struct {
		name       string
		allocation v1.AllocationEditable
		status     int
		err        string
	}{
		{"Same order and week", v1.AllocationEditable{OrderID: existing.Data.OrderID, WeekID: existing.Data.WeekID}, http.StatusBadRequest, models.ErrAllocationNotUnique.Error()},
		{"Negative objective", v1.AllocationEditable{OrderID: existing.Data.OrderID, WeekID: createTestWeek(suite.T(), v1.WeekEditable{}).Data.ID, Objective: -1}, http.StatusBadRequest, models.ErrAllocationQuantityNegative.Error()},
		{"Negative planned day", v1.AllocationEditable{OrderID: existing.Data.OrderID, WeekID: existing.Data.WeekID, Planned: planning.DayVector{0, 0, -2}}, http.StatusBadRequest, models.ErrAllocationQuantityNegative.Error()},
		{"Order does not exist", v1.AllocationEditable{OrderID: uuid.New(), WeekID: existing.Data.WeekID}, http.StatusBadRequest, models.ErrReferenceNotFound.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/allocations", []v1.AllocationEditable{tt.allocation})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.AllocationCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.err, *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestAllocationsGetFilter() {
	o1 := createTestOrder(suite.T(), v1.OrderEditable{Quantity: 100})
	o2 := createTestOrder(suite.T(), v1.OrderEditable{Quantity: 100})
	w1 := createTestWeek(suite.T(), v1.WeekEditable{StartDate: types.NewDate(2026, time.October, 12)})
	w2 := createTestWeek(suite.T(), v1.WeekEditable{StartDate: types.NewDate(2026, time.October, 19)})

	_ = createTestAllocation(suite.T(), v1.AllocationEditable{OrderID: o1.Data.ID, WeekID: w1.Data.ID, Objective: 10})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{OrderID: o1.Data.ID, WeekID: w2.Data.ID, Objective: 20})
	_ = createTestAllocation(suite.T(), v1.AllocationEditable{OrderID: o2.Data.ID, WeekID: w2.Data.ID, Objective: 30})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Order 1", fmt.Sprintf("order=%s", o1.Data.ID), 2},
		{"Order 2", fmt.Sprintf("order=%s", o2.Data.ID), 1},
		{"Week 2", fmt.Sprintf("week=%s", w2.Data.ID), 2},
		{"Order and week", fmt.Sprintf("order=%s&week=%s", o1.Data.ID, w1.Data.ID), 1},
		{"Order not existing", fmt.Sprintf("order=%s", uuid.New()), 0},
		{"Offset 1", "offset=1", 2},
		{"Limit 1", "limit=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/allocations?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.AllocationListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/allocations?week=NotAUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAllocationsGetSingle() {
	a := createTestAllocation(suite.T(), v1.AllocationEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Allocation", a.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No Allocation with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH No Allocation with this ID", uuid.New().String(), http.StatusNotFound, http.MethodPatch},
		{"OPTIONS No Allocation with this ID", uuid.New().String(), http.StatusNotFound, http.MethodOptions},
		{"DELETE is not allowed", a.Data.ID.String(), http.StatusMethodNotAllowed, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/allocations/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAllocationsOptions() {
	a := createTestAllocation(suite.T(), v1.AllocationEditable{})

	r := test.Request(suite.T(), http.MethodOptions, a.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestAllocationsUpdate() {
	a := createTestAllocation(suite.T(), v1.AllocationEditable{
		Objective: 40,
		Planned:   planning.DayVector{8, 8, 8, 8, 8, 0},
		LotLabel:  "L-1",
	})

	r := test.Request(suite.T(), http.MethodPatch, a.Data.Links.Self, map[string]any{
		"packaged": []int{8, 6, 0, 0, 0, 0},
		"comment":  "Short on paint",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), planning.DayVector{8, 6, 0, 0, 0, 0}, updated.Data.Packaged)
	assert.Equal(suite.T(), 14, updated.Data.PackagedTotal)
	assert.Equal(suite.T(), planning.DayVector{8, 8, 8, 8, 8, 0}, updated.Data.Planned)
	assert.Equal(suite.T(), 40, updated.Data.Objective)
	assert.Equal(suite.T(), "L-1", updated.Data.LotLabel)
	assert.Equal(suite.T(), "Short on paint", updated.Data.Comment)

	// Day vectors are replaced as a whole
	r = test.Request(suite.T(), http.MethodPatch, a.Data.Links.Self, map[string]any{
		"planned": []int{10, 10},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), planning.DayVector{10, 10, 0, 0, 0, 0}, updated.Data.Planned)
	assert.Equal(suite.T(), planning.DayVector{8, 6, 0, 0, 0, 0}, updated.Data.Packaged)
}

func (suite *TestSuiteStandard) TestAllocationsUpdateFails() {
	a := createTestAllocation(suite.T(), v1.AllocationEditable{Objective: 10})
	other := createTestAllocation(suite.T(), v1.AllocationEditable{OrderID: a.Data.OrderID, Objective: 10})

	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{"Negative packaged", map[string]any{"packaged": []int{-1}}, http.StatusBadRequest, models.ErrAllocationQuantityNegative.Error()},
		{"Negative objective", map[string]any{"objective": -10}, http.StatusBadRequest, models.ErrAllocationQuantityNegative.Error()},
		{"Week already planned", map[string]any{"weekId": other.Data.WeekID}, http.StatusBadRequest, models.ErrAllocationNotUnique.Error()},
		{"Empty body", "", http.StatusBadRequest, "the request body must not be empty"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, a.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
			assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
		})
	}
}
