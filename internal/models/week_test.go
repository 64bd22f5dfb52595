package models_test

import (
	"github.com/opsconsole/planning-backend/internal/models"
	"github.com/opsconsole/planning-backend/internal/planning"
	"github.com/opsconsole/planning-backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestWeekDerivesNumberAndEndDate() {
	week := suite.createTestWeek(models.Week{StartDate: types.NewDate(2026, 10, 12)})

	suite.Assert().Equal(2026, week.Year)
	suite.Assert().Equal(42, week.Number)
	suite.Assert().Equal(types.NewDate(2026, 10, 17), week.EndDate)
}

func (suite *TestSuiteStandard) TestWeekKeepsExplicitValues() {
	week := suite.createTestWeek(models.Week{
		Year:      2027,
		Number:    1,
		StartDate: types.NewDate(2027, 1, 4),
		EndDate:   types.NewDate(2027, 1, 8),
	})

	suite.Assert().Equal(1, week.Number)
	suite.Assert().Equal(types.NewDate(2027, 1, 8), week.EndDate)
}

func (suite *TestSuiteStandard) TestWeekNumberInvalid() {
	err := models.DB.Create(&models.Week{Year: 2026, Number: 54}).Error
	suite.Assert().ErrorIs(err, models.ErrWeekNumberInvalid)
}

func (suite *TestSuiteStandard) TestWeekDatesInvalid() {
	err := models.DB.Create(&models.Week{
		StartDate: types.NewDate(2026, 10, 12),
		EndDate:   types.NewDate(2026, 10, 10),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrWeekDatesInvalid)
}

func (suite *TestSuiteStandard) TestWeekNotUnique() {
	_ = suite.createTestWeek(models.Week{})

	err := models.DB.Create(&models.Week{StartDate: types.NewDate(2026, 10, 12)}).Error
	suite.Assert().ErrorIs(err, models.ErrWeekNotUnique)
}

func (suite *TestSuiteStandard) TestWeekUpdateNumberInvalid() {
	week := suite.createTestWeek(models.Week{})

	err := models.DB.Model(&week).Select("Number").Updates(models.Week{Number: 60}).Error
	suite.Assert().ErrorIs(err, models.ErrWeekNumberInvalid)
}

func (suite *TestSuiteStandard) TestWeekGrid() {
	week := suite.createTestWeek(models.Week{})
	other := suite.createTestWeek(models.Week{StartDate: types.NewDate(2026, 10, 19)})

	article := suite.createTestArticle(models.Article{TimePerUnit: decimal.NewFromFloat(0.25)})

	// Allocated this week
	allocated := suite.createTestOrder(models.Order{Number: "A-001", ArticleID: article.ID, Unit: "assembly-1", Quantity: 100})
	a := models.Allocation{OrderID: allocated.ID, WeekID: week.ID, Objective: 40}
	a.SetPlanned(planning.DayVector{8, 8, 8, 8, 8, 0})
	a.SetPackaged(planning.DayVector{5, 0, 0, 0, 0, 0})
	a = suite.createTestAllocation(a)

	// Fully planned in another week, not shown
	done := suite.createTestOrder(models.Order{Number: "A-002", ArticleID: article.ID, Unit: "assembly-1", Quantity: 10})
	b := models.Allocation{OrderID: done.ID, WeekID: other.ID, Objective: 10}
	b.SetPlanned(planning.DayVector{2, 2, 2, 2, 2, 0})
	_ = suite.createTestAllocation(b)

	// Not allocated, quantity left
	open := suite.createTestOrder(models.Order{Number: "A-003", ArticleID: article.ID, Unit: "assembly-1", Quantity: 25})

	// Other unit
	_ = suite.createTestOrder(models.Order{Number: "B-001", ArticleID: article.ID, Unit: "paint", Quantity: 5})

	rows, err := week.Grid(models.DB, "assembly-*")
	suite.Require().Nil(err)
	suite.Require().Len(rows, 2)

	suite.Assert().Equal(allocated.ID, rows[0].Order.ID)
	suite.Assert().Equal(article.ID, rows[0].Article.ID)
	suite.Require().NotNil(rows[0].AllocationID)
	suite.Assert().Equal(a.ID, *rows[0].AllocationID)
	suite.Assert().Equal(40, rows[0].Objective)
	suite.Assert().Equal(40, rows[0].TotalPlanned)
	suite.Assert().Equal(5, rows[0].TotalPackaged)
	suite.Assert().Equal(40, rows[0].PlannedAllWeeks)
	suite.Assert().Equal(60, rows[0].RemainingToInvoice)

	suite.Assert().Equal(open.ID, rows[1].Order.ID)
	suite.Assert().Nil(rows[1].AllocationID)
	suite.Assert().Equal(0, rows[1].TotalPlanned)
	suite.Assert().Equal(25, rows[1].RemainingToInvoice)

	all, err := week.Grid(models.DB, "")
	suite.Require().Nil(err)
	suite.Assert().Len(all, 3)

	// Only the order allocated in the week is analyzed
	plans := models.DayPlans(rows)
	suite.Require().Len(plans, 1)
	suite.Assert().Equal(allocated.ID, plans[0].OrderID)
	suite.Assert().Equal(article.ID, plans[0].ArticleID)
	suite.Assert().Equal(planning.DayVector{8, 8, 8, 8, 8, 0}, plans[0].Planned)
}

func (suite *TestSuiteStandard) TestWeekGridDBError() {
	week := suite.createTestWeek(models.Week{})
	suite.CloseDB()

	_, err := week.Grid(models.DB, "")
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
