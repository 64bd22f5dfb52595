package models

import (
	"github.com/google/uuid"
	"github.com/opsconsole/planning-backend/internal/planning"
	"github.com/opsconsole/planning-backend/internal/types"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// Week is a production week. Allocations are planned per order and week.
type Week struct {
	DefaultModel
	Year      int        `gorm:"uniqueIndex:week_year_number"`
	Number    int        `gorm:"uniqueIndex:week_year_number"` // ISO 8601 week number
	StartDate types.Date // Monday of the week
	EndDate   types.Date
}

func (w *Week) BeforeSave(tx *gorm.DB) error {
	switch dest := tx.Statement.Dest.(type) {
	case *Week:
		return dest.checkIntegrity()
	case Week:
		return dest.checkIntegrity()
	}

	return nil
}

func (w Week) checkIntegrity() error {
	if w.Number != 0 && (w.Number < 1 || w.Number > 53) {
		return ErrWeekNumberInvalid
	}

	if !w.StartDate.IsZero() && !w.EndDate.IsZero() && w.EndDate.Before(w.StartDate) {
		return ErrWeekDatesInvalid
	}

	return nil
}

// BeforeCreate fills the number and year from the start date when they
// are not set and defaults the end date to the Saturday of the week.
func (w *Week) BeforeCreate(tx *gorm.DB) error {
	_ = w.DefaultModel.BeforeCreate(tx)

	if w.StartDate.IsZero() {
		return nil
	}

	if w.Number == 0 {
		w.Year, w.Number = w.StartDate.ISOWeek()
	}

	if w.EndDate.IsZero() {
		w.EndDate = w.StartDate.AddDays(5)
	}

	return nil
}

// WeekGridRow is the planning of one order in a week.
type WeekGridRow struct {
	Order         Order
	Article       Article
	AllocationID  *uuid.UUID // nil when the order has no allocation for the week yet
	Objective     int
	Planned       planning.DayVector
	Packaged      planning.DayVector
	TotalPlanned  int
	TotalPackaged int

	// Planned quantity of the order over all weeks
	PlannedAllWeeks int

	// Order quantity that is not planned in any week yet. Negative when
	// the order is planned beyond its quantity.
	RemainingToInvoice int
}

// Grid returns the planning of the week for every order that is either
// allocated in the week or still has quantity left to plan.
//
// unitPattern is a glob matched against the production unit of the
// orders, an empty pattern matches all orders.
func (w Week) Grid(db *gorm.DB, unitPattern string) ([]WeekGridRow, error) {
	var orders []Order
	err := db.Preload("Article").Order("orders.number ASC").Find(&orders).Error
	if err != nil {
		return nil, err
	}

	var allocations []Allocation
	err = db.Where(&Allocation{WeekID: w.ID}).Find(&allocations).Error
	if err != nil {
		return nil, err
	}

	byOrder := make(map[uuid.UUID]Allocation, len(allocations))
	for _, a := range allocations {
		byOrder[a.OrderID] = a
	}

	var totals []struct {
		OrderID uuid.UUID
		Planned int
	}
	err = db.Model(&Allocation{}).
		Select("order_id, SUM(monday_planned + tuesday_planned + wednesday_planned + thursday_planned + friday_planned + saturday_planned) AS planned").
		Group("order_id").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	plannedByOrder := make(map[uuid.UUID]int, len(totals))
	for _, t := range totals {
		plannedByOrder[t.OrderID] = t.Planned
	}

	rows := make([]WeekGridRow, 0, len(orders))
	for _, o := range orders {
		if unitPattern != "" && !glob.Glob(unitPattern, o.Unit) {
			continue
		}

		row := WeekGridRow{
			Order:           o,
			Article:         o.Article,
			PlannedAllWeeks: plannedByOrder[o.ID],
		}
		row.RemainingToInvoice = o.Quantity - row.PlannedAllWeeks

		a, allocated := byOrder[o.ID]
		if !allocated && row.RemainingToInvoice <= 0 {
			continue
		}

		if allocated {
			id := a.ID
			row.AllocationID = &id
			row.Objective = a.Objective
			row.Planned = a.Planned()
			row.Packaged = a.Packaged()
			row.TotalPlanned = row.Planned.Sum()
			row.TotalPackaged = row.Packaged.Sum()
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// DayPlans returns the planned quantities of the grid rows allocated in
// the week for load analysis. Rows of orders without an allocation are
// left out.
func DayPlans(rows []WeekGridRow) []planning.DayPlan {
	plans := make([]planning.DayPlan, 0, len(rows))
	for _, r := range rows {
		if r.AllocationID == nil {
			continue
		}

		plans = append(plans, planning.DayPlan{
			OrderID:   r.Order.ID,
			ArticleID: r.Order.ArticleID,
			Planned:   r.Planned,
		})
	}
	return plans
}
