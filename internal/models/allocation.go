package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/opsconsole/planning-backend/internal/planning"
	"github.com/opsconsole/planning-backend/internal/types"
	"gorm.io/gorm"
)

// Allocation is the planning of one order in one week: the weekly
// objective and the planned and packaged quantity per day.
//
// Allocations are never deleted by the planning endpoints. They are
// removed together with their order or week.
type Allocation struct {
	DefaultModel
	Order     Order     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	OrderID   uuid.UUID `gorm:"uniqueIndex:allocation_order_week"`
	Week      Week      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	WeekID    uuid.UUID `gorm:"uniqueIndex:allocation_order_week;index"`
	Objective int       // Quantity to produce and invoice in the week

	MondayPlanned    int
	TuesdayPlanned   int
	WednesdayPlanned int
	ThursdayPlanned  int
	FridayPlanned    int
	SaturdayPlanned  int

	MondayPackaged    int
	TuesdayPackaged   int
	WednesdayPackaged int
	ThursdayPackaged  int
	FridayPackaged    int
	SaturdayPackaged  int

	StartDate types.Date // Production start, if known
	LotLabel  string
	Comment   string
}

// PlannedFields and PackagedFields are the field names of the day
// quantities, Monday first.
var (
	PlannedFields  = []string{"MondayPlanned", "TuesdayPlanned", "WednesdayPlanned", "ThursdayPlanned", "FridayPlanned", "SaturdayPlanned"}
	PackagedFields = []string{"MondayPackaged", "TuesdayPackaged", "WednesdayPackaged", "ThursdayPackaged", "FridayPackaged", "SaturdayPackaged"}
)

// plannedColumns are the fields written by the planning endpoints.
// Packaged quantities are never part of it.
var plannedColumns = append([]string{"Objective"}, PlannedFields...)

func (a *Allocation) BeforeSave(tx *gorm.DB) error {
	a.LotLabel = strings.TrimSpace(a.LotLabel)
	a.Comment = strings.TrimSpace(a.Comment)

	switch dest := tx.Statement.Dest.(type) {
	case *Allocation:
		return dest.checkQuantities()
	case Allocation:
		return dest.checkQuantities()
	}

	return nil
}

func (a Allocation) checkQuantities() error {
	if a.Objective < 0 {
		return ErrAllocationQuantityNegative
	}

	planned, packaged := a.Planned(), a.Packaged()
	for d := range planned {
		if planned[d] < 0 || packaged[d] < 0 {
			return ErrAllocationQuantityNegative
		}
	}

	return nil
}

// Planned returns the planned quantities, Monday first.
func (a Allocation) Planned() planning.DayVector {
	return planning.DayVector{a.MondayPlanned, a.TuesdayPlanned, a.WednesdayPlanned, a.ThursdayPlanned, a.FridayPlanned, a.SaturdayPlanned}
}

// Packaged returns the packaged quantities, Monday first.
func (a Allocation) Packaged() planning.DayVector {
	return planning.DayVector{a.MondayPackaged, a.TuesdayPackaged, a.WednesdayPackaged, a.ThursdayPackaged, a.FridayPackaged, a.SaturdayPackaged}
}

func (a *Allocation) SetPlanned(v planning.DayVector) {
	a.MondayPlanned, a.TuesdayPlanned, a.WednesdayPlanned = v[planning.Monday], v[planning.Tuesday], v[planning.Wednesday]
	a.ThursdayPlanned, a.FridayPlanned, a.SaturdayPlanned = v[planning.Thursday], v[planning.Friday], v[planning.Saturday]
}

func (a *Allocation) SetPackaged(v planning.DayVector) {
	a.MondayPackaged, a.TuesdayPackaged, a.WednesdayPackaged = v[planning.Monday], v[planning.Tuesday], v[planning.Wednesday]
	a.ThursdayPackaged, a.FridayPackaged, a.SaturdayPackaged = v[planning.Thursday], v[planning.Friday], v[planning.Saturday]
}

// Record converts the allocation for the planning core.
func (a Allocation) Record() planning.Record {
	return planning.Record{
		ID:        a.ID,
		OrderID:   a.OrderID,
		WeekID:    a.WeekID,
		Objective: a.Objective,
		Planned:   a.Planned(),
		Packaged:  a.Packaged(),
	}
}
