package v1

import (
	"github.com/google/uuid"
	"github.com/opsconsole/planning-backend/internal/models"
	"github.com/opsconsole/planning-backend/internal/planning"
	"github.com/shopspring/decimal"
)

// WeekGridRow is the planning of one order in a week.
type WeekGridRow struct {
	OrderID            uuid.UUID          `json:"orderId" example:"2e2f5a47-4b62-4e7a-9e43-0bd0a1c5d7e8"`      // ID of the order
	OrderNumber        string             `json:"orderNumber" example:"OF-2026-118"`                           // Number of the order
	Unit               string             `json:"unit" example:"assembly-1"`                                   // Production unit of the order
	ArticleID          uuid.UUID          `json:"articleId" example:"51c8b5f4-6b59-44a8-a0b4-5e0f6f7a0a1c"`    // ID of the article
	ArticleReference   string             `json:"articleReference" example:"HNG-L-40"`                         // Reference of the article
	OrderQuantity      int                `json:"orderQuantity" example:"120"`                                 // Total quantity of the order
	AllocationID       *uuid.UUID         `json:"allocationId" example:"c5a3f0a0-3b0e-4a4e-9a7d-0f1f6f0ec6a1"` // ID of the allocation, null if the order is not allocated in the week
	Objective          int                `json:"objective" example:"40"`                                      // Quantity to produce and invoice in the week
	Planned            planning.DayVector `json:"planned" example:"8,8,8,8,8,0"`                               // Planned quantity per day, Monday to Saturday
	Packaged           planning.DayVector `json:"packaged" example:"5,0,0,0,0,0"`                              // Packaged quantity per day, Monday to Saturday
	TotalPlanned       int                `json:"totalPlanned" example:"40"`                                   // Sum of the planned quantities
	TotalPackaged      int                `json:"totalPackaged" example:"5"`                                   // Sum of the packaged quantities
	PlannedAllWeeks    int                `json:"plannedAllWeeks" example:"80"`                                // Planned quantity of the order over all weeks
	RemainingToInvoice int                `json:"remainingToInvoice" example:"40"`                             // Order quantity not yet planned in any week. Negative when over-planned
}

func newWeekGridRow(row models.WeekGridRow) WeekGridRow {
	return WeekGridRow{
		OrderID:            row.Order.ID,
		OrderNumber:        row.Order.Number,
		Unit:               row.Order.Unit,
		ArticleID:          row.Article.ID,
		ArticleReference:   row.Article.Reference,
		OrderQuantity:      row.Order.Quantity,
		AllocationID:       row.AllocationID,
		Objective:          row.Objective,
		Planned:            row.Planned,
		Packaged:           row.Packaged,
		TotalPlanned:       row.TotalPlanned,
		TotalPackaged:      row.TotalPackaged,
		PlannedAllWeeks:    row.PlannedAllWeeks,
		RemainingToInvoice: row.RemainingToInvoice,
	}
}

type WeekGridResponse struct {
	Data  []WeekGridRow `json:"data"`                                                          // Grid rows, ordered by order number
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// WeekViewQuery filters the orders of the planning views.
type WeekViewQuery struct {
	Unit     string `form:"unit" example:"assembly-*"` // Glob matched against the production unit of the orders
	Capacity string `form:"capacity" example:"7.5"`    // Production hours per day. Only used for the load
}

type LoadPoint struct {
	Day         string          `json:"day" example:"monday"`        // Day of the week
	Hours       decimal.Decimal `json:"hours" example:"6.25"`        // Theoretical hours planned on the day
	Utilization decimal.Decimal `json:"utilization" example:"83.33"` // Hours in percent of the capacity per day
	Status      planning.Status `json:"status" example:"NOMINAL"`    // NOMINAL, WARNING above 85% or OVERLOADED from 100%
}

type ArticleLoad struct {
	ArticleID    uuid.UUID       `json:"articleId" example:"51c8b5f4-6b59-44a8-a0b4-5e0f6f7a0a1c"` // ID of the article
	PlannedUnits int             `json:"plannedUnits" example:"40"`                                // Units planned over the analyzed days
	TimePerUnit  decimal.Decimal `json:"timePerUnit" example:"0.25"`                               // Theoretical hours per unit
	TotalHours   decimal.Decimal `json:"totalHours" example:"10"`                                  // Theoretical hours of all planned units
}

type LoadSynthesis struct {
	Days               int             `json:"days" example:"5"`                   // Number of analyzed days
	CapacityPerDay     decimal.Decimal `json:"capacityPerDay" example:"7.5"`       // Production hours per day
	TotalHours         decimal.Decimal `json:"totalHours" example:"31.25"`         // Theoretical hours of the week
	TotalCapacity      decimal.Decimal `json:"totalCapacity" example:"37.5"`       // Capacity of all analyzed days
	AverageUtilization decimal.Decimal `json:"averageUtilization" example:"83.33"` // Total hours in percent of the total capacity
	PeakHours          decimal.Decimal `json:"peakHours" example:"7.5"`            // Hours of the day with the highest load
	PeakDay            string          `json:"peakDay" example:"wednesday"`        // Day with the highest load
}

type WeekLoad struct {
	PerDay       []LoadPoint   `json:"perDay"`       // Load per analyzed day
	Synthesis    LoadSynthesis `json:"synthesis"`    // Totals of the week
	Articles     []ArticleLoad `json:"articles"`     // Load per article, highest first
	MissingTimes []uuid.UUID   `json:"missingTimes"` // Articles without theoretical time. Their hours count as zero
}

func newWeekLoad(a planning.Analysis, capacity decimal.Decimal) WeekLoad {
	load := WeekLoad{
		PerDay:       make([]LoadPoint, 0, len(a.PerDay)),
		Articles:     make([]ArticleLoad, 0, len(a.Articles)),
		MissingTimes: make([]uuid.UUID, 0, len(a.MissingTimes)),
		Synthesis: LoadSynthesis{
			Days:               a.Synthesis.Days,
			CapacityPerDay:     capacity,
			TotalHours:         a.Synthesis.TotalHours,
			TotalCapacity:      a.Synthesis.TotalCapacity,
			AverageUtilization: a.Synthesis.AverageUtilization,
			PeakHours:          a.Synthesis.PeakHours,
			PeakDay:            a.Synthesis.PeakDay.String(),
		},
	}

	for _, p := range a.PerDay {
		load.PerDay = append(load.PerDay, LoadPoint{
			Day:         p.Day.String(),
			Hours:       p.Hours,
			Utilization: p.Utilization,
			Status:      p.Status,
		})
	}

	for _, al := range a.Articles {
		load.Articles = append(load.Articles, ArticleLoad(al))
	}

	load.MissingTimes = append(load.MissingTimes, a.MissingTimes...)

	return load
}

type WeekLoadResponse struct {
	Data  *WeekLoad `json:"data"`                                                          // Load analysis of the week
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
