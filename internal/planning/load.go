package planning

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Status classifies the utilization of a day.
type Status string

const (
	StatusNominal    Status = "NOMINAL"
	StatusWarning    Status = "WARNING"
	StatusOverloaded Status = "OVERLOADED"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(85)
)

// Classify returns the status for a utilization in percent. A day at
// full capacity is overloaded, above 85% it is a warning.
func Classify(utilization decimal.Decimal) Status {
	switch {
	case utilization.GreaterThanOrEqual(hundred):
		return StatusOverloaded
	case utilization.GreaterThan(warningThreshold):
		return StatusWarning
	}
	return StatusNominal
}

// DayPlan is the planned quantity per day of one order in one week.
type DayPlan struct {
	OrderID   uuid.UUID
	ArticleID uuid.UUID
	Planned   DayVector
}

// LoadPoint is the aggregated workload of one day.
type LoadPoint struct {
	Day         Weekday
	Hours       decimal.Decimal
	Utilization decimal.Decimal // percent of the daily capacity
	Status      Status
}

// ArticleLoad is the workload of one article over the analyzed days.
type ArticleLoad struct {
	ArticleID    uuid.UUID
	PlannedUnits int
	TimePerUnit  decimal.Decimal
	TotalHours   decimal.Decimal
}

type Synthesis struct {
	Days               int
	TotalHours         decimal.Decimal
	TotalCapacity      decimal.Decimal
	AverageUtilization decimal.Decimal
	PeakHours          decimal.Decimal
	PeakDay            Weekday
}

type Analysis struct {
	PerDay    []LoadPoint
	Synthesis Synthesis
	Articles  []ArticleLoad

	// Articles without a cached theoretical time. Their hours count as
	// zero, so the figures above understate the real load.
	MissingTimes []uuid.UUID
}

// Analyze computes the workload per day of the plans against
// capacityPerDay hours. Monday to Friday are always analyzed, Saturday
// only when a plan has a quantity on it.
//
// A capacity of zero or less yields a utilization of zero.
func Analyze(plans []DayPlan, times TimeLookup, capacityPerDay decimal.Decimal) Analysis {
	days := WorkingDays
	for _, p := range plans {
		if p.Planned[Saturday] > 0 {
			days = DaysPerWeek
			break
		}
	}

	hours := make([]decimal.Decimal, days)
	for i := range hours {
		hours[i] = decimal.Zero
	}

	articles := make(map[uuid.UUID]*ArticleLoad)
	missing := make(map[uuid.UUID]struct{})

	for _, p := range plans {
		tpu, ok := times.TimePerUnit(p.ArticleID)
		if !ok {
			tpu = decimal.Zero
			missing[p.ArticleID] = struct{}{}
		}

		a, ok := articles[p.ArticleID]
		if !ok {
			a = &ArticleLoad{ArticleID: p.ArticleID, TimePerUnit: tpu}
			articles[p.ArticleID] = a
		}

		for d := 0; d < days; d++ {
			q := clampInt(p.Planned[d])
			hours[d] = hours[d].Add(tpu.Mul(decimal.NewFromInt(int64(q))))
			a.PlannedUnits += q
		}
	}

	analysis := Analysis{
		PerDay: make([]LoadPoint, days),
		Synthesis: Synthesis{
			Days:       days,
			TotalHours: decimal.Zero,
			PeakHours:  decimal.Zero,
			PeakDay:    Monday,
		},
	}

	for d, h := range hours {
		u := utilization(h, capacityPerDay)
		analysis.PerDay[d] = LoadPoint{
			Day:         Weekday(d),
			Hours:       h,
			Utilization: u,
			Status:      Classify(u),
		}

		analysis.Synthesis.TotalHours = analysis.Synthesis.TotalHours.Add(h)
		if h.GreaterThan(analysis.Synthesis.PeakHours) {
			analysis.Synthesis.PeakHours = h
			analysis.Synthesis.PeakDay = Weekday(d)
		}
	}

	analysis.Synthesis.TotalCapacity = capacityPerDay.Mul(decimal.NewFromInt(int64(days)))
	analysis.Synthesis.AverageUtilization = utilization(analysis.Synthesis.TotalHours, analysis.Synthesis.TotalCapacity)

	for _, a := range articles {
		a.TotalHours = a.TimePerUnit.Mul(decimal.NewFromInt(int64(a.PlannedUnits)))
		analysis.Articles = append(analysis.Articles, *a)
	}
	slices.SortFunc(analysis.Articles, func(a, b ArticleLoad) int {
		if c := b.TotalHours.Cmp(a.TotalHours); c != 0 {
			return c
		}
		return strings.Compare(a.ArticleID.String(), b.ArticleID.String())
	})

	analysis.MissingTimes = maps.Keys(missing)
	slices.SortFunc(analysis.MissingTimes, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})

	return analysis
}

func utilization(hours, capacity decimal.Decimal) decimal.Decimal {
	if !capacity.IsPositive() {
		return decimal.Zero
	}
	return hours.Div(capacity).Mul(hundred)
}
