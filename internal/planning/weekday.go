// Package planning implements the production planning core: splitting
// quantities over weekdays, distributing totals over week buckets,
// analysing daily workload against capacity and sequencing writes of
// allocation records.
//
// Everything except the Orchestrator is pure and safe for concurrent use.
package planning

// Weekday is a production day. Sunday is not a production day and
// has no slot.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// DaysPerWeek is the number of slots in a DayVector.
const DaysPerWeek = 6

// WorkingDays is the number of weekdays the splitter allocates to.
const WorkingDays = 5

var weekdayNames = [DaysPerWeek]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func (d Weekday) String() string {
	if d < Monday || d > Saturday {
		return "unknown"
	}
	return weekdayNames[d]
}

// DayVector holds one quantity per production day, Monday first.
type DayVector [DaysPerWeek]int

// Sum returns the total over all six days.
func (v DayVector) Sum() int {
	total := 0
	for _, q := range v {
		total += q
	}
	return total
}

// Add returns the element-wise sum of both vectors. o must not be
// negative; sums saturate like addQuantity.
func (v DayVector) Add(o DayVector) DayVector {
	var r DayVector
	for i := range v {
		r[i] = addQuantity(v[i], o[i])
	}
	return r
}
