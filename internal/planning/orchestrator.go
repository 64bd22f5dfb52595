package planning

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Record is the stored allocation of one order in one week.
type Record struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	WeekID    uuid.UUID
	Objective int
	Planned   DayVector
	Packaged  DayVector
}

// AllocationStore persists allocation records. Find reports found as
// false when no record exists for the (order, week) pair.
type AllocationStore interface {
	Find(ctx context.Context, orderID, weekID uuid.UUID) (record Record, found bool, err error)
	Create(ctx context.Context, record Record) (Record, error)
	Update(ctx context.Context, record Record) (Record, error)
}

// Op is the write the orchestrator issued for a week.
type Op string

const (
	OpCreate Op = "CREATE"
	OpUpdate Op = "UPDATE"
	OpSkip   Op = "SKIP"
)

// Result describes what happened to one week.
type Result struct {
	WeekID uuid.UUID
	Op     Op
	Record Record
}

// WriteError is returned when the lookup or the write for a week fails.
// Writes for earlier weeks of the same call are not rolled back.
type WriteError struct {
	WeekID uuid.UUID
	Row    int
	Op     Op
	Err    error
}

func (e *WriteError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("looking up allocation for week %s failed: %v", e.WeekID, e.Err)
	}
	return fmt.Sprintf("%s of allocation for week %s failed: %v", e.Op, e.WeekID, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WeekRow is the target of one week in an advanced plan.
type WeekRow struct {
	WeekID    uuid.UUID
	Objective int
	Planned   int
}

// Orchestrator sequences reads and writes of allocation records.
//
// Read-then-write is not atomic: two concurrent quick plans on the same
// order and week can lose an increment.
type Orchestrator struct {
	Store AllocationStore

	// OnWrite, if set, is called after every attempted create or update.
	OnWrite func(op Op, err error)
}

func NewOrchestrator(store AllocationStore) *Orchestrator {
	return &Orchestrator{Store: store}
}

// QuickPlan adds quantity to the week of an order. The split of quantity
// is added to the planned days and quantity to the objective of an
// existing record; otherwise a record is created. Calling it twice adds
// twice.
func (o *Orchestrator) QuickPlan(ctx context.Context, orderID, weekID uuid.UUID, quantity int) (Result, error) {
	quantity = min(clampInt(quantity), math.MaxInt32)
	split := Split(quantity)

	existing, found, err := o.Store.Find(ctx, orderID, weekID)
	if err != nil {
		return Result{}, &WriteError{WeekID: weekID, Err: err}
	}

	if found {
		existing.Objective = addQuantity(existing.Objective, quantity)
		existing.Planned = existing.Planned.Add(split)
		return o.write(ctx, OpUpdate, 0, existing)
	}

	return o.write(ctx, OpCreate, 0, Record{
		OrderID:   orderID,
		WeekID:    weekID,
		Objective: quantity,
		Planned:   split,
	})
}

// AdvancedPlan writes one record per row, replacing objective and
// planned days of existing records. Rows with neither objective nor
// planned quantity are skipped.
//
// Rows are written one after the other. The first failure stops the
// call; the results of the rows handled before it are returned together
// with a *WriteError. A cancelled context stops the call before the next
// row.
func (o *Orchestrator) AdvancedPlan(ctx context.Context, orderID uuid.UUID, rows []WeekRow) ([]Result, error) {
	results := make([]Result, 0, len(rows))

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		objective := clampInt(row.Objective)
		planned := clampInt(row.Planned)
		if objective == 0 && planned == 0 {
			results = append(results, Result{WeekID: row.WeekID, Op: OpSkip})
			continue
		}

		existing, found, err := o.Store.Find(ctx, orderID, row.WeekID)
		if err != nil {
			return results, &WriteError{WeekID: row.WeekID, Row: i, Err: err}
		}

		op := OpCreate
		record := Record{OrderID: orderID, WeekID: row.WeekID}
		if found {
			op = OpUpdate
			record = existing
		}
		record.Objective = objective
		record.Planned = Split(planned)

		result, err := o.write(ctx, op, i, record)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (o *Orchestrator) write(ctx context.Context, op Op, row int, record Record) (Result, error) {
	var (
		saved Record
		err   error
	)

	if op == OpUpdate {
		saved, err = o.Store.Update(ctx, record)
	} else {
		saved, err = o.Store.Create(ctx, record)
	}

	if o.OnWrite != nil {
		o.OnWrite(op, err)
	}

	if err != nil {
		log.Debug().Err(err).Str("op", string(op)).Str("order", record.OrderID.String()).Str("week", record.WeekID.String()).Msg("allocation write failed")
		return Result{}, &WriteError{WeekID: record.WeekID, Row: row, Op: op, Err: err}
	}

	log.Debug().Str("op", string(op)).Str("order", record.OrderID.String()).Str("week", record.WeekID.String()).Int("objective", saved.Objective).Msg("allocation written")
	return Result{WeekID: saved.WeekID, Op: op, Record: saved}, nil
}
