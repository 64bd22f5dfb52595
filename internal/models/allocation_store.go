package models

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/opsconsole/planning-backend/internal/planning"
	"gorm.io/gorm"
)

// AllocationStore is the planning.AllocationStore on top of gorm.
type AllocationStore struct {
	DB *gorm.DB
}

func NewAllocationStore(db *gorm.DB) AllocationStore {
	return AllocationStore{DB: db}
}

func (s AllocationStore) Find(ctx context.Context, orderID, weekID uuid.UUID) (planning.Record, bool, error) {
	var a Allocation
	err := s.DB.WithContext(ctx).Where("order_id = ? AND week_id = ?", orderID, weekID).First(&a).Error
	if errors.Is(err, ErrResourceNotFound) {
		return planning.Record{}, false, nil
	}
	if err != nil {
		return planning.Record{}, false, err
	}

	return a.Record(), true, nil
}

// Create stores a new allocation with the objective and planned and
// packaged quantities of the record.
func (s AllocationStore) Create(ctx context.Context, r planning.Record) (planning.Record, error) {
	a := Allocation{
		OrderID:   r.OrderID,
		WeekID:    r.WeekID,
		Objective: r.Objective,
	}
	a.SetPlanned(r.Planned)
	a.SetPackaged(r.Packaged)

	err := s.DB.WithContext(ctx).Create(&a).Error
	if err != nil {
		return planning.Record{}, err
	}

	return a.Record(), nil
}

// Update writes objective and planned quantities of the record. All
// other fields of the stored allocation, packaged quantities included,
// are left as they are.
func (s AllocationStore) Update(ctx context.Context, r planning.Record) (planning.Record, error) {
	var a Allocation
	err := s.DB.WithContext(ctx).First(&a, "id = ?", r.ID).Error
	if err != nil {
		return planning.Record{}, err
	}

	data := Allocation{Objective: r.Objective}
	data.SetPlanned(r.Planned)

	err = s.DB.WithContext(ctx).Model(&a).Select(plannedColumns).Updates(data).Error
	if err != nil {
		return planning.Record{}, err
	}

	a.Objective = r.Objective
	a.SetPlanned(r.Planned)

	return a.Record(), nil
}
