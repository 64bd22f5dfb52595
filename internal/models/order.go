package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a production order for a quantity of one article.
type Order struct {
	DefaultModel
	Number    string    `gorm:"uniqueIndex"`
	Article   Article   `json:"-"`
	ArticleID uuid.UUID `gorm:"index"`
	Unit      string    `gorm:"index"` // Production unit (workshop) the order is made in
	Quantity  int       // Total quantity to produce and invoice
	Note      string
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	_ = o.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Order)
	if toSave.Number == "" {
		return ErrOrderNumberEmpty
	}

	if toSave.Quantity < 0 {
		return ErrOrderQuantityInvalid
	}

	return o.checkIntegrity(tx, *toSave)
}

func (o *Order) BeforeUpdate(tx *gorm.DB) (err error) {
	toSave, ok := tx.Statement.Dest.(Order)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("ArticleID") {
		err := o.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	if toSave.Quantity < 0 {
		return ErrOrderQuantityInvalid
	}

	return nil
}

// checkIntegrity verifies that the article of the order exists.
func (o *Order) checkIntegrity(tx *gorm.DB, toSave Order) error {
	return tx.First(&Article{}, "id = ?", toSave.ArticleID).Error
}

func (o *Order) BeforeSave(_ *gorm.DB) error {
	o.Number = strings.TrimSpace(o.Number)
	o.Unit = strings.TrimSpace(o.Unit)
	o.Note = strings.TrimSpace(o.Note)

	return nil
}
