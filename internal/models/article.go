package models

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Article is a manufactured product.
type Article struct {
	DefaultModel
	Reference   string          `gorm:"uniqueIndex"`
	Name        string          `gorm:"index"`
	TimePerUnit decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Theoretical hours to produce one unit
}

func (a *Article) BeforeSave(tx *gorm.DB) error {
	a.Reference = strings.TrimSpace(a.Reference)
	a.Name = strings.TrimSpace(a.Name)

	switch dest := tx.Statement.Dest.(type) {
	case *Article:
		if dest.Reference == "" {
			return ErrArticleReferenceEmpty
		}
		return dest.checkTime()
	case Article:
		return dest.checkTime()
	}

	return nil
}

func (a Article) checkTime() error {
	if a.TimePerUnit.IsNegative() {
		return ErrTimePerUnitNegative
	}
	return nil
}

// ArticleTimes reads theoretical times from the articles table.
type ArticleTimes struct {
	DB *gorm.DB
}

// TheoreticalTime returns the time per unit of an article. Articles
// without a positive time are reported as not found.
func (s ArticleTimes) TheoreticalTime(ctx context.Context, articleID uuid.UUID) (decimal.Decimal, bool, error) {
	var article Article
	err := s.DB.WithContext(ctx).First(&article, "id = ?", articleID).Error
	if errors.Is(err, ErrResourceNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}

	if !article.TimePerUnit.IsPositive() {
		return decimal.Zero, false, nil
	}

	return article.TimePerUnit, true, nil
}
