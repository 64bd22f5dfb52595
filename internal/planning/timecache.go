package planning

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeLookup returns the theoretical hours needed to produce one unit
// of an article.
type TimeLookup interface {
	TimePerUnit(articleID uuid.UUID) (decimal.Decimal, bool)
}

// TimeSource fetches the theoretical time of an article from wherever
// it is stored. found is false when the article has no time recorded.
type TimeSource interface {
	TheoreticalTime(ctx context.Context, articleID uuid.UUID) (hours decimal.Decimal, found bool, err error)
}

// TimeCache is a TimeLookup filled by its owner before analysis. It is
// not safe for concurrent use.
type TimeCache struct {
	times map[uuid.UUID]decimal.Decimal
}

func NewTimeCache() *TimeCache {
	return &TimeCache{times: make(map[uuid.UUID]decimal.Decimal)}
}

func (c *TimeCache) Set(articleID uuid.UUID, hours decimal.Decimal) {
	c.times[articleID] = hours
}

func (c *TimeCache) TimePerUnit(articleID uuid.UUID) (decimal.Decimal, bool) {
	h, ok := c.times[articleID]
	return h, ok
}

// Fill looks up every article that is not cached yet, once per distinct
// id. Articles the source does not know stay uncached. The first source
// error aborts the fill; entries fetched before it are kept.
func (c *TimeCache) Fill(ctx context.Context, src TimeSource, articleIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(articleIDs))
	for _, id := range articleIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if _, ok := c.TimePerUnit(id); ok {
			continue
		}

		hours, found, err := src.TheoreticalTime(ctx, id)
		if err != nil {
			return err
		}
		if found {
			c.Set(id, hours)
		}
	}
	return nil
}
