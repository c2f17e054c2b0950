// Package availability derives owner-facing booking summaries: for each item,
// the most recent past APPROVED booking and the nearest upcoming one.
package availability

import (
	"context"
	"time"

	"github.com/e1zenberg/java-shareit/internal/domain/booking"
	"github.com/e1zenberg/java-shareit/internal/domain/item"
)

// Summary carries the two sides of an item's booking horizon. Either side is
// nil when no qualifying booking exists; that is a normal outcome.
type Summary struct {
	Last *booking.Short
	Next *booking.Short
}

type Aggregator struct {
	Bookings booking.Repository
}

// LastAndNext resolves summaries for a set of items in two batched lookups,
// never one round trip per item. Every requested item gets a map entry, with
// nil sides where the history is empty.
func (a *Aggregator) LastAndNext(ctx context.Context, itemIDs []item.ID, now time.Time) (map[item.ID]Summary, error) {
	summaries := make(map[item.ID]Summary, len(itemIDs))
	if len(itemIDs) == 0 {
		return summaries, nil
	}

	last, err := a.Bookings.LastForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}
	next, err := a.Bookings.NextForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}

	for _, id := range itemIDs {
		summaries[id] = Summary{
			Last: last[id].ToShort(),
			Next: next[id].ToShort(),
		}
	}
	return summaries, nil
}

// ForItem is the single-item convenience used on the item details path.
func (a *Aggregator) ForItem(ctx context.Context, itemID item.ID, now time.Time) (Summary, error) {
	summaries, err := a.LastAndNext(ctx, []item.ID{itemID}, now)
	if err != nil {
		return Summary{}, err
	}
	return summaries[itemID], nil
}
