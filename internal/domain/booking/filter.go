package booking

import (
	"fmt"
	"strings"
	"time"
)

// Filter names a query shape over a user's or owner's bookings.
type Filter string

const (
	FilterAll      Filter = "ALL"
	FilterCurrent  Filter = "CURRENT"
	FilterPast     Filter = "PAST"
	FilterFuture   Filter = "FUTURE"
	FilterWaiting  Filter = "WAITING"
	FilterRejected Filter = "REJECTED"
)

// ParseFilter rejects anything outside the closed enumeration.
func ParseFilter(raw string) (Filter, error) {
	switch f := Filter(strings.ToUpper(strings.TrimSpace(raw))); f {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return f, nil
	default:
		return "", fmt.Errorf("unknown state: %s", raw)
	}
}

var (
	errFromNegative    = fmt.Errorf("'from' must be >= 0")
	errSizeNotPositive = fmt.Errorf("'size' must be > 0")
)

// Query carries a filter, the evaluation instant and a page. Page is computed
// as from/size in integer arithmetic; a `from` that is not a multiple of
// `size` therefore snaps to a page boundary rather than sliding. Kept as-is
// for wire compatibility.
type Query struct {
	Filter Filter
	Now    time.Time
	Page   int
	Size   int
}

func NewQuery(filter Filter, now time.Time, from, size int) (Query, error) {
	if from < 0 {
		return Query{}, errFromNegative
	}
	if size <= 0 {
		return Query{}, errSizeNotPositive
	}
	return Query{Filter: filter, Now: now, Page: from / size, Size: size}, nil
}

func (q Query) Offset() int { return q.Page * q.Size }

// Matches is the in-memory predicate for q's filter. The mongo repository
// builds the equivalent document filter from q.Filter directly.
func (q Query) Matches(b *Booking) bool {
	switch q.Filter {
	case FilterCurrent:
		return !b.Start.After(q.Now) && b.End.After(q.Now)
	case FilterPast:
		return b.End.Before(q.Now)
	case FilterFuture:
		return b.Start.After(q.Now)
	case FilterWaiting:
		return b.Status == StatusWaiting
	case FilterRejected:
		return b.Status == StatusRejected
	default: // FilterAll
		return true
	}
}

// Less orders bookings by start descending; ties fall back to descending
// identity so pagination stays deterministic.
func Less(a, b *Booking) bool {
	if !a.Start.Equal(b.Start) {
		return a.Start.After(b.Start)
	}
	return a.ID > b.ID
}
