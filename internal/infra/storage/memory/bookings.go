package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainbooking "github.com/e1zenberg/java-shareit/internal/domain/booking"
	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

// BookingRepository keeps bookings in a map and resolves owner-scoped queries
// through the item repository, mirroring the join the durable store performs.
type BookingRepository struct {
	mu       sync.RWMutex
	seq      sequence
	bookings map[domainbooking.ID]*domainbooking.Booking
	items    *ItemRepository
}

func NewBookingRepository(items *ItemRepository) *BookingRepository {
	return &BookingRepository{
		bookings: make(map[domainbooking.ID]*domainbooking.Booking),
		items:    items,
	}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.ID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domainbooking.Booking) (*domainbooking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = domainbooking.ID(r.seq.next())
	}
	copied := *b
	r.bookings[b.ID] = &copied
	return b, nil
}

// UpdateStatus flips the status only while the stored row still carries
// `from`; the lock makes the check-and-set atomic for this backend.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id domainbooking.ID, from, to domainbooking.Status) (*domainbooking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	if b.Status != from {
		return nil, domainbooking.ErrNotWaiting
	}
	b.Status = to
	copied := *b
	return &copied, nil
}

func (r *BookingRepository) ListByBooker(ctx context.Context, bookerID domainuser.ID, q domainbooking.Query) ([]*domainbooking.Booking, error) {
	return r.list(func(b *domainbooking.Booking) bool { return b.BookerID == bookerID }, q)
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID domainuser.ID, q domainbooking.Query) ([]*domainbooking.Booking, error) {
	return r.list(func(b *domainbooking.Booking) bool {
		owner, ok := r.items.ownerOf(b.ItemID)
		return ok && owner == ownerID
	}, q)
}

func (r *BookingRepository) list(scope func(*domainbooking.Booking) bool, q domainbooking.Query) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	matched := make([]*domainbooking.Booking, 0)
	for _, b := range r.bookings {
		if scope(b) && q.Matches(b) {
			copied := *b
			matched = append(matched, &copied)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return domainbooking.Less(matched[i], matched[j]) })

	start := q.Offset()
	if start >= len(matched) {
		return []*domainbooking.Booking{}, nil
	}
	end := start + q.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (r *BookingRepository) LastForItems(ctx context.Context, itemIDs []domainitem.ID, now time.Time) (map[domainitem.ID]*domainbooking.Booking, error) {
	wanted := itemIDSet(itemIDs)
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[domainitem.ID]*domainbooking.Booking)
	for _, b := range r.bookings {
		if _, ok := wanted[b.ItemID]; !ok {
			continue
		}
		if b.Status != domainbooking.StatusApproved || !b.Start.Before(now) {
			continue
		}
		best, ok := out[b.ItemID]
		if !ok || b.End.After(best.End) {
			copied := *b
			out[b.ItemID] = &copied
		}
	}
	return out, nil
}

func (r *BookingRepository) NextForItems(ctx context.Context, itemIDs []domainitem.ID, now time.Time) (map[domainitem.ID]*domainbooking.Booking, error) {
	wanted := itemIDSet(itemIDs)
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[domainitem.ID]*domainbooking.Booking)
	for _, b := range r.bookings {
		if _, ok := wanted[b.ItemID]; !ok {
			continue
		}
		if b.Status != domainbooking.StatusApproved || !b.Start.After(now) {
			continue
		}
		best, ok := out[b.ItemID]
		if !ok || b.Start.Before(best.Start) {
			copied := *b
			out[b.ItemID] = &copied
		}
	}
	return out, nil
}

func (r *BookingRepository) HasFinishedApproved(ctx context.Context, bookerID domainuser.ID, itemID domainitem.ID, now time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bookings {
		if b.BookerID == bookerID && b.ItemID == itemID &&
			b.Status == domainbooking.StatusApproved && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func itemIDSet(ids []domainitem.ID) map[domainitem.ID]struct{} {
	set := make(map[domainitem.ID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
