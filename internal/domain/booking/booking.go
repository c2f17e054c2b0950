package booking

import (
	"context"
	"errors"
	"time"

	"github.com/e1zenberg/java-shareit/internal/domain/item"
	"github.com/e1zenberg/java-shareit/internal/domain/user"
)

var (
	ErrTimeRangeRequired = errors.New("booking: start and end must be provided")
	ErrStartAfterEnd     = errors.New("booking: start must be before end")
	ErrTimeRangeInPast   = errors.New("booking: start and end must be in the future")
	ErrNotWaiting        = errors.New("booking: only a WAITING booking can be decided")
	ErrNotFound          = errors.New("booking: not found")
)

type ID string

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	// StatusCanceled is reserved; no transition reaches it yet.
	StatusCanceled Status = "CANCELED"
)

// Booking reserves an item for a time window. It is created WAITING and moves
// exactly once to APPROVED or REJECTED when the item's owner decides.
type Booking struct {
	ID       ID
	Start    time.Time
	End      time.Time
	ItemID   item.ID
	BookerID user.ID
	Status   Status
}

// Short is the identity-only view attached to owner-facing item summaries.
type Short struct {
	ID       ID      `json:"id"`
	BookerID user.ID `json:"bookerId"`
}

func (b *Booking) ToShort() *Short {
	if b == nil {
		return nil
	}
	return &Short{ID: b.ID, BookerID: b.BookerID}
}

type CreateParams struct {
	Start    time.Time
	End      time.Time
	ItemID   item.ID
	BookerID user.ID
	Now      time.Time
}

// NewBooking validates the time window and returns a WAITING booking.
func NewBooking(params CreateParams) (*Booking, error) {
	if params.Start.IsZero() || params.End.IsZero() {
		return nil, ErrTimeRangeRequired
	}
	if !params.Start.Before(params.End) {
		return nil, ErrStartAfterEnd
	}
	if params.Start.Before(params.Now) || params.End.Before(params.Now) {
		return nil, ErrTimeRangeInPast
	}
	return &Booking{
		Start:    params.Start.UTC(),
		End:      params.End.UTC(),
		ItemID:   params.ItemID,
		BookerID: params.BookerID,
		Status:   StatusWaiting,
	}, nil
}

// Decide resolves the WAITING state. The repository repeats the WAITING check
// as a conditional update, so a racing second decision loses there too.
func (b *Booking) Decide(approved bool) error {
	if b.Status != StatusWaiting {
		return ErrNotWaiting
	}
	if approved {
		b.Status = StatusApproved
	} else {
		b.Status = StatusRejected
	}
	return nil
}

func (b *Booking) IsFinishedBy(now time.Time) bool {
	return b.Status == StatusApproved && b.End.Before(now)
}

// Repository persists bookings. Create assigns the identity. UpdateStatus is a
// conditional write: it flips status only while the stored row still carries
// `from`, returning ErrNotWaiting when the precondition no longer holds.
type Repository interface {
	ByID(ctx context.Context, id ID) (*Booking, error)
	Create(ctx context.Context, b *Booking) (*Booking, error)
	UpdateStatus(ctx context.Context, id ID, from, to Status) (*Booking, error)

	ListByBooker(ctx context.Context, bookerID user.ID, q Query) ([]*Booking, error)
	ListByOwner(ctx context.Context, ownerID user.ID, q Query) ([]*Booking, error)

	// LastForItems returns, per item, the APPROVED booking with the greatest
	// end among those with start < now. NextForItems returns the APPROVED
	// booking with the smallest start among those with start > now. Items
	// without a qualifying booking are simply absent from the map.
	LastForItems(ctx context.Context, itemIDs []item.ID, now time.Time) (map[item.ID]*Booking, error)
	NextForItems(ctx context.Context, itemIDs []item.ID, now time.Time) (map[item.ID]*Booking, error)

	// HasFinishedApproved reports whether bookerID has an APPROVED booking of
	// itemID that ended before now.
	HasFinishedApproved(ctx context.Context, bookerID user.ID, itemID item.ID, now time.Time) (bool, error)
}
