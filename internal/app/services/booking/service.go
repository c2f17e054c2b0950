// Package booking implements the reservation lifecycle: creation under
// eligibility rules, the single-shot owner decision and the filtered listing
// queries for bookers and owners.
package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/e1zenberg/java-shareit/internal/apperr"
	"github.com/e1zenberg/java-shareit/internal/app/policies"
	domainbooking "github.com/e1zenberg/java-shareit/internal/domain/booking"
	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
)

type Service struct {
	Bookings domainbooking.Repository
	Items    domainitem.Repository
	Users    domainuser.Repository
	Events   policies.EventPublisher
	Logger   *slog.Logger

	// now is swappable in tests; zero value falls back to time.Now.
	now func() time.Time
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now().UTC()
	}
	return time.Now().UTC()
}

type CreateParams struct {
	BookerID domainuser.ID
	ItemID   domainitem.ID
	Start    time.Time
	End      time.Time
}

// Create validates the window and the booker's eligibility, then persists a
// WAITING booking. An owner booking their own item gets NotFound, not
// Forbidden: the API hides items from their owner on this path.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domainbooking.Booking, error) {
	now := s.clock()

	draft, err := domainbooking.NewBooking(domainbooking.CreateParams{
		Start:    params.Start,
		End:      params.End,
		ItemID:   params.ItemID,
		BookerID: params.BookerID,
		Now:      now,
	})
	if err != nil {
		return nil, apperr.InvalidInput("%s", err)
	}

	booker, err := s.Users.ByID(ctx, params.BookerID)
	if err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return nil, apperr.NotFound("user not found: %s", params.BookerID)
		}
		return nil, err
	}
	it, err := s.Items.ByID(ctx, params.ItemID)
	if err != nil {
		if errors.Is(err, domainitem.ErrNotFound) {
			return nil, apperr.NotFound("item not found: %s", params.ItemID)
		}
		return nil, err
	}
	if it.OwnerID == booker.ID {
		return nil, apperr.NotFound("item not found: %s", params.ItemID)
	}
	if !it.Available {
		return nil, apperr.InvalidInput("item is not available for booking")
	}

	created, err := s.Bookings.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, policies.BookingCreated, created)
	if s.Logger != nil {
		s.Logger.Info("booking created", "booking_id", created.ID, "item_id", created.ItemID, "booker_id", created.BookerID)
	}
	return created, nil
}

// Approve resolves a WAITING booking. Only the item's owner may decide; a
// second decision fails with Conflict regardless of the boolean passed.
func (s *Service) Approve(ctx context.Context, ownerID domainuser.ID, bookingID domainbooking.ID, approved bool) (*domainbooking.Booking, error) {
	current, err := s.Bookings.ByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domainbooking.ErrNotFound) {
			return nil, apperr.NotFound("booking not found: %s", bookingID)
		}
		return nil, err
	}
	it, err := s.Items.ByID(ctx, current.ItemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != ownerID {
		return nil, apperr.Forbidden("only the item owner can approve or reject a booking")
	}
	if err := current.Decide(approved); err != nil {
		return nil, apperr.Conflict("only a WAITING booking can be decided")
	}

	// Conditional write: the store flips status only while the row is still
	// WAITING, so a concurrent decision loses cleanly instead of racing.
	updated, err := s.Bookings.UpdateStatus(ctx, bookingID, domainbooking.StatusWaiting, current.Status)
	if err != nil {
		if errors.Is(err, domainbooking.ErrNotWaiting) {
			return nil, apperr.Conflict("only a WAITING booking can be decided")
		}
		return nil, err
	}

	event := policies.BookingRejected
	if approved {
		event = policies.BookingApproved
	}
	s.publish(ctx, event, updated)
	if s.Logger != nil {
		s.Logger.Info("booking decided", "booking_id", updated.ID, "status", updated.Status, "owner_id", ownerID)
	}
	return updated, nil
}

// Get returns a booking to its booker or the item's owner; anyone else gets
// NotFound so existence does not leak.
func (s *Service) Get(ctx context.Context, requesterID domainuser.ID, bookingID domainbooking.ID) (*domainbooking.Booking, error) {
	b, err := s.Bookings.ByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domainbooking.ErrNotFound) {
			return nil, apperr.NotFound("booking not found: %s", bookingID)
		}
		return nil, err
	}
	if b.BookerID == requesterID {
		return b, nil
	}
	it, err := s.Items.ByID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != requesterID {
		return nil, apperr.NotFound("booking not found: %s", bookingID)
	}
	return b, nil
}

// ListForUser returns the user's own bookings, start-descending.
func (s *Service) ListForUser(ctx context.Context, userID domainuser.ID, filter domainbooking.Filter, from, size int) ([]*domainbooking.Booking, error) {
	q, err := s.buildQuery(ctx, userID, filter, from, size)
	if err != nil {
		return nil, err
	}
	return s.Bookings.ListByBooker(ctx, userID, q)
}

// ListForOwner returns bookings of all items owned by ownerID, start-descending.
func (s *Service) ListForOwner(ctx context.Context, ownerID domainuser.ID, filter domainbooking.Filter, from, size int) ([]*domainbooking.Booking, error) {
	q, err := s.buildQuery(ctx, ownerID, filter, from, size)
	if err != nil {
		return nil, err
	}
	return s.Bookings.ListByOwner(ctx, ownerID, q)
}

func (s *Service) buildQuery(ctx context.Context, userID domainuser.ID, filter domainbooking.Filter, from, size int) (domainbooking.Query, error) {
	if _, err := s.Users.ByID(ctx, userID); err != nil {
		if errors.Is(err, domainuser.ErrNotFound) {
			return domainbooking.Query{}, apperr.NotFound("user not found: %s", userID)
		}
		return domainbooking.Query{}, err
	}
	q, err := domainbooking.NewQuery(filter, s.clock(), from, size)
	if err != nil {
		return domainbooking.Query{}, apperr.InvalidInput("%s", err)
	}
	return q, nil
}

func (s *Service) publish(ctx context.Context, event policies.BookingEvent, b *domainbooking.Booking) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishBooking(ctx, event, b); err != nil && s.Logger != nil {
		s.Logger.Warn("booking event publish failed", "event", event, "booking_id", b.ID, "error", err)
	}
}
