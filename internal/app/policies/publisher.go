// Package policies declares the outbound ports the services depend on.
package policies

import (
	"context"

	"github.com/e1zenberg/java-shareit/internal/domain/booking"
)

type BookingEvent string

const (
	BookingCreated  BookingEvent = "booking.created"
	BookingApproved BookingEvent = "booking.approved"
	BookingRejected BookingEvent = "booking.rejected"
)

// EventPublisher pushes booking lifecycle events to interested consumers.
// Publishing is best-effort: services log failures and carry on.
type EventPublisher interface {
	PublishBooking(ctx context.Context, event BookingEvent, b *booking.Booking) error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishBooking(context.Context, BookingEvent, *booking.Booking) error {
	return nil
}
