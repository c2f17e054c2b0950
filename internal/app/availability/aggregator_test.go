package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainbooking "github.com/e1zenberg/java-shareit/internal/domain/booking"
	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
	"github.com/e1zenberg/java-shareit/internal/infra/storage/memory"
)

func seedBooking(t *testing.T, repo *memory.BookingRepository, itemID domainitem.ID, booker domainuser.ID, start, end time.Time, status domainbooking.Status) *domainbooking.Booking {
	t.Helper()
	b, err := repo.Create(context.Background(), &domainbooking.Booking{
		Start:    start,
		End:      end,
		ItemID:   itemID,
		BookerID: booker,
		Status:   status,
	})
	require.NoError(t, err)
	return b
}

func TestLastAndNext(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	items := memory.NewItemRepository()
	bookings := memory.NewBookingRepository(items)
	agg := &Aggregator{Bookings: bookings}

	// bare: no bookings at all
	bare := domainitem.ID("bare")
	// busy: one past and one future approved booking, plus noise
	busy := domainitem.ID("busy")

	last := seedBooking(t, bookings, busy, "u2", now.Add(-4*time.Hour), now.Add(-2*time.Hour), domainbooking.StatusApproved)
	next := seedBooking(t, bookings, busy, "u3", now.Add(2*time.Hour), now.Add(4*time.Hour), domainbooking.StatusApproved)
	// earlier past booking loses the "last" slot
	seedBooking(t, bookings, busy, "u2", now.Add(-8*time.Hour), now.Add(-6*time.Hour), domainbooking.StatusApproved)
	// later future booking loses the "next" slot
	seedBooking(t, bookings, busy, "u4", now.Add(6*time.Hour), now.Add(8*time.Hour), domainbooking.StatusApproved)
	// non-approved bookings never count on either side
	seedBooking(t, bookings, busy, "u5", now.Add(-2*time.Hour), now.Add(-time.Hour), domainbooking.StatusWaiting)
	seedBooking(t, bookings, busy, "u5", now.Add(time.Hour), now.Add(2*time.Hour), domainbooking.StatusRejected)

	summaries, err := agg.LastAndNext(ctx, []domainitem.ID{bare, busy}, now)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Nil(t, summaries[bare].Last)
	assert.Nil(t, summaries[bare].Next)

	require.NotNil(t, summaries[busy].Last)
	assert.Equal(t, last.ID, summaries[busy].Last.ID)
	assert.Equal(t, domainuser.ID("u2"), summaries[busy].Last.BookerID)

	require.NotNil(t, summaries[busy].Next)
	assert.Equal(t, next.ID, summaries[busy].Next.ID)
}

func TestLastAndNext_EmptyInput(t *testing.T) {
	items := memory.NewItemRepository()
	agg := &Aggregator{Bookings: memory.NewBookingRepository(items)}

	summaries, err := agg.LastAndNext(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestForItem(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	items := memory.NewItemRepository()
	bookings := memory.NewBookingRepository(items)
	agg := &Aggregator{Bookings: bookings}

	id := domainitem.ID("solo")
	past := seedBooking(t, bookings, id, "u2", now.Add(-2*time.Hour), now.Add(-time.Hour), domainbooking.StatusApproved)

	summary, err := agg.ForItem(ctx, id, now)
	require.NoError(t, err)
	require.NotNil(t, summary.Last)
	assert.Equal(t, past.ID, summary.Last.ID)
	assert.Nil(t, summary.Next)
}
