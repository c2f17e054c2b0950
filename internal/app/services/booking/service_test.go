package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e1zenberg/java-shareit/internal/apperr"
	domainbooking "github.com/e1zenberg/java-shareit/internal/domain/booking"
	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
	"github.com/e1zenberg/java-shareit/internal/infra/storage/memory"
)

type fixture struct {
	svc    *Service
	users  *memory.UserRepository
	items  *memory.ItemRepository
	owner  *domainuser.User
	booker *domainuser.User
	item   *domainitem.Item
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	users := memory.NewUserRepository()
	items := memory.NewItemRepository()
	bookings := memory.NewBookingRepository(items)

	owner, err := users.Save(ctx, &domainuser.User{Name: "owner", Email: "owner@example.com"})
	require.NoError(t, err)
	booker, err := users.Save(ctx, &domainuser.User{Name: "booker", Email: "booker@example.com"})
	require.NoError(t, err)

	it, err := items.Save(ctx, &domainitem.Item{
		Name:        "drill",
		Description: "cordless drill",
		Available:   true,
		OwnerID:     owner.ID,
	})
	require.NoError(t, err)

	svc := &Service{
		Bookings: bookings,
		Items:    items,
		Users:    users,
		now:      func() time.Time { return now },
	}
	return &fixture{svc: svc, users: users, items: items, owner: owner, booker: booker, item: it, now: now}
}

func (f *fixture) create(t *testing.T, start, end time.Time) *domainbooking.Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), CreateParams{
		BookerID: f.booker.ID,
		ItemID:   f.item.ID,
		Start:    start,
		End:      end,
	})
	require.NoError(t, err)
	return b
}

func TestCreate_Lifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.create(t, f.now.Add(time.Hour), f.now.Add(2*time.Hour))
	assert.Equal(t, domainbooking.StatusWaiting, b.Status)
	assert.NotEmpty(t, b.ID)

	// owner approves
	approved, err := f.svc.Approve(ctx, f.owner.ID, b.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusApproved, approved.Status)

	// booker sees it with filter ALL
	list, err := f.svc.ListForUser(ctx, f.booker.ID, domainbooking.FilterAll, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)

	// second decision conflicts, regardless of the boolean
	_, err = f.svc.Approve(ctx, f.owner.ID, b.ID, false)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict), "got %v", err)
}

func TestCreate_InvalidWindows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"end_before_start", f.now.Add(2 * time.Hour), f.now.Add(time.Hour)},
		{"start_in_past", f.now.Add(-time.Hour), f.now.Add(time.Hour)},
		{"zero_times", time.Time{}, time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, CreateParams{
				BookerID: f.booker.ID,
				ItemID:   f.item.ID,
				Start:    tc.start,
				End:      tc.end,
			})
			assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput), "got %v", err)
		})
	}
}

func TestCreate_OwnerCannotBookOwnItem(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), CreateParams{
		BookerID: f.owner.ID,
		ItemID:   f.item.ID,
		Start:    f.now.Add(time.Hour),
		End:      f.now.Add(2 * time.Hour),
	})
	// hidden, not forbidden
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "got %v", err)
}

func TestCreate_UnavailableItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.item.Available = false
	_, err := f.items.Save(ctx, f.item)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, CreateParams{
		BookerID: f.booker.ID,
		ItemID:   f.item.ID,
		Start:    f.now.Add(time.Hour),
		End:      f.now.Add(2 * time.Hour),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput), "got %v", err)
}

func TestCreate_MissingEntities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreateParams{
		BookerID: "ghost",
		ItemID:   f.item.ID,
		Start:    f.now.Add(time.Hour),
		End:      f.now.Add(2 * time.Hour),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "got %v", err)

	_, err = f.svc.Create(ctx, CreateParams{
		BookerID: f.booker.ID,
		ItemID:   "ghost",
		Start:    f.now.Add(time.Hour),
		End:      f.now.Add(2 * time.Hour),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "got %v", err)
}

func TestApprove_Authorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.create(t, f.now.Add(time.Hour), f.now.Add(2*time.Hour))

	// the booker is not the owner
	_, err := f.svc.Approve(ctx, f.booker.ID, b.ID, true)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "got %v", err)

	_, err = f.svc.Approve(ctx, f.owner.ID, "missing", true)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "got %v", err)
}

func TestGet_VisibleToBookerAndOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stranger, err := f.users.Save(ctx, &domainuser.User{Name: "stranger", Email: "stranger@example.com"})
	require.NoError(t, err)

	b := f.create(t, f.now.Add(time.Hour), f.now.Add(2*time.Hour))

	got, err := f.svc.Get(ctx, f.booker.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	got, err = f.svc.Get(ctx, f.owner.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = f.svc.Get(ctx, stranger.ID, b.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "got %v", err)
}

func TestList_FilterShapes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	waiting := f.create(t, f.now.Add(3*time.Hour), f.now.Add(4*time.Hour))
	rejected := f.create(t, f.now.Add(5*time.Hour), f.now.Add(6*time.Hour))
	_, err := f.svc.Approve(ctx, f.owner.ID, rejected.ID, false)
	require.NoError(t, err)

	all, err := f.svc.ListForUser(ctx, f.booker.ID, domainbooking.FilterAll, 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	// start DESC: the later booking first
	assert.Equal(t, rejected.ID, all[0].ID)
	assert.Equal(t, waiting.ID, all[1].ID)

	future, err := f.svc.ListForUser(ctx, f.booker.ID, domainbooking.FilterFuture, 0, 10)
	require.NoError(t, err)
	assert.Len(t, future, 2)

	w, err := f.svc.ListForUser(ctx, f.booker.ID, domainbooking.FilterWaiting, 0, 10)
	require.NoError(t, err)
	require.Len(t, w, 1)
	assert.Equal(t, waiting.ID, w[0].ID)

	r, err := f.svc.ListForOwner(ctx, f.owner.ID, domainbooking.FilterRejected, 0, 10)
	require.NoError(t, err)
	require.Len(t, r, 1)
	assert.Equal(t, rejected.ID, r[0].ID)

	past, err := f.svc.ListForUser(ctx, f.booker.ID, domainbooking.FilterPast, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestList_PaginationValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListForUser(ctx, f.booker.ID, domainbooking.FilterAll, -1, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput), "got %v", err)

	_, err = f.svc.ListForOwner(ctx, f.owner.ID, domainbooking.FilterAll, 0, 0)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidInput), "got %v", err)

	_, err = f.svc.ListForUser(ctx, "ghost", domainbooking.FilterAll, 0, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "got %v", err)
}
