package request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e1zenberg/java-shareit/internal/apperr"
	domainitem "github.com/e1zenberg/java-shareit/internal/domain/item"
	domainrequest "github.com/e1zenberg/java-shareit/internal/domain/request"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
	"github.com/e1zenberg/java-shareit/internal/infra/storage/memory"
)

type fixture struct {
	svc       *Service
	items     *memory.ItemRepository
	requestor *domainuser.User
	other     *domainuser.User
	clock     *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := memory.NewUserRepository()
	items := memory.NewItemRepository()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	f := &fixture{items: items, clock: &now}
	f.svc = &Service{
		Requests: memory.NewRequestRepository(),
		Items:    items,
		Users:    users,
		now:      func() time.Time { return *f.clock },
	}

	requestor, err := users.Save(ctx, &domainuser.User{Name: "requestor", Email: "req@example.com"})
	require.NoError(t, err)
	other, err := users.Save(ctx, &domainuser.User{Name: "other", Email: "other@example.com"})
	require.NoError(t, err)
	f.requestor = requestor
	f.other = other
	return f
}

func (f *fixture) tick() {
	*f.clock = f.clock.Add(time.Minute)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	r, err := f.svc.Create(ctx, f.requestor.ID, "need a drill")
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, f.requestor.ID, r.RequestorID)
	assert.Equal(t, *f.clock, r.Created)

	_, err = f.svc.Create(ctx, f.requestor.ID, "   ")
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	_, err = f.svc.Create(ctx, "ghost", "need a ladder")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestOwn_NewestFirstWithItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.svc.Create(ctx, f.requestor.ID, "need a drill")
	require.NoError(t, err)
	f.tick()
	second, err := f.svc.Create(ctx, f.requestor.ID, "need a ladder")
	require.NoError(t, err)

	// someone else's request stays out of Own
	f.tick()
	_, err = f.svc.Create(ctx, f.other.ID, "need a saw")
	require.NoError(t, err)

	available := true
	answer, err := domainitem.NewItem(domainitem.CreateParams{
		Name:        "drill",
		Description: "cordless drill",
		Available:   &available,
		OwnerID:     f.other.ID,
		RequestID:   first.ID,
	})
	require.NoError(t, err)
	answer, err = f.items.Save(ctx, answer)
	require.NoError(t, err)

	rows, err := f.svc.Own(ctx, f.requestor.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].Request.ID)
	assert.Equal(t, first.ID, rows[1].Request.ID)

	assert.Empty(t, rows[0].Items)
	require.Len(t, rows[1].Items, 1)
	assert.Equal(t, answer.ID, rows[1].Items[0].ID)

	_, err = f.svc.Own(ctx, "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestOthers_ExcludesCallerAndPages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Create(ctx, f.requestor.ID, "mine")
	require.NoError(t, err)

	var ids []domainrequest.ID
	for _, text := range []string{"saw", "ladder", "wrench"} {
		f.tick()
		r, err := f.svc.Create(ctx, f.other.ID, "need a "+text)
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}

	rows, err := f.svc.Others(ctx, f.requestor.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ids[2], rows[0].Request.ID)
	assert.Equal(t, ids[0], rows[2].Request.ID)

	// the author never sees their own requests here
	rows, err = f.svc.Others(ctx, f.other.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "mine", rows[0].Request.Description)

	rows, err = f.svc.Others(ctx, f.requestor.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, ids[0], rows[0].Request.ID)

	_, err = f.svc.Others(ctx, f.requestor.ID, -1, 10)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	_, err = f.svc.Others(ctx, f.requestor.ID, 0, 0)
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	r, err := f.svc.Create(ctx, f.requestor.ID, "need a drill")
	require.NoError(t, err)

	// any known user may read any request
	got, err := f.svc.Get(ctx, f.other.ID, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.Request.ID)
	assert.Empty(t, got.Items)

	_, err = f.svc.Get(ctx, f.requestor.ID, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = f.svc.Get(ctx, "ghost", r.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
