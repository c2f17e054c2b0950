package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e1zenberg/java-shareit/internal/apperr"
	domainuser "github.com/e1zenberg/java-shareit/internal/domain/user"
	"github.com/e1zenberg/java-shareit/internal/infra/storage/memory"
)

func newService() *Service {
	return &Service{Users: memory.NewUserRepository()}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	u, err := svc.Create(ctx, domainuser.CreateParams{Name: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Name)

	tests := []struct {
		name   string
		params domainuser.CreateParams
		kind   apperr.Kind
	}{
		{"missing name", domainuser.CreateParams{Email: "b@example.com"}, apperr.KindInvalidInput},
		{"missing email", domainuser.CreateParams{Name: "bob"}, apperr.KindInvalidInput},
		{"malformed email", domainuser.CreateParams{Name: "bob", Email: "not-an-email"}, apperr.KindInvalidInput},
		{"duplicate email", domainuser.CreateParams{Name: "bob", Email: "alice@example.com"}, apperr.KindConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.params)
			assert.Equal(t, tc.kind, apperr.KindOf(err))
		})
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	alice, err := svc.Create(ctx, domainuser.CreateParams{Name: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domainuser.CreateParams{Name: "bob", Email: "bob@example.com"})
	require.NoError(t, err)

	// blank fields keep current values
	updated, err := svc.Update(ctx, alice.ID, Patch{Name: "alicia"})
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	updated, err = svc.Update(ctx, alice.ID, Patch{Email: "alicia@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Name)
	assert.Equal(t, "alicia@example.com", updated.Email)

	// re-saving your own email is not a conflict
	_, err = svc.Update(ctx, alice.ID, Patch{Email: "alicia@example.com"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, alice.ID, Patch{Email: "bob@example.com"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Update(ctx, alice.ID, Patch{Email: "broken"})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))

	_, err = svc.Update(ctx, "ghost", Patch{Name: "x"})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGetAllDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	alice, err := svc.Create(ctx, domainuser.CreateParams{Name: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	bob, err := svc.Create(ctx, domainuser.CreateParams{Name: "bob", Email: "bob@example.com"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Email, got.Email)

	_, err = svc.Get(ctx, "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Delete(ctx, bob.ID))
	all, err = svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	// deleting frees the email for reuse
	_, err = svc.Create(ctx, domainuser.CreateParams{Name: "bob", Email: "bob@example.com"})
	require.NoError(t, err)
}
