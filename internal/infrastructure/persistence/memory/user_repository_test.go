package memory

import (
	"context"
	"testing"
	"time"

	"profile-api/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(email string, created time.Time) user.User {
	return user.User{ID: uuid.New(), Name: "Ann", Email: email, CreatedAt: created, UpdatedAt: created}
}

func TestUserRepository_EmailUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	now := time.Now().UTC()

	ann := newUser("ann@x.com", now)
	require.NoError(t, repo.Create(ctx, ann))
	assert.ErrorIs(t, repo.Create(ctx, newUser("ANN@x.com", now)), user.ErrEmailTaken)

	bob := newUser("bob@x.com", now)
	require.NoError(t, repo.Create(ctx, bob))

	bob.Email = "ann@x.com"
	assert.ErrorIs(t, repo.Update(ctx, bob), user.ErrEmailTaken)

	// changing email releases the old address
	ann.Email = "ann@y.com"
	require.NoError(t, repo.Update(ctx, ann))
	require.NoError(t, repo.Create(ctx, newUser("ann@x.com", now)))
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	u := newUser("ann@x.com", time.Now().UTC())
	u.Skills = []user.Skill{{ID: uuid.New(), Name: "Go"}}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Skills[0].Name = "mutated"

	again, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go", again.Skills[0].Name)
}

func TestUserRepository_MissingIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, user.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, newUser("a@x.com", time.Now())), user.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), user.ErrNotFound)
}

func TestUserRepository_ListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	second := newUser("b@x.com", base.Add(time.Minute))
	first := newUser("a@x.com", base)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
}
