package repository

import (
	"context"
	"testing"
	"time"

	"pool-market-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUsers_EmailIsUnique(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	require.NoError(t, users.Create(ctx, &UserRecord{User: models.User{ID: "u1", Email: "ana@bazeni.ba"}}))
	err := users.Create(ctx, &UserRecord{User: models.User{ID: "u2", Email: "ANA@bazeni.ba"}})
	assert.ErrorIs(t, err, ErrEmailTaken)

	u, err := users.GetByEmail(ctx, "Ana@Bazeni.ba")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestMemoryUsers_UpdateAndCopies(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()
	require.NoError(t, users.Create(ctx, &UserRecord{User: models.User{ID: "u1", FirstName: "Ana"}, PasswordHash: "h"}))

	u, err := users.GetByID(ctx, "u1")
	require.NoError(t, err)
	u.FirstName = "Changed"

	again, err := users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.FirstName)

	require.NoError(t, users.Update(ctx, u))
	again, err = users.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Changed", again.FirstName)

	assert.ErrorIs(t, users.Update(ctx, &UserRecord{User: models.User{ID: "missing"}}), ErrNotFound)
	_, err = users.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryPools_ListFilters(t *testing.T) {
	ctx := context.Background()
	pools := NewMemoryStore().Pools()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	for _, p := range DemoPools("host", now) {
		require.NoError(t, pools.Create(ctx, &p))
	}
	require.NoError(t, pools.Create(ctx, &models.Pool{ID: "hidden", UserID: "other", City: "Mostar"}))
	require.NoError(t, pools.Create(ctx, &models.Pool{ID: "expired", UserID: "other", City: "Mostar", IsVisible: true, VisibleUntil: &past}))

	all, err := pools.List(ctx, PoolQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 11)
	assert.Equal(t, "1", all[0].ID)

	mostar, err := pools.List(ctx, PoolQuery{City: " mostar ", VisibleOnly: true, Now: now})
	require.NoError(t, err)
	require.Len(t, mostar, 2)
	assert.Equal(t, "Vila Sunce", mostar[0].Title)
	assert.Equal(t, "Mostarska Terasa", mostar[1].Title)

	mine, err := pools.List(ctx, PoolQuery{UserID: "other"})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	count, err := pools.CountByUser(ctx, "host")
	require.NoError(t, err)
	assert.Equal(t, 9, count)
}

func TestMemoryPools_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	pools := NewMemoryStore().Pools()
	require.NoError(t, pools.Create(ctx, &models.Pool{ID: "p1", Title: "Old", Images: []string{"a"}}))

	p, err := pools.GetByID(ctx, "p1")
	require.NoError(t, err)
	p.Images[0] = "mutated"
	p.Title = "New"

	stored, err := pools.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, stored.Images)

	require.NoError(t, pools.Update(ctx, p))
	stored, err = pools.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "New", stored.Title)

	require.NoError(t, pools.Delete(ctx, "p1"))
	assert.ErrorIs(t, pools.Delete(ctx, "p1"), ErrNotFound)
	_, err = pools.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}
