package roster_test

import (
	"context"
	"testing"

	"go-geoattend/internal/roster"
	"go-geoattend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRepository_Find(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &roster.Identity{})
	repo := roster.NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, roster.DefaultIdentities))

	t.Run("exact match", func(t *testing.T) {
		identity, err := repo.Find(ctx, "101", "Alice Johnson")
		require.NoError(t, err)
		assert.Equal(t, "HR", identity.Department)
		assert.Equal(t, "HR Manager", identity.Role)
	})

	t.Run("name is case sensitive", func(t *testing.T) {
		_, err := repo.Find(ctx, "101", "alice johnson")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("name must belong to the id", func(t *testing.T) {
		_, err := repo.Find(ctx, "102", "Alice Johnson")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.Find(ctx, "999", "Ghost")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRepository_CountAndFindAll(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &roster.Identity{})
	repo := roster.NewRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repo.CreateBatch(ctx, nil))
	require.NoError(t, repo.CreateBatch(ctx, roster.DefaultIdentities))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(roster.DefaultIdentities), count)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "101", all[0].ID)
	assert.Equal(t, "115", all[len(all)-1].ID)
}

func TestSeed_IsIdempotent(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &roster.Identity{})
	repo := roster.NewRepository(db)
	ctx := context.Background()

	seeded, err := roster.Seed(ctx, repo, roster.DefaultIdentities)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = roster.Seed(ctx, repo, roster.DefaultIdentities)
	require.NoError(t, err)
	assert.False(t, seeded)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 15, count)
}
