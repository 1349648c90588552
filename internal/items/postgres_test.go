package items

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedBatch(t *testing.T) {
	batch, err := seedBatch(Seed())
	require.NoError(t, err)
	assert.Equal(t, len(Seed())+1, batch.Len())
}

func TestSeedBatch_RejectsBadTimestamp(t *testing.T) {
	bad := []Item{{ID: 1, Name: "Item A", CreatedAt: "15/01/2024"}}
	_, err := seedBatch(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed item 1")
}

// newPostgresStore connects to MONEBOT_TEST_DATABASE_URL and starts from an
// empty items table. The database must be disposable.
func newPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	url := os.Getenv("MONEBOT_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("MONEBOT_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS items`)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DROP TABLE IF EXISTS items`)
	})

	s := NewPostgresStore(pool)
	require.NoError(t, s.Migrate(ctx))
	return s
}

func TestPostgresStore_MigrateSeedsOnce(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	require.NoError(t, s.Migrate(ctx))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, Seed(), list)
}

func TestPostgresStore_CreateContinuesAfterSeed(t *testing.T) {
	s := newPostgresStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, NewItem{Name: "Item C", Description: "Third"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, first.ID)
	_, err = time.Parse(TimeLayout, first.CreatedAt)
	assert.NoError(t, err)

	second, err := s.Create(ctx, NewItem{Name: "Item D"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, second.ID)

	got, err := s.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	_, err = s.Create(ctx, NewItem{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestPostgresStore_GetMissing(t *testing.T) {
	s := newPostgresStore(t)

	_, err := s.Get(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, s.Ping(context.Background()))
}
