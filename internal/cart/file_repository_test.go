package cart

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Festongithub/onesoko-storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCart(ownerID string) domain.Cart {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Cart{
		OwnerID: ownerID,
		Items: []domain.CartItem{
			{
				ID:        "item-1",
				ProductID: "prod-1",
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("19.99"),
				Stock:     5,
				Name:      "clay pot",
				AddedAt:   now,
				UpdatedAt: now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestFileRepository_RoundTrip(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	saved := testCart("owner-1")
	require.NoError(t, repo.Save(ctx, saved))

	loaded, err := repo.Load(ctx, "owner-1")
	require.NoError(t, err)

	assert.Equal(t, saved.OwnerID, loaded.OwnerID)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, saved.Items[0].ID, loaded.Items[0].ID)
	assert.True(t, saved.Items[0].UnitPrice.Equal(loaded.Items[0].UnitPrice))
}

func TestFileRepository_LoadMissing(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)

	_, err = repo.Load(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestFileRepository_Delete(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testCart("owner-1")))
	require.NoError(t, repo.Delete(ctx, "owner-1"))

	_, err = repo.Load(ctx, "owner-1")
	assert.ErrorIs(t, err, ErrCartNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "owner-1"), ErrCartNotFound)
}

func TestFileRepository_CorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cart-owner-1.json"), []byte("{not json"), 0o644))

	_, err = repo.Load(context.Background(), "owner-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCartNotFound)
}

func TestFileRepository_SanitizesOwnerID(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	require.NoError(t, err)
	ctx := context.Background()

	c := testCart("../../etc/passwd")
	require.NoError(t, repo.Save(ctx, c))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Name(), "/")
}

func TestCorruptSnapshotFallsBackToEmptyCart(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cart-owner-1.json"), []byte("garbage"), 0o644))

	store := NewStore(repo, zap.NewNop())
	t.Cleanup(func() { _ = store.Close() })
	c := store.GetCart(context.Background(), "owner-1")
	assert.Empty(t, c.Items)
}
