package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Festongithub/onesoko-storefront/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and a RedisCache against it.
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	c := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return c, mr, cleanup
}

func sampleProducts() []domain.Product {
	p := decimal.RequireFromString("19.99")
	return []domain.Product{
		{ID: "a", Name: "clay pot", Price: &p, Stock: 3, Category: "pots"},
		{ID: "b", Name: "woven basket", Stock: 7, Category: "baskets"},
	}
}

func TestGet_Miss(t *testing.T) {
	c, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := c.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSetAndGet(t *testing.T) {
	c, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleProducts()))

	products, err := c.Get(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "a", products[0].ID)
	require.NotNil(t, products[0].Price)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("19.99")))
	assert.Nil(t, products[1].Price)
}

func TestDelete(t *testing.T) {
	c, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleProducts()))
	require.NoError(t, c.Delete(ctx))

	_, err := c.Get(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestGet_CorruptPayload(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(catalogKey, "{not json"))

	_, err := c.Get(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestSet_AppliesTTL(t *testing.T) {
	c, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, c.Set(context.Background(), sampleProducts()))

	mr.FastForward(c.baseTTL + 2*time.Minute)

	_, err := c.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}
