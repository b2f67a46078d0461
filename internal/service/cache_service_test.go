package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"betpromo/internal/domain"
	"betpromo/pkg/redis"
)

func setupCacheService(t *testing.T) (*miniredis.Miniredis, *CacheService, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)

	return mr, NewCacheService(client, zap.NewNop()), client
}

func samplePartners() []domain.Partner {
	return []domain.Partner{
		{ID: "p-1", Name: "1xBet", IsActive: true},
		{ID: "p-2", Name: "Betwinner", IsActive: true},
	}
}

func TestActivePartnersCacheMissServesSnapshot(t *testing.T) {
	_, cache, _ := setupCacheService(t)

	snapshotCalls := 0
	data, err := cache.ActivePartnersWithCache(context.Background(), func() []domain.Partner {
		snapshotCalls++
		return samplePartners()
	})
	require.NoError(t, err)
	assert.Equal(t, 1, snapshotCalls)

	var partners []domain.Partner
	require.NoError(t, json.Unmarshal(data, &partners))
	assert.Len(t, partners, 2)
	assert.Equal(t, "1xBet", partners[0].Name)
}

func TestActivePartnersCacheHitSkipsSnapshot(t *testing.T) {
	mr, cache, client := setupCacheService(t)

	cached, err := json.Marshal(samplePartners())
	require.NoError(t, err)
	mr.Set(client.KeyBuilder.KeyPartnersActive(), string(cached))

	snapshotCalls := 0
	data, err := cache.ActivePartnersWithCache(context.Background(), func() []domain.Partner {
		snapshotCalls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, snapshotCalls)
	assert.JSONEq(t, string(cached), string(data))
}

func TestActivePartnersSurvivesRedisOutage(t *testing.T) {
	mr, cache, _ := setupCacheService(t)
	mr.Close()

	data, err := cache.ActivePartnersWithCache(context.Background(), func() []domain.Partner {
		return samplePartners()
	})
	require.NoError(t, err)

	var partners []domain.Partner
	require.NoError(t, json.Unmarshal(data, &partners))
	assert.Len(t, partners, 2)
}

func TestActivePartnersWithoutRedis(t *testing.T) {
	cache := NewCacheService(nil, zap.NewNop())

	data, err := cache.ActivePartnersWithCache(context.Background(), func() []domain.Partner {
		return samplePartners()
	})
	require.NoError(t, err)

	var partners []domain.Partner
	require.NoError(t, json.Unmarshal(data, &partners))
	assert.Len(t, partners, 2)
}

func TestInvalidatePartners(t *testing.T) {
	mr, cache, client := setupCacheService(t)

	key := client.KeyBuilder.KeyPartnersActive()
	mr.Set(key, `[{"id":"p-1"}]`)

	cache.InvalidatePartners()

	// The delete is fire and forget
	assert.Eventually(t, func() bool {
		return !mr.Exists(key)
	}, time.Second, 10*time.Millisecond)
}

func TestCacheHealthCheck(t *testing.T) {
	mr, cache, _ := setupCacheService(t)

	assert.NoError(t, cache.HealthCheck(context.Background()))

	mr.Close()
	assert.Error(t, cache.HealthCheck(context.Background()))

	// Without Redis the cache layer is trivially healthy
	assert.NoError(t, NewCacheService(nil, zap.NewNop()).HealthCheck(context.Background()))
}
