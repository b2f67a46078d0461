package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"betpromo/pkg/logger"
	"betpromo/pkg/redis"
)

func setupTrafficService(t *testing.T) (*miniredis.Miniredis, *trafficService) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)

	log, err := logger.New("error", "development")
	require.NoError(t, err)

	svc := NewTrafficService(client, log).(*trafficService)
	svc.now = func() time.Time {
		return time.Date(2026, time.January, 7, 14, 30, 0, 0, time.UTC)
	}
	return mr, svc
}

func TestAllowClickRateLimit(t *testing.T) {
	_, svc := setupTrafficService(t)
	ctx := context.Background()

	for i := 0; i < ClickLimitRequests; i++ {
		assert.True(t, svc.AllowClick(ctx, "203.0.113.10"), "click %d should be allowed", i+1)
	}

	// Request past the limit is dropped
	assert.False(t, svc.AllowClick(ctx, "203.0.113.10"))

	// Other IPs keep their own budget
	assert.True(t, svc.AllowClick(ctx, "203.0.113.11"))
}

func TestAllowClickWindowResets(t *testing.T) {
	mr, svc := setupTrafficService(t)
	ctx := context.Background()

	for i := 0; i < ClickLimitRequests+5; i++ {
		svc.AllowClick(ctx, "203.0.113.10")
	}
	assert.False(t, svc.AllowClick(ctx, "203.0.113.10"))

	mr.FastForward(ClickLimitWindow + time.Minute)
	assert.True(t, svc.AllowClick(ctx, "203.0.113.10"))
}

func TestFirstVisitTodayDedupes(t *testing.T) {
	_, svc := setupTrafficService(t)
	ctx := context.Background()

	assert.True(t, svc.FirstVisitToday(ctx, "203.0.113.10", "Mozilla/5.0"))
	assert.False(t, svc.FirstVisitToday(ctx, "203.0.113.10", "Mozilla/5.0"))

	// Different browser on the same IP counts as a new visitor
	assert.True(t, svc.FirstVisitToday(ctx, "203.0.113.10", "curl/8.0"))
}

func TestFirstVisitResetsNextDay(t *testing.T) {
	_, svc := setupTrafficService(t)
	ctx := context.Background()

	assert.True(t, svc.FirstVisitToday(ctx, "203.0.113.10", "Mozilla/5.0"))
	assert.False(t, svc.FirstVisitToday(ctx, "203.0.113.10", "Mozilla/5.0"))

	// The dedupe key is per calendar day
	svc.now = func() time.Time {
		return time.Date(2026, time.January, 8, 9, 0, 0, 0, time.UTC)
	}
	assert.True(t, svc.FirstVisitToday(ctx, "203.0.113.10", "Mozilla/5.0"))
}

func TestFirstConversionPerPartner(t *testing.T) {
	_, svc := setupTrafficService(t)
	ctx := context.Background()

	assert.True(t, svc.FirstConversion(ctx, "p-1", "203.0.113.10", "Mozilla/5.0"))
	assert.False(t, svc.FirstConversion(ctx, "p-1", "203.0.113.10", "Mozilla/5.0"))

	// Same visitor may still convert on another partner
	assert.True(t, svc.FirstConversion(ctx, "p-2", "203.0.113.10", "Mozilla/5.0"))
}

func TestGuardsFailOpenWithRedisDown(t *testing.T) {
	mr, svc := setupTrafficService(t)
	ctx := context.Background()

	mr.Close()

	assert.True(t, svc.AllowClick(ctx, "203.0.113.10"))
	assert.True(t, svc.FirstVisitToday(ctx, "203.0.113.10", "Mozilla/5.0"))
	assert.True(t, svc.FirstConversion(ctx, "p-1", "203.0.113.10", "Mozilla/5.0"))
}

func TestGuardsPassThroughWithoutRedis(t *testing.T) {
	log, err := logger.New("error", "development")
	require.NoError(t, err)

	svc := NewTrafficService(nil, log)
	ctx := context.Background()

	for i := 0; i < ClickLimitRequests*2; i++ {
		assert.True(t, svc.AllowClick(ctx, "203.0.113.10"))
	}
	assert.True(t, svc.FirstVisitToday(ctx, "203.0.113.10", "Mozilla/5.0"))
	assert.True(t, svc.FirstVisitToday(ctx, "203.0.113.10", "Mozilla/5.0"))
	assert.True(t, svc.FirstConversion(ctx, "p-1", "203.0.113.10", "Mozilla/5.0"))
	assert.True(t, svc.FirstConversion(ctx, "p-1", "203.0.113.10", "Mozilla/5.0"))
}
