package service

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"betpromo/pkg/logger"
	"betpromo/pkg/redis"
)

// Click rate limiting
const (
	ClickLimitWindow   = redis.TTLClickLimit
	ClickLimitRequests = 60 // Max counted clicks per window per IP
)

// trafficService guards the public tracking endpoints: per-IP click rate
// limiting, one counted visit per visitor per day, one counted conversion
// per visitor per partner. Every check fails open: with Redis down or
// absent, traffic is counted rather than dropped.
type trafficService struct {
	redisClient *redis.Client // nil disables all guards
	logger      *logger.Logger
	now         func() time.Time
}

// NewTrafficService creates a new traffic service. A nil Redis client is
// valid and turns every guard into a pass-through.
func NewTrafficService(redisClient *redis.Client, logger *logger.Logger) Traffic {
	return &trafficService{
		redisClient: redisClient,
		logger:      logger,
		now:         time.Now,
	}
}

// AllowClick reports whether a click from this IP should be counted.
func (s *trafficService) AllowClick(ctx context.Context, ipAddress string) bool {
	if s.redisClient == nil {
		return true
	}

	key := s.redisClient.KeyBuilder.KeyClickLimit(hashValue(ipAddress)[:16])
	count, err := s.redisClient.Incr(ctx, key)
	if err != nil {
		s.logger.WithError(err).Warn("Click rate-limit check failed, allowing")
		return true
	}
	if count == 1 {
		if err := s.redisClient.Expire(ctx, key, ClickLimitWindow); err != nil {
			s.logger.WithError(err).Warn("Failed to set click rate-limit expiry")
		}
	}

	allowed := count <= ClickLimitRequests
	if !allowed {
		s.logger.WithField("request_count", count).Warn("Click rate limit exceeded")
	}
	return allowed
}

// FirstVisitToday reports whether this visitor has not yet been counted
// today.
func (s *trafficService) FirstVisitToday(ctx context.Context, ipAddress, userAgent string) bool {
	if s.redisClient == nil {
		return true
	}

	today := s.now().Format("2006-01-02")
	key := s.redisClient.KeyBuilder.KeyVisitorSeen(today, hashValue(ipAddress+"|"+userAgent))
	first, err := s.redisClient.SetNX(ctx, key, 1, redis.TTLVisitorSeen)
	if err != nil {
		s.logger.WithError(err).Warn("Visit dedupe check failed, counting visit")
		return true
	}
	return first
}

// FirstConversion reports whether this visitor has not yet converted on
// this partner.
func (s *trafficService) FirstConversion(ctx context.Context, partnerID, ipAddress, userAgent string) bool {
	if s.redisClient == nil {
		return true
	}

	key := s.redisClient.KeyBuilder.KeyConversionGuard(partnerID, hashValue(ipAddress+"|"+userAgent))
	first, err := s.redisClient.SetNX(ctx, key, 1, redis.TTLConversionGuard)
	if err != nil {
		s.logger.WithError(err).Warn("Conversion guard check failed, counting conversion")
		return true
	}
	return first
}

// hashValue hashes tracking inputs so raw IPs and user agents never reach
// Redis.
func hashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return fmt.Sprintf("%x", hash)
}
