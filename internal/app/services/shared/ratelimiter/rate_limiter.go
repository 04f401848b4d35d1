package ratelimiter

import (
	"class-registration-service/internal/app/contracts"
	"class-registration-service/internal/pkg/constvars"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultWindow = time.Minute

// resourceLimiter is a fixed window counter stored in Redis. The counter key
// expires one second after its window closes.
type resourceLimiter struct {
	redis contracts.RedisRepository
	log   *zap.Logger
}

func NewResourceLimiter(redis contracts.RedisRepository, log *zap.Logger) contracts.ResourceLimiter {
	return &resourceLimiter{redis: redis, log: log}
}

// Allow counts one hit for in.Resource. A non-positive quota disables the
// limit. When the quota is spent RetryAfter runs to the next window start.
func (l *resourceLimiter) Allow(ctx context.Context, in *contracts.LimitInput) (*contracts.LimitResult, error) {
	if in == nil {
		return &contracts.LimitResult{}, errors.New("nil limiter input")
	}
	if in.MaxQuota <= 0 {
		return &contracts.LimitResult{Allowed: true}, nil
	}

	window := in.Window
	if window < time.Second {
		window = defaultWindow
	}
	resource := strings.ToLower(strings.TrimSpace(in.Resource))
	group := strings.ToLower(strings.TrimSpace(in.Group))
	if resource == "" || group == "" {
		return &contracts.LimitResult{RetryAfter: window}, nil
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	windowSec := int64(window / time.Second)
	windowID := now.Unix() / windowSec
	key := fmt.Sprintf(constvars.RedisKeyRateLimit, group, resource, windowID)

	count, err := l.redis.IncrementWithTTL(ctx, key, window+time.Second)
	if err != nil {
		l.log.Error("resourceLimiter.Allow increment failed",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return &contracts.LimitResult{}, err
	}

	if count > in.MaxQuota {
		nextWindow := time.Unix((windowID+1)*windowSec, 0)
		return &contracts.LimitResult{RetryAfter: nextWindow.Sub(now) + time.Second}, nil
	}
	return &contracts.LimitResult{Allowed: true}, nil
}
