package ratelimit

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidLimitType    = errors.New("invalid rate limit type")
	ErrRedisClientRequired = errors.New("redis client is required")
)

type RateLimitType string

var (
	FixedWindowType = RateLimitType("fixed_window")
	TokenBucketType = RateLimitType("token_bucket")
	SlideWindowType = RateLimitType("slide_window")
	RedisBucketType = RateLimitType("redis_bucket")
)

type ILimiter interface {
	Allow(ctx context.Context) bool
	Stop()
}

// NewLimiter 依類型建立限流器, redis_bucket 需要 client
func NewLimiter(rateLimitType RateLimitType, config *LimiterConfig, client RedisClient) (ILimiter, error) {
	switch rateLimitType {
	case FixedWindowType:
		return NewFixWindow(config), nil
	case TokenBucketType:
		return NewTokenBucket(config), nil
	case SlideWindowType:
		return NewSlideWindow(config), nil
	case RedisBucketType:
		if client == nil {
			return nil, ErrRedisClientRequired
		}
		return NewRsBucketToken(client, config), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidLimitType, rateLimitType)
	}
}

var (
	_ ILimiter = (*FixedWindow)(nil)
	_ ILimiter = (*TokenBucket)(nil)
	_ ILimiter = (*SlideWindow)(nil)
	_ ILimiter = (*RsBucketToken)(nil)
)
