package ratelimit

import (
	"context"
	"time"
)

type LimiterConfig struct {
	Key        string
	Capacity   int
	RatePS     int           // tokens/秒
	RefillRate time.Duration // 補充時間間隔, 固定/滑動窗口為窗口大小
}

func GetDefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Key:        "global",
		Capacity:   100,
		RatePS:     100,
		RefillRate: time.Second,
	}
}

func resolveConfig(config *LimiterConfig) LimiterConfig {
	if config == nil {
		return GetDefaultLimiterConfig()
	}
	return *config
}

type clientKey struct{}

// WithClient 指定限流對象(例如 client IP), 未指定時共用同一個額度
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, clientKey{}, client)
}

func clientFrom(ctx context.Context) string {
	client, _ := ctx.Value(clientKey{}).(string)
	return client
}

// 窗口數量超過此值時清除已過期的窗口
const sweepThreshold = 1024
