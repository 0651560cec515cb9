package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisClient 介面定義
type RedisClient interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

const tokenBucketScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

-- 取得或初始化 bucket 狀態
local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
local currentTokens = tonumber(bucket[1])
local lastRefill = tonumber(bucket[2])

if currentTokens == nil then
	currentTokens = capacity
	lastRefill = now
end

-- 計算需要補充的 tokens
local elapsedSeconds = (now - lastRefill) / 1000000000
currentTokens = math.min(capacity, currentTokens + elapsedSeconds * rate)

local allowed = 0
if currentTokens >= 1 then
	currentTokens = currentTokens - 1
	allowed = 1
end

redis.call('HSET', key, 'tokens', currentTokens, 'last_refill', now)
redis.call('EXPIRE', key, 60)
return allowed
`

/*
多個實例共用同一個 bucket, 有指定 client 時每個 client 一個 bucket
redis 失敗時放行
*/
type RsBucketToken struct {
	LimiterConfig
	client RedisClient
}

func NewRsBucketToken(client RedisClient, config *LimiterConfig) *RsBucketToken {
	return &RsBucketToken{
		LimiterConfig: resolveConfig(config),
		client:        client,
	}
}

func (r *RsBucketToken) Allow(ctx context.Context) bool {
	result, err := r.client.Eval(
		ctx,
		tokenBucketScript,
		[]string{r.bucketKey(ctx)},
		r.Capacity,
		r.RatePS,
		time.Now().UnixNano(),
	).Int64()

	if err != nil {
		log.Warn().Err(err).Str("key", r.Key).Msg("redis rate limiter unavailable")
		return true
	}

	return result == 1
}

func (r *RsBucketToken) bucketKey(ctx context.Context) string {
	if client := clientFrom(ctx); client != "" {
		return "ratelimit:" + r.Key + ":" + client
	}
	return "ratelimit:" + r.Key
}

func (r *RsBucketToken) Stop() {}
