package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

/*
所有 client 共用一個 bucket
背景 goroutine 依 RefillRate 週期補充 token
請使用 defer 呼叫 Stop()
*/
type TokenBucket struct {
	LimiterConfig
	current      atomic.Int64
	lastRefilled atomic.Int64
	cancel       chan struct{}
	once         sync.Once //for close background
}

func NewTokenBucket(config *LimiterConfig) *TokenBucket {
	t := &TokenBucket{
		LimiterConfig: resolveConfig(config),
		cancel:        make(chan struct{}),
	}

	t.current.Store(int64(t.Capacity))
	t.lastRefilled.Store(time.Now().UnixNano())
	go t.background()
	return t
}

func (t *TokenBucket) Allow(ctx context.Context) bool {
	for {
		current := t.current.Load()
		if current <= 0 {
			return false
		}
		if t.current.CompareAndSwap(current, current-1) {
			return true
		}
	}
}

// refill 只由 background 呼叫
// 不足一個 token 的時間會保留到下一輪
func (t *TokenBucket) refill(now int64) {
	last := t.lastRefilled.Load()
	tokensToAdd := (now - last) * int64(t.RatePS) / int64(time.Second)
	if tokensToAdd <= 0 {
		return
	}

	for {
		current := t.current.Load()
		newTokens := current + tokensToAdd
		full := newTokens >= int64(t.Capacity)
		if full {
			newTokens = int64(t.Capacity)
		}
		if t.current.CompareAndSwap(current, newTokens) {
			if full {
				t.lastRefilled.Store(now)
			} else {
				t.lastRefilled.Store(last + tokensToAdd*int64(time.Second)/int64(t.RatePS))
			}
			return
		}
	}
}

func (t *TokenBucket) background() {
	ticker := time.NewTicker(t.RefillRate)
	defer ticker.Stop()

	for {
		select {
		case <-t.cancel:
			return
		case <-ticker.C:
			t.refill(time.Now().UnixNano())
		}
	}
}

func (t *TokenBucket) Stop() {
	t.once.Do(func() {
		close(t.cancel)
	})
}
