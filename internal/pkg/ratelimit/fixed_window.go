package ratelimit

import (
	"context"
	"sync"
	"time"
)

type fixedCounter struct {
	count     int
	startedAt time.Time
}

/*
每個 client 一個固定窗口
窗口交界會有突刺問題
*/
type FixedWindow struct {
	LimiterConfig
	windows map[string]*fixedCounter
	mu      sync.Mutex
}

func NewFixWindow(config *LimiterConfig) *FixedWindow {
	return &FixedWindow{
		LimiterConfig: resolveConfig(config),
		windows:       make(map[string]*fixedCounter),
	}
}

func (w *FixedWindow) Allow(ctx context.Context) bool {
	client := clientFrom(ctx)
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	counter, ok := w.windows[client]
	if !ok {
		if len(w.windows) >= sweepThreshold {
			w.sweep(now)
		}
		counter = &fixedCounter{startedAt: now}
		w.windows[client] = counter
	}
	if now.Sub(counter.startedAt) > w.RefillRate {
		counter.count = 0
		counter.startedAt = now
	}

	if counter.count >= w.Capacity {
		return false
	}
	counter.count++
	return true
}

// sweep 呼叫端需持有鎖
func (w *FixedWindow) sweep(now time.Time) {
	for client, counter := range w.windows {
		if now.Sub(counter.startedAt) > w.RefillRate {
			delete(w.windows, client)
		}
	}
}

func (w *FixedWindow) Stop() {}
