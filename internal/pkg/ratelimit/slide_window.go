package ratelimit

import (
	"context"
	"sync"
	"time"
)

/*
每個 client 保存窗口內的請求時間
使用鎖實現，高QPS請採用其他窗口策略
*/
type SlideWindow struct {
	LimiterConfig
	windows map[string][]time.Time
	mu      sync.Mutex
}

func NewSlideWindow(config *LimiterConfig) *SlideWindow {
	return &SlideWindow{
		LimiterConfig: resolveConfig(config),
		windows:       make(map[string][]time.Time),
	}
}

func (w *SlideWindow) Allow(ctx context.Context) bool {
	client := clientFrom(ctx)
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.windows[client]; !ok && len(w.windows) >= sweepThreshold {
		w.sweep(now)
	}

	window := w.trim(w.windows[client], now)
	if len(window) >= w.Capacity {
		w.windows[client] = window
		return false
	}
	w.windows[client] = append(window, now)
	return true
}

// trim 移除滑出窗口的請求時間
func (w *SlideWindow) trim(window []time.Time, now time.Time) []time.Time {
	validStart := len(window)
	for i, t := range window {
		if now.Sub(t) < w.RefillRate {
			validStart = i
			break
		}
	}
	return window[validStart:]
}

// sweep 呼叫端需持有鎖
func (w *SlideWindow) sweep(now time.Time) {
	for client, window := range w.windows {
		if len(w.trim(window, now)) == 0 {
			delete(w.windows, client)
		}
	}
}

func (w *SlideWindow) Stop() {}
