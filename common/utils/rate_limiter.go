package utils

import (
	"sync"
	"time"
)

// RateLimiter 令牌桶
type RateLimiter struct {
	rate       float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

// NewRateLimiter 创建一个新的限流器
// rate: 每秒补充的令牌数
// burst: 桶的容量
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	return &RateLimiter{
		rate:       rate,
		capacity:   float64(burst),
		tokens:     float64(burst),
		lastRefill: time.Now(),
		now:        time.Now,
	}
}

// Allow 取一个令牌，没有时返回 false
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.rate)
	rl.lastRefill = now

	if rl.tokens >= 1.0 {
		rl.tokens -= 1.0
		return true
	}
	return false
}
