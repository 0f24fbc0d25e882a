package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、外部呼び出しの頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiter は、検索エンジンやLLMへの呼び出し頻度を制限します。
// interval あたり limit 回までを許可し、超えた分は次の枠まで待機します。
type RateLimiter struct {
	name     string
	limit    int
	interval time.Duration
	limiter  *rate.Limiter
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(name string, limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &RateLimiter{
		name:     name,
		limit:    limit,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit),
	}
}

// Wait は上限に達している場合に次の枠まで待機します。
// ctx がキャンセルされた場合は予約を取り消してエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	r := rl.limiter.Reserve()
	if !r.OK() {
		return context.DeadlineExceeded
	}
	delay := r.Delay()
	if delay <= 0 {
		return nil
	}

	slog.Debug("rate limit reached, waiting", "limiter", rl.name, "limit", rl.limit, "interval", rl.interval, "delay", delay)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}
