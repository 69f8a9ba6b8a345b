package ratelimiter

import (
	"testing"
	"time"
)

// TestWaitIfNeeded_UnderLimit は上限以内の呼び出しが待機せず即座に戻ることを検証します。
func TestWaitIfNeeded_UnderLimit(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	start := time.Now()
	for i := 0; i < 5; i++ {
		rl.WaitIfNeeded()
	}
	elapsed := time.Since(start)

	if elapsed > 50*time.Millisecond {
		t.Errorf("calls within the limit should not block, took %v", elapsed)
	}
	if rl.count != 5 {
		t.Errorf("expected count 5, got %d", rl.count)
	}
}

// TestWaitIfNeeded_OverLimit は上限超過時にインターバルの残り時間だけ待機することを検証します。
func TestWaitIfNeeded_OverLimit(t *testing.T) {
	interval := 100 * time.Millisecond
	rl := NewRateLimiter(2, interval)

	rl.WaitIfNeeded()
	rl.WaitIfNeeded()

	// 3回目は上限を超えるため、インターバルが明けるまで待機するはず
	start := time.Now()
	rl.WaitIfNeeded()
	elapsed := time.Since(start)

	if elapsed < 50*time.Millisecond {
		t.Errorf("call over the limit should block until the interval resets, took %v", elapsed)
	}
	if rl.count != 1 {
		t.Errorf("expected count reset to 1 after waiting, got %d", rl.count)
	}
}

// TestWaitIfNeeded_ResetAfterInterval はインターバル経過後にカウントがリセットされることを検証します。
func TestWaitIfNeeded_ResetAfterInterval(t *testing.T) {
	interval := 50 * time.Millisecond
	rl := NewRateLimiter(2, interval)

	rl.WaitIfNeeded()
	rl.WaitIfNeeded()

	time.Sleep(interval + 10*time.Millisecond)

	start := time.Now()
	rl.WaitIfNeeded()
	elapsed := time.Since(start)

	if elapsed > 20*time.Millisecond {
		t.Errorf("call after the interval elapsed should not block, took %v", elapsed)
	}
	if rl.count != 1 {
		t.Errorf("expected count 1 after reset, got %d", rl.count)
	}
}
