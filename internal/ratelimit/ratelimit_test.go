package ratelimit

import (
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	limiter := New(Config{MaxCalls: 3, Window: time.Minute})

	for i := 0; i < 3; i++ {
		if !limiter.Allow() {
			t.Errorf("call %d should be allowed", i+1)
		}
	}

	if limiter.Allow() {
		t.Error("fourth call within the window should be denied")
	}
}

func TestLimiter_RejectedCallNotRecorded(t *testing.T) {
	limiter := New(Config{MaxCalls: 2, Window: time.Minute})

	limiter.Allow()
	limiter.Allow()
	limiter.Allow() // denied

	if got := limiter.CurrentCalls(); got != 2 {
		t.Errorf("CurrentCalls() = %d, want 2 (denied call must not count)", got)
	}
}

func TestLimiter_WindowExpiry(t *testing.T) {
	limiter := New(Config{MaxCalls: 2, Window: 100 * time.Millisecond})

	limiter.Allow()
	limiter.Allow()
	if limiter.Allow() {
		t.Fatal("third call should be denied")
	}

	time.Sleep(150 * time.Millisecond)

	if !limiter.Allow() {
		t.Error("call after window expiry should be allowed")
	}
	if got := limiter.CurrentCalls(); got != 1 {
		t.Errorf("CurrentCalls() = %d, want 1 after expiry", got)
	}
}

func TestLimiter_Defaults(t *testing.T) {
	limiter := New(Config{})

	if limiter.Limit() != 100 {
		t.Errorf("Limit() = %d, want 100", limiter.Limit())
	}
	if limiter.Window() != time.Minute {
		t.Errorf("Window() = %v, want 1m", limiter.Window())
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := New(Config{MaxCalls: 100, Window: time.Minute})

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 20; j++ {
				limiter.Allow()
			}
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	if got := limiter.CurrentCalls(); got != 100 {
		t.Errorf("CurrentCalls() = %d, want exactly 100 after concurrent access", got)
	}
}
