package ratelimit

import (
	"sync"
	"time"
)

// Limiter - процесс-wide sliding window. Создаётся один раз на старте и
// инжектится в HTTP-слой; никакого глобального состояния.
type Limiter struct {
	mu     sync.Mutex
	calls  []time.Time
	limit  int
	window time.Duration
}

type Config struct {
	MaxCalls int
	Window   time.Duration
}

func New(cfg Config) *Limiter {
	limit := cfg.MaxCalls
	if limit <= 0 {
		limit = 100
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}

	return &Limiter{
		limit:  limit,
		window: window,
	}
}

// Allow проверяет и записывает вызов одной критической секцией: отклонённый
// вызов в окно не попадает. Протухшие отметки вычищаются лениво на каждом вызове.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.prune(now)

	if len(l.calls) >= l.limit {
		return false
	}

	l.calls = append(l.calls, now)
	return true
}

// CurrentCalls возвращает число вызовов в текущем окне (для /health).
func (l *Limiter) CurrentCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(time.Now())
	return len(l.calls)
}

func (l *Limiter) Limit() int { return l.limit }

func (l *Limiter) Window() time.Duration { return l.window }

// prune оставляет только отметки внутри окна; вызывать под mu.
// Отметки монотонно неубывающие, так что срез всегда остаётся упорядоченным.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	fresh := l.calls[:0] // reuse underlying array
	for _, t := range l.calls {
		if t.After(cutoff) {
			fresh = append(fresh, t)
		}
	}
	l.calls = fresh
}
