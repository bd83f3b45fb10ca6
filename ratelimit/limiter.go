package ratelimit

import (
	"sync"
	"time"
)

// Class splits the quota between reads (list, analytics, get) and writes
// (create, update, archive).
type Class string

const (
	ClassRead  Class = "read"
	ClassWrite Class = "write"
)

type key struct {
	owner string
	class Class
}

type window struct {
	start time.Time
	count int
}

// Limiter counts requests per (owner, class) over a fixed 60-second window
// measured from the first request in the window. Entries are created
// lazily and never evicted; a stale entry is just a window that has rolled
// over.
type Limiter struct {
	mu      sync.Mutex
	entries map[key]*window

	length time.Duration
	limits map[Class]int

	now func() time.Time
}

func New(readLimit, writeLimit int) *Limiter {
	return &Limiter{
		entries: make(map[key]*window),
		length:  time.Minute,
		limits: map[Class]int{
			ClassRead:  readLimit,
			ClassWrite: writeLimit,
		},
		now: time.Now,
	}
}

// Allow registers one request and reports whether it fits in the current
// window. The increment and the comparison happen under one lock so
// concurrent requests cannot undercount.
func (l *Limiter) Allow(owner string, class Class) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	k := key{owner: owner, class: class}

	w := l.entries[k]
	if w == nil || now.Sub(w.start) >= l.length {
		w = &window{start: now}
		l.entries[k] = w
	}

	w.count++
	return w.count <= l.limits[class]
}
