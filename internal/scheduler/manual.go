package scheduler

import (
	"sync"
	"time"
)

// Manual is a virtual clock for tests. Nothing fires until Advance is
// called; due timers then fire in scheduled-time order, ties broken by the
// order in which they were scheduled.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	next   Handle
	seq    uint64
	timers map[Handle]*manualTimer
}

type manualTimer struct {
	at       time.Duration
	interval time.Duration
	seq      uint64
	fn       func()
}

func NewManual() *Manual {
	return &Manual{timers: make(map[Handle]*manualTimer)}
}

// Do runs fn inline; tests drive the page from a single goroutine.
func (m *Manual) Do(fn func()) { fn() }

func (m *Manual) After(d time.Duration, fn func()) Handle {
	return m.schedule(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		d = time.Millisecond
	}
	return m.schedule(d, d, fn)
}

func (m *Manual) Cancel(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.timers, h)
}

func (m *Manual) schedule(d, interval time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	m.seq++
	m.timers[m.next] = &manualTimer{at: m.now + max(d, 0), interval: interval, seq: m.seq, fn: fn}
	return m.next
}

// Advance moves the clock forward by d, firing every timer that falls due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	for {
		h, t := m.earliest(target)
		if t == nil {
			break
		}
		m.now = t.at
		if t.interval > 0 {
			m.seq++
			t.at += t.interval
			t.seq = m.seq
		} else {
			delete(m.timers, h)
		}
		m.mu.Unlock()
		t.fn()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

// Now is the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Manual) earliest(limit time.Duration) (Handle, *manualTimer) {
	var (
		bestH Handle
		best  *manualTimer
	)
	for h, t := range m.timers {
		if t.at > limit {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			bestH, best = h, t
		}
	}
	return bestH, best
}
