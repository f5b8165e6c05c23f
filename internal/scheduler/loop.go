package scheduler

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Loop is the production UI thread. Every callback, timer callbacks
// included, runs on the goroutine executing Run, one at a time. Due timers
// fire in scheduled-time order, ties broken by scheduling order.
type Loop struct {
	tasks  chan func()
	wake   chan struct{}
	done   chan struct{}
	logger *zap.Logger

	mu     sync.Mutex
	next   Handle
	seq    uint64
	timers map[Handle]*loopTimer
	queue  timerQueue
}

type loopTimer struct {
	handle   Handle
	due      time.Time
	interval time.Duration
	seq      uint64
	fn       func()
	index    int
}

func NewLoop(logger *zap.Logger) *Loop {
	return &Loop{
		tasks:  make(chan func(), 256),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: logger,
		timers: make(map[Handle]*loopTimer),
	}
}

// Run processes callbacks until ctx is cancelled. Pending timers are
// dropped on return.
func (l *Loop) Run(ctx context.Context) {
	wakeup := time.NewTimer(time.Hour)
	defer func() {
		wakeup.Stop()
		close(l.done)
		l.mu.Lock()
		clear(l.timers)
		l.queue = nil
		l.mu.Unlock()
	}()
	for {
		l.fireDue()
		if d, ok := l.untilNext(); ok {
			wakeup.Reset(d)
		} else {
			wakeup.Stop()
		}
		select {
		case <-ctx.Done():
			return
		case fn := <-l.tasks:
			l.run(fn)
		case <-l.wake:
		case <-wakeup.C:
		}
	}
}

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("UI callback panicked", zap.Any("panic", r))
		}
	}()
	fn()
}

// Do must not be called from a callback already running on the loop.
func (l *Loop) Do(fn func()) {
	finished := make(chan struct{})
	if !l.post(func() {
		defer close(finished)
		fn()
	}) {
		return
	}
	select {
	case <-finished:
	case <-l.done:
	}
}

func (l *Loop) After(d time.Duration, fn func()) Handle {
	return l.schedule(d, 0, fn)
}

// Every clamps non-positive intervals to one millisecond.
func (l *Loop) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		d = time.Millisecond
	}
	return l.schedule(d, d, fn)
}

func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.timers[h]
	if !ok {
		return
	}
	delete(l.timers, h)
	heap.Remove(&l.queue, t.index)
}

// Pending reports how many timers are scheduled.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

func (l *Loop) schedule(d, interval time.Duration, fn func()) Handle {
	l.mu.Lock()
	l.next++
	l.seq++
	t := &loopTimer{
		handle:   l.next,
		due:      time.Now().Add(max(d, 0)),
		interval: interval,
		seq:      l.seq,
		fn:       fn,
	}
	l.timers[t.handle] = t
	heap.Push(&l.queue, t)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return t.handle
}

// fireDue runs every timer due by now, earliest first. Repeating timers are
// requeued before their callback runs so the callback can cancel them.
func (l *Loop) fireDue() {
	now := time.Now()
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		t := l.queue[0]
		if t.due.After(now) {
			l.mu.Unlock()
			return
		}
		if t.interval > 0 {
			// Missed ticks are dropped, as with time.Ticker.
			t.due = t.due.Add(t.interval)
			if !t.due.After(now) {
				t.due = now.Add(t.interval)
			}
			l.seq++
			t.seq = l.seq
			heap.Fix(&l.queue, t.index)
		} else {
			heap.Pop(&l.queue)
			delete(l.timers, t.handle)
		}
		l.mu.Unlock()
		l.run(t.fn)
	}
}

func (l *Loop) untilNext() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return 0, false
	}
	return max(time.Until(l.queue[0].due), 0), true
}

func (l *Loop) post(fn func()) bool {
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// timerQueue is a min-heap on (due, seq).
type timerQueue []*loopTimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*loopTimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
