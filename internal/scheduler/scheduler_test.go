package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManualOrdering(t *testing.T) {
	m := NewManual()
	var got []string
	m.After(200*time.Millisecond, func() { got = append(got, "b") })
	m.After(100*time.Millisecond, func() { got = append(got, "a") })
	m.After(200*time.Millisecond, func() { got = append(got, "c") })

	m.Advance(150 * time.Millisecond)
	assert.Equal(t, []string{"a"}, got)
	m.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, m.Pending())
	assert.Equal(t, 200*time.Millisecond, m.Now())
}

func TestManualEveryAndCancel(t *testing.T) {
	m := NewManual()
	ticks := 0
	var h Handle
	h = m.Every(100*time.Millisecond, func() {
		ticks++
		if ticks == 3 {
			m.Cancel(h)
		}
	})
	m.Advance(time.Second)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 0, m.Pending())
}

func TestManualInterleavesTimersFromDifferentActions(t *testing.T) {
	m := NewManual()
	var got []string
	m.Every(100*time.Millisecond, func() { got = append(got, "tick") })
	m.After(250*time.Millisecond, func() { got = append(got, "once") })
	m.Advance(300 * time.Millisecond)
	assert.Equal(t, []string{"tick", "tick", "once", "tick"}, got)
}

func TestManualCallbackSchedulesMore(t *testing.T) {
	m := NewManual()
	fired := false
	m.After(10*time.Millisecond, func() {
		m.After(10*time.Millisecond, func() { fired = true })
	})
	m.Advance(20 * time.Millisecond)
	assert.True(t, fired)
}

func TestManualCancelUnknownIsNoop(t *testing.T) {
	m := NewManual()
	assert.NotPanics(t, func() { m.Cancel(42) })
}

func startLoop(t *testing.T) *Loop {
	t.Helper()
	l := NewLoop(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	t.Cleanup(cancel)
	return l
}

func TestLoopDo(t *testing.T) {
	l := startLoop(t)
	x := 0
	l.Do(func() { x = 1 })
	assert.Equal(t, 1, x)
}

func TestLoopAfterFires(t *testing.T) {
	l := startLoop(t)
	fired := make(chan struct{})
	l.Do(func() {
		l.After(5*time.Millisecond, func() { close(fired) })
	})
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
	assert.Eventually(t, func() bool { return l.Pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestLoopCancelPreventsCallback(t *testing.T) {
	l := startLoop(t)
	var fired atomic.Bool
	l.Do(func() {
		h := l.After(20*time.Millisecond, func() { fired.Store(true) })
		l.Cancel(h)
	})
	time.Sleep(60 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestLoopEveryStopsOnCancel(t *testing.T) {
	l := startLoop(t)
	var ticks atomic.Int32
	var h Handle
	l.Do(func() {
		h = l.Every(2*time.Millisecond, func() {
			if ticks.Add(1) == 3 {
				l.Cancel(h)
			}
		})
	})
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, 2*time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(3), ticks.Load())
}

func TestLoopRecoversFromPanic(t *testing.T) {
	l := startLoop(t)
	l.Do(func() { panic("boom") })
	x := 0
	l.Do(func() { x = 2 })
	assert.Equal(t, 2, x)
}

func TestLoopFiresInScheduledOrder(t *testing.T) {
	l := startLoop(t)
	var got []string
	l.Do(func() {
		l.After(30*time.Millisecond, func() { got = append(got, "a") })
		l.After(10*time.Millisecond, func() { got = append(got, "b") })
		l.After(20*time.Millisecond, func() { got = append(got, "c") })
		l.After(10*time.Millisecond, func() { got = append(got, "d") })
	})
	require.Eventually(t, func() bool { return l.Pending() == 0 }, 2*time.Second, time.Millisecond)

	var snapshot []string
	l.Do(func() { snapshot = append(snapshot, got...) })
	assert.Equal(t, []string{"b", "d", "c", "a"}, snapshot)
}

func TestLoopEqualDelaysKeepCallOrder(t *testing.T) {
	l := startLoop(t)
	var got []int
	for i := 0; i < 30; i++ {
		l.Do(func() {
			l.After(20*time.Millisecond, func() { got = append(got, i) })
		})
	}
	require.Eventually(t, func() bool { return l.Pending() == 0 }, 2*time.Second, time.Millisecond)

	var snapshot []int
	l.Do(func() { snapshot = append(snapshot, got...) })
	require.Len(t, snapshot, 30)
	for i, v := range snapshot {
		assert.Equal(t, i, v)
	}
}

func TestLoopEveryClampsZeroInterval(t *testing.T) {
	l := startLoop(t)
	var ticks atomic.Int32
	var h Handle
	assert.NotPanics(t, func() {
		l.Do(func() {
			h = l.Every(0, func() { ticks.Add(1) })
		})
	})
	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, 2*time.Second, time.Millisecond)
	l.Do(func() { l.Cancel(h) })
	assert.Equal(t, 0, l.Pending())
}

func TestLoopCancelFromOtherTimer(t *testing.T) {
	l := startLoop(t)
	var fired atomic.Bool
	done := make(chan struct{})
	l.Do(func() {
		h := l.After(20*time.Millisecond, func() { fired.Store(true) })
		l.After(5*time.Millisecond, func() { l.Cancel(h) })
		l.After(40*time.Millisecond, func() { close(done) })
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
	assert.False(t, fired.Load())
}
