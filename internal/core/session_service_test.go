package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"learnai.dev/ai-basics/internal/config"
	"learnai.dev/ai-basics/internal/scheduler"
)

func newTestService(t *testing.T, maxSessions int) (*SessionService, *scheduler.Manual) {
	t.Helper()
	sched := scheduler.NewManual()
	tables := DefaultTables()
	customizer := NewCustomizer(tables, nil, zap.NewNop())
	return NewSessionService(sched, sched, tables, customizer, config.DefaultTiming(), maxSessions, zap.NewNop()), sched
}

func TestSessionLifecycle(t *testing.T) {
	svc, sched := newTestService(t, 0)

	view, err := svc.CreateSession()
	require.NoError(t, err)
	assert.Equal(t, TabHome, view.ActiveTab)
	assert.Equal(t, AppPhysics, view.ActiveApp)
	assert.Equal(t, 1, view.TrainingStep)

	view, err = svc.Navigate(view.ID, TabInternals)
	require.NoError(t, err)
	assert.Equal(t, TabInternals, view.ActiveTab)

	view, err = svc.StartTraining(view.ID)
	require.NoError(t, err)
	assert.True(t, view.TrainingRunning)

	sched.Advance(5 * time.Second)
	view, err = svc.GetSession(view.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, view.TrainingStep)
	assert.False(t, view.TrainingRunning)

	require.NoError(t, svc.DeleteSession(view.ID))
	_, err = svc.GetSession(view.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(view.ID), ErrSessionNotFound)
	assert.Equal(t, 0, svc.Count())
}

func TestSessionsAreIsolatedButShareTables(t *testing.T) {
	svc, sched := newTestService(t, 0)
	a, err := svc.CreateSession()
	require.NoError(t, err)
	b, err := svc.CreateSession()
	require.NoError(t, err)

	_, err = svc.Navigate(a.ID, TabChatbot)
	require.NoError(t, err)
	bView, err := svc.GetSession(b.ID)
	require.NoError(t, err)
	assert.Equal(t, TabHome, bView.ActiveTab)

	require.NoError(t, svc.AddResponse(ChatTableName, "Pluto", "Pluto is a dwarf planet."))
	_, err = svc.SendChat(b.ID, "tell me about pluto")
	require.NoError(t, err)
	sched.Advance(time.Second)
	bView, err = svc.GetSession(b.ID)
	require.NoError(t, err)
	require.Len(t, bView.Chat, 2)
	assert.Equal(t, "Pluto is a dwarf planet.", bView.Chat[1].Text)

	aView, err := svc.GetSession(a.ID)
	require.NoError(t, err)
	assert.Empty(t, aView.Chat)
	assert.Contains(t, svc.ListResponses().Chat, "pluto")
}

func TestSessionAlertsAreDeliveredOnce(t *testing.T) {
	svc, _ := newTestService(t, 0)
	v, err := svc.CreateSession()
	require.NoError(t, err)

	v, err = svc.Generate(v.ID, "  ")
	require.NoError(t, err)
	assert.Equal(t, []string{EmptyInputAlert}, v.Alerts)
	assert.False(t, v.Generating)

	v, err = svc.GetSession(v.ID)
	require.NoError(t, err)
	assert.Empty(t, v.Alerts)
}

func TestSessionGenerateAndShortcuts(t *testing.T) {
	svc, sched := newTestService(t, 0)
	v, err := svc.CreateSession()
	require.NoError(t, err)

	v, err = svc.Keydown(v.ID, "4")
	require.NoError(t, err)
	assert.Equal(t, TabOutput, v.ActiveTab)

	v, err = svc.Generate(v.ID, "Tell me about energy")
	require.NoError(t, err)
	assert.True(t, v.Generating)

	sched.Advance(time.Minute)
	v, err = svc.GetSession(v.ID)
	require.NoError(t, err)
	out, ok := v.Document.Body.Find("typing-output")
	require.True(t, ok)
	energy, _ := DefaultTables().Output.Get("energy")
	assert.Equal(t, energy, out.Text)

	v, err = svc.ShowApp(v.ID, AppMath)
	require.NoError(t, err)
	assert.Equal(t, AppMath, v.ActiveApp)

	v, err = svc.Dispatch(v.ID, Event{Type: EventKeydown, Key: "1"})
	require.NoError(t, err)
	assert.Equal(t, TabHome, v.ActiveTab)
}

func TestSessionLimit(t *testing.T) {
	svc, _ := newTestService(t, 1)
	_, err := svc.CreateSession()
	require.NoError(t, err)
	_, err = svc.CreateSession()
	assert.ErrorIs(t, err, ErrTooManySessions)
}

func TestSessionUnknownID(t *testing.T) {
	svc, _ := newTestService(t, 0)
	_, err := svc.StartTraining("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func newLoopService(t *testing.T, timing config.Timing) (*SessionService, *scheduler.Loop, Tables) {
	t.Helper()
	loop := scheduler.NewLoop(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	t.Cleanup(cancel)

	tables := DefaultTables()
	customizer := NewCustomizer(tables, nil, zap.NewNop())
	return NewSessionService(loop, loop, tables, customizer, timing, 0, zap.NewNop()), loop, tables
}

func TestChatRepliesArriveInSendOrder(t *testing.T) {
	timing := config.DefaultTiming()
	timing.ChatReply = 20 * time.Millisecond
	svc, _, _ := newLoopService(t, timing)

	const n = 30
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("r%02d", i)
		require.NoError(t, svc.AddResponse(ChatTableName, key, "reply "+key))
	}
	view, err := svc.CreateSession()
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err := svc.SendChat(view.ID, fmt.Sprintf("r%02d", i))
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		v, err := svc.GetSession(view.ID)
		return err == nil && len(v.Chat) == 2*n
	}, 5*time.Second, 5*time.Millisecond)

	v, err := svc.GetSession(view.ID)
	require.NoError(t, err)
	var replies []string
	for _, e := range v.Chat {
		if e.Sender == SenderBot {
			replies = append(replies, e.Text)
		}
	}
	require.Len(t, replies, n)
	for i, r := range replies {
		assert.Equal(t, fmt.Sprintf("reply r%02d", i), r)
	}
}

func TestGenerateWithZeroWordIntervalStillTypes(t *testing.T) {
	timing := config.DefaultTiming()
	timing.WordInterval = 0
	timing.Thinking = 0
	svc, _, tables := newLoopService(t, timing)

	view, err := svc.CreateSession()
	require.NoError(t, err)
	got, err := svc.Generate(view.ID, "What is DNA?")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Generating)

	dna, _ := tables.Output.Get("dna")
	require.Eventually(t, func() bool {
		v, err := svc.GetSession(view.ID)
		if err != nil || v.Generating {
			return false
		}
		out, ok := v.Document.Body.Find("typing-output")
		return ok && out.Text == dna
	}, 5*time.Second, 5*time.Millisecond)
}

func TestPanickingOperationReturnsError(t *testing.T) {
	svc, _, _ := newLoopService(t, config.DefaultTiming())
	view, err := svc.CreateSession()
	require.NoError(t, err)

	got, err := svc.withPage(view.ID, func(*Page) { panic("boom") })
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = svc.GetSession(view.ID)
	assert.NoError(t, err, "the loop keeps serving after a panic")
}
