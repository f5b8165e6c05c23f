package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"learnai.dev/ai-basics/internal/config"
	"learnai.dev/ai-basics/internal/dom"
	"learnai.dev/ai-basics/internal/scheduler"
)

func newTestPage(t *testing.T) (*Page, *scheduler.Manual, Tables) {
	t.Helper()
	sched := scheduler.NewManual()
	tables := DefaultTables()
	return NewPage(sched, tables, config.DefaultTiming()), sched, tables
}

func activeIDs(doc *dom.Document, selector string) []string {
	var out []string
	for _, el := range doc.FindAll(selector) {
		if el.HasClass("active") {
			if id := el.ID(); id != "" {
				out = append(out, id)
			} else {
				out = append(out, el.Data("tab"))
			}
		}
	}
	return out
}

func TestLayoutStartsOnHome(t *testing.T) {
	p, _, _ := newTestPage(t)
	assert.Equal(t, []string{"home"}, activeIDs(p.Doc, ".tab-content"))
	assert.Equal(t, []string{"nav-home"}, activeIDs(p.Doc, ".nav-item"))
	assert.Len(t, p.Doc.FindAll(".progress-dot"), TrainingSteps)
	assert.Equal(t, 0, p.Chat.Len())
}

func TestNavigateEveryTab(t *testing.T) {
	p, _, _ := newTestPage(t)
	for _, tab := range Tabs {
		p.Doc.ScrollBy(500)
		p.Tabs.Navigate(tab)
		assert.Equal(t, []string{tab}, activeIDs(p.Doc, ".tab-content"))
		assert.Equal(t, []string{"nav-" + tab}, activeIDs(p.Doc, ".nav-item"))
		assert.Equal(t, 0, p.Doc.ScrollY())
	}
}

func TestNavigateIsIdempotent(t *testing.T) {
	p, _, _ := newTestPage(t)
	p.Tabs.Navigate(TabOutput)
	p.Tabs.Navigate(TabOutput)
	assert.Equal(t, []string{TabOutput}, activeIDs(p.Doc, ".tab-content"))
}

func TestNavigateInvalidTabLeavesContent(t *testing.T) {
	p, _, _ := newTestPage(t)
	p.Tabs.Navigate(TabBasics)
	p.Doc.ScrollBy(120)

	for _, bogus := range []string{"nowhere", "chat-input", ""} {
		p.Tabs.Navigate(bogus)
		assert.Equal(t, []string{TabBasics}, activeIDs(p.Doc, ".tab-content"), bogus)
		assert.Empty(t, activeIDs(p.Doc, ".nav-item"), "highlighting follows the requested id")
		assert.Equal(t, 120, p.Doc.ScrollY())
	}
	chatInput := p.Doc.Node("chat-input")
	assert.False(t, chatInput.HasClass("active"))
}

func TestKeyboardShortcuts(t *testing.T) {
	p, _, _ := newTestPage(t)
	p.Dispatch(Event{Type: EventKeydown, Key: "6"})
	active, _ := p.Tabs.Active()
	assert.Equal(t, TabChatbot, active)

	p.Dispatch(Event{Type: EventKeydown, Key: "7"})
	active, _ = p.Tabs.Active()
	assert.Equal(t, TabChatbot, active)

	p.Dispatch(Event{Type: EventKeydown, Target: "chat-input", Key: "3"})
	active, _ = p.Tabs.Active()
	assert.Equal(t, TabChatbot, active, "shortcuts are ignored while an input has focus")

	p.Dispatch(Event{Type: EventKeydown, Key: "3"})
	active, _ = p.Tabs.Active()
	assert.Equal(t, TabInternals, active)
}

func TestShortcutTab(t *testing.T) {
	tab, ok := ShortcutTab("1")
	assert.True(t, ok)
	assert.Equal(t, TabHome, tab)
	tab, ok = ShortcutTab("6")
	assert.True(t, ok)
	assert.Equal(t, TabChatbot, tab)
	for _, key := range []string{"0", "7", "", "12", "a"} {
		_, ok := ShortcutTab(key)
		assert.False(t, ok, key)
	}
}

func TestClickNavItem(t *testing.T) {
	p, _, _ := newTestPage(t)
	p.Dispatch(Event{Type: EventClick, Target: "nav-applications"})
	active, _ := p.Tabs.Active()
	assert.Equal(t, TabApplications, active)
	p.Dispatch(Event{Type: EventClick, Target: "missing"})
	active, _ = p.Tabs.Active()
	assert.Equal(t, TabApplications, active)
}

func TestAppSections(t *testing.T) {
	p, _, _ := newTestPage(t)
	app, _ := p.Apps.Active()
	assert.Equal(t, AppPhysics, app)

	p.Dispatch(Event{Type: EventClick, Target: "app-btn-biology"})
	app, _ = p.Apps.Active()
	assert.Equal(t, AppBiology, app)
	assert.Equal(t, []string{"app-btn-biology"}, activeIDs(p.Doc, ".app-tab-btn"))

	active, _ := p.Tabs.Active()
	assert.Equal(t, TabHome, active, "sections are independent of tabs")

	p.Apps.Show("chemistry")
	_, ok := p.Apps.Active()
	assert.False(t, ok)
	assert.Empty(t, activeIDs(p.Doc, ".app-tab-btn"))
}

func TestPageCloseCancelsTimers(t *testing.T) {
	p, sched, _ := newTestPage(t)
	p.Training.Start()
	p.Doc.Node("user-input").SetValue("water")
	p.Generator.Generate()
	p.Doc.Node("chat-input").SetValue("hello")
	p.Chat.Send()
	require.NotZero(t, sched.Pending())

	p.Close()
	assert.Equal(t, 0, sched.Pending())
	sched.Advance(time.Minute)
	assert.Equal(t, 1, p.Chat.Len())
}
