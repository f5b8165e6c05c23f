package core

import (
	"learnai.dev/ai-basics/internal/config"
	"learnai.dev/ai-basics/internal/dom"
	"learnai.dev/ai-basics/internal/scheduler"
)

// Event types accepted by Page.Dispatch.
const (
	EventClick   = "click"
	EventKeydown = "keydown"
	EventInput   = "input"
)

// Event is a UI event aimed at the element with id Target. An empty target
// means the document body, so a keydown without one clears focus.
type Event struct {
	Type   string `json:"type"`
	Target string `json:"target,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
}

// Page is one rendered copy of the demo: a document plus the components
// that drive it. All methods must run on the UI thread.
type Page struct {
	Doc       *dom.Document
	Tabs      *TabNavigator
	Training  *TrainingSequencer
	Generator *Generator
	Chat      *ChatSession
	Apps      *AppSections
}

// NewPage lays out a fresh document and wires the components to the shared
// tables.
func NewPage(sched scheduler.Scheduler, tables Tables, timing config.Timing) *Page {
	doc := dom.NewDocument()
	BuildLayout(doc)

	return &Page{
		Doc:       doc,
		Tabs:      NewTabNavigator(doc, doc),
		Training:  NewTrainingSequencer(doc, sched, timing.TrainingStep2, timing.TrainingStep3),
		Generator: NewGenerator(doc, doc, sched, NewOutputMatcher(tables.Output), timing.Thinking, timing.WordInterval),
		Chat:      NewChatSession(doc, sched, NewChatMatcher(tables.Chat), timing.ChatReply),
		Apps:      NewAppSections(doc),
	}
}

// Dispatch routes an event to the component that owns its target. Events
// for missing elements are dropped.
func (p *Page) Dispatch(ev Event) {
	switch ev.Type {
	case EventClick:
		p.click(ev.Target)
	case EventKeydown:
		p.keydown(ev.Target, ev.Key)
	case EventInput:
		if el, ok := p.Doc.Find(ev.Target); ok {
			el.SetValue(ev.Value)
			p.Doc.Focus(ev.Target)
		}
	}
}

func (p *Page) click(target string) {
	el, ok := p.Doc.Find(target)
	if !ok || el.Disabled() {
		return
	}
	switch {
	case el.HasClass("nav-item"):
		p.Tabs.Navigate(el.Data("tab"))
	case el.HasClass("app-tab-btn"):
		p.Apps.Show(el.Data("section"))
	case target == startTrainingButtonID:
		p.Training.Start()
	case target == "reset-training-btn":
		p.Training.Reset()
	case target == "generate-btn":
		p.Generator.Generate()
	case target == "chat-send-btn":
		p.Chat.Send()
	case el.Tag() == "input":
		p.Doc.Focus(target)
	}
}

// keydown handles Enter in the chat box and the 1-6 tab shortcuts, which
// only apply while no input has focus.
func (p *Page) keydown(target, key string) {
	if target == "" {
		p.Doc.Blur()
	} else {
		p.Doc.Focus(target)
	}
	if target == "chat-input" {
		p.Chat.HandleKeypress(key)
	}
	if p.Doc.ActiveElement().Tag() == "input" {
		return
	}
	if tab, ok := ShortcutTab(key); ok {
		p.Tabs.Navigate(tab)
	}
}

// Close cancels every timer the page still has scheduled.
func (p *Page) Close() {
	p.Training.cancelPending()
	p.Generator.Cancel()
	p.Chat.Close()
}
