package core

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"learnai.dev/ai-basics/internal/config"
	"learnai.dev/ai-basics/internal/dom"
	"learnai.dev/ai-basics/internal/scheduler"
)

// SessionService hosts one Page per visitor. Every page shares the two
// response tables, and every call runs on the executor's UI thread, so the
// pages and tables need no locking of their own.
type SessionService struct {
	exec        scheduler.Executor
	sched       scheduler.Scheduler
	tables      Tables
	customizer  *Customizer
	timing      config.Timing
	maxSessions int
	logger      *zap.Logger

	pages map[string]*Page
}

func NewSessionService(exec scheduler.Executor, sched scheduler.Scheduler, tables Tables, customizer *Customizer, timing config.Timing, maxSessions int, logger *zap.Logger) *SessionService {
	return &SessionService{
		exec:        exec,
		sched:       sched,
		tables:      tables,
		customizer:  customizer,
		timing:      timing,
		maxSessions: maxSessions,
		logger:      logger,
		pages:       make(map[string]*Page),
	}
}

// SessionView is what a client sees of a page after an operation.
type SessionView struct {
	ID              string       `json:"id"`
	ActiveTab       string       `json:"active_tab"`
	ActiveApp       string       `json:"active_app"`
	TrainingStep    int          `json:"training_step"`
	TrainingRunning bool         `json:"training_running"`
	Generating      bool         `json:"generating"`
	Chat            []ChatEntry  `json:"chat"`
	Alerts          []string     `json:"alerts,omitempty"`
	Document        dom.Snapshot `json:"document"`
}

func (s *SessionService) CreateSession() (*SessionView, error) {
	var (
		view *SessionView
		err  error
	)
	s.exec.Do(func() {
		if s.maxSessions > 0 && len(s.pages) >= s.maxSessions {
			err = ErrTooManySessions
			return
		}
		id := uuid.NewString()
		page := NewPage(s.sched, s.tables, s.timing)
		s.pages[id] = page
		s.logger.Info("Session created", zap.String("session", id), zap.Int("sessions", len(s.pages)))
		view = s.view(id, page)
	})
	if view == nil && err == nil {
		err = ErrIncomplete
	}
	return view, err
}

func (s *SessionService) GetSession(id string) (*SessionView, error) {
	return s.withPage(id, func(*Page) {})
}

// DeleteSession discards the page and cancels its timers.
func (s *SessionService) DeleteSession(id string) error {
	var err error
	s.exec.Do(func() {
		page, ok := s.pages[id]
		if !ok {
			err = ErrSessionNotFound
			return
		}
		page.Close()
		delete(s.pages, id)
		s.logger.Info("Session deleted", zap.String("session", id))
	})
	return err
}

func (s *SessionService) Dispatch(id string, ev Event) (*SessionView, error) {
	return s.withPage(id, func(p *Page) {
		s.logger.Debug("Dispatching event",
			zap.String("session", id),
			zap.String("type", ev.Type),
			zap.String("target", ev.Target),
			zap.String("key", ev.Key))
		p.Dispatch(ev)
	})
}

func (s *SessionService) Navigate(id, tabID string) (*SessionView, error) {
	return s.withPage(id, func(p *Page) { p.Tabs.Navigate(tabID) })
}

// Keydown presses key with nothing focused, as a shortcut would.
func (s *SessionService) Keydown(id, key string) (*SessionView, error) {
	return s.Dispatch(id, Event{Type: EventKeydown, Key: key})
}

func (s *SessionService) StartTraining(id string) (*SessionView, error) {
	return s.withPage(id, func(p *Page) { p.Training.Start() })
}

func (s *SessionService) ResetTraining(id string) (*SessionView, error) {
	return s.withPage(id, func(p *Page) { p.Training.Reset() })
}

// Generate types input into the prompt box and runs the output demo.
func (s *SessionService) Generate(id, input string) (*SessionView, error) {
	return s.withPage(id, func(p *Page) {
		p.Dispatch(Event{Type: EventInput, Target: "user-input", Value: input})
		p.Generator.Generate()
	})
}

// SendChat types message into the chat box and presses Enter.
func (s *SessionService) SendChat(id, message string) (*SessionView, error) {
	return s.withPage(id, func(p *Page) {
		p.Dispatch(Event{Type: EventInput, Target: "chat-input", Value: message})
		p.Dispatch(Event{Type: EventKeydown, Target: "chat-input", Key: "Enter"})
	})
}

func (s *SessionService) ShowApp(id, section string) (*SessionView, error) {
	return s.withPage(id, func(p *Page) { p.Apps.Show(section) })
}

func (s *SessionService) AddResponse(table, keyword, response string) error {
	var err error
	s.exec.Do(func() {
		err = s.customizer.Add(table, keyword, response)
	})
	return err
}

func (s *SessionService) ListResponses() ResponseListing {
	var listing ResponseListing
	s.exec.Do(func() {
		listing = s.customizer.ListResponses()
	})
	return listing
}

// Count returns the number of live sessions.
func (s *SessionService) Count() int {
	var n int
	s.exec.Do(func() { n = len(s.pages) })
	return n
}

func (s *SessionService) withPage(id string, fn func(*Page)) (*SessionView, error) {
	var view *SessionView
	var err error
	s.exec.Do(func() {
		page, ok := s.pages[id]
		if !ok {
			err = fmt.Errorf("%w: %s", ErrSessionNotFound, id)
			return
		}
		fn(page)
		view = s.view(id, page)
	})
	if view == nil && err == nil {
		err = fmt.Errorf("%w: session %s", ErrIncomplete, id)
	}
	return view, err
}

// view snapshots the page and hands pending alerts to the caller.
func (s *SessionService) view(id string, p *Page) *SessionView {
	v := &SessionView{
		ID:              id,
		TrainingStep:    p.Training.Step(),
		TrainingRunning: p.Training.Running(),
		Generating:      p.Generator.Running(),
		Chat:            p.Chat.Log(),
		Document:        p.Doc.Snapshot(),
	}
	v.ActiveTab, _ = p.Tabs.Active()
	v.ActiveApp, _ = p.Apps.Active()
	v.Alerts = p.Doc.DrainAlerts()
	return v
}
