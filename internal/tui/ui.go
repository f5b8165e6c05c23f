// Package tui runs one demo page in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"learnai.dev/ai-basics/internal/core"
	"learnai.dev/ai-basics/internal/dom"
	"learnai.dev/ai-basics/internal/scheduler"
)

const refreshInterval = 100 * time.Millisecond

type keyBinding struct {
	Key         string
	Description string
}

var (
	normalKeybinds = []keyBinding{
		{Key: "1-6", Description: "switch tab"},
		{Key: "i", Description: "type"},
		{Key: "s/r", Description: "start/reset training"},
		{Key: "p/m/b", Description: "physics/math/biology"},
		{Key: "q", Description: "quit"},
	}
	inputKeybinds = []keyBinding{
		{Key: "Enter", Description: "send"},
		{Key: "Esc", Description: "stop typing"},
	}
)

var appKeys = map[rune]string{
	'p': core.AppPhysics,
	'm': core.AppMath,
	'b': core.AppBiology,
}

// frame is what one refresh needs from the page, captured on the loop.
type frame struct {
	snap   dom.Snapshot
	alerts []string
}

type UI struct {
	app         *tview.Application
	navView     *tview.TextView
	contentView *tview.TextView
	inputField  *tview.InputField
	statusView  *tview.TextView
	layout      *tview.Flex

	page      *core.Page
	exec      scheduler.Executor
	inputMode bool
	lastAlert string
}

// New builds the terminal UI around page. Every page access goes through
// exec, the loop that owns the page.
func New(page *core.Page, exec scheduler.Executor) *UI {
	ui := &UI{
		app:  tview.NewApplication(),
		page: page,
		exec: exec,
	}
	ui.setupViews()
	ui.setupHandlers()
	ui.updateStatus()
	return ui
}

func (ui *UI) setupViews() {
	ui.navView = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	ui.contentView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	ui.contentView.SetBorder(true).
		SetTitle("Basics of AI").
		SetTitleAlign(tview.AlignLeft)

	ui.inputField = tview.NewInputField().
		SetLabel("> ").
		SetFieldWidth(0)

	ui.statusView = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)

	ui.layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.navView, 1, 0, false).
		AddItem(ui.contentView, 0, 1, true).
		AddItem(ui.inputField, 1, 0, false).
		AddItem(ui.statusView, 2, 0, false)
}

func (ui *UI) setupHandlers() {
	ui.inputField.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			ui.submit(ui.inputField.GetText())
			ui.inputField.SetText("")
		case tcell.KeyEscape:
			ui.setInputMode(false)
		}
	})
	ui.app.SetInputCapture(ui.handleKey)
}

// handleKey maps terminal keys to page events. It returns nil for keys it
// consumed.
func (ui *UI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if ui.inputMode {
		return event
	}
	r := event.Rune()
	switch {
	case r >= '1' && r <= '6':
		ui.dispatch(core.Event{Type: core.EventKeydown, Key: string(r)})
	case r == 'i':
		ui.setInputMode(true)
	case r == 's':
		ui.dispatch(core.Event{Type: core.EventClick, Target: "start-training-btn"})
	case r == 'r':
		ui.dispatch(core.Event{Type: core.EventClick, Target: "reset-training-btn"})
	case r == 'q':
		ui.app.Stop()
	default:
		section, ok := appKeys[r]
		if !ok {
			return event
		}
		ui.dispatch(core.Event{Type: core.EventClick, Target: "app-btn-" + section})
	}
	return nil
}

// submit feeds typed text to the input of the active tab: the chat box on
// the chatbot tab, the question box on the output tab.
func (ui *UI) submit(text string) {
	ui.exec.Do(func() {
		tab, _ := ui.page.Tabs.Active()
		switch tab {
		case core.TabChatbot:
			ui.page.Dispatch(core.Event{Type: core.EventInput, Target: "chat-input", Value: text})
			ui.page.Dispatch(core.Event{Type: core.EventKeydown, Target: "chat-input", Key: "Enter"})
		case core.TabOutput:
			ui.page.Dispatch(core.Event{Type: core.EventInput, Target: "user-input", Value: text})
			ui.page.Dispatch(core.Event{Type: core.EventClick, Target: "generate-btn"})
		default:
			ui.page.Doc.Alert("Switch to tab 4 or 6 to type.")
		}
	})
}

func (ui *UI) dispatch(ev core.Event) {
	ui.exec.Do(func() { ui.page.Dispatch(ev) })
}

func (ui *UI) setInputMode(on bool) {
	ui.inputMode = on
	if on {
		ui.app.SetFocus(ui.inputField)
	} else {
		ui.dispatch(core.Event{Type: core.EventKeydown, Key: "Escape"})
		ui.app.SetFocus(ui.contentView)
	}
	ui.updateStatus()
}

func (ui *UI) capture() frame {
	var f frame
	ui.exec.Do(func() {
		f.alerts = ui.page.Doc.DrainAlerts()
		f.snap = ui.page.Doc.Snapshot()
	})
	return f
}

func (ui *UI) draw(f frame) {
	ui.navView.SetText(RenderNav(f.snap))
	ui.contentView.SetText(RenderContent(f.snap))
	if len(f.alerts) > 0 {
		ui.lastAlert = f.alerts[len(f.alerts)-1]
		ui.updateStatus()
	}
}

func (ui *UI) updateStatus() {
	binds := normalKeybinds
	if ui.inputMode {
		binds = inputKeybinds
	}
	var parts []string
	for _, bind := range binds {
		parts = append(parts, fmt.Sprintf("[green]%s[white]:%s", bind.Key, bind.Description))
	}
	ui.statusView.Clear()
	fmt.Fprint(ui.statusView, strings.Join(parts, "  "))
	if ui.lastAlert != "" {
		fmt.Fprintf(ui.statusView, "\n[red]%s[-]", tview.Escape(ui.lastAlert))
	}
}

// Run blocks until the user quits.
func (ui *UI) Run() error {
	stop := make(chan struct{})
	defer close(stop)

	ui.draw(ui.capture())
	go func() {
		ticker := time.NewTicker(refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				f := ui.capture()
				ui.app.QueueUpdateDraw(func() { ui.draw(f) })
			}
		}
	}()

	return ui.app.SetRoot(ui.layout, true).SetFocus(ui.contentView).Run()
}
