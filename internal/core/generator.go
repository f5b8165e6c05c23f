package core

import (
	"strings"
	"time"

	"learnai.dev/ai-basics/internal/dom"
	"learnai.dev/ai-basics/internal/scheduler"
)

const (
	EmptyInputAlert = "Please type something first!"

	ThinkingStatus = "Looking at learned patterns..."
	FoundStatus    = "Found patterns! Generating response..."
	DoneStatus     = "Done! Response generated."
)

// Generator runs the output demo: it matches the prompt against the output
// table and types the response out word by word.
type Generator struct {
	doc      dom.Registry
	prompt   dom.Prompt
	sched    scheduler.Scheduler
	matcher  *Matcher
	thinking time.Duration
	interval time.Duration

	statusTimer scheduler.Handle
	typingTimer scheduler.Handle
}

func NewGenerator(doc dom.Registry, prompt dom.Prompt, sched scheduler.Scheduler, matcher *Matcher, thinking, interval time.Duration) *Generator {
	return &Generator{
		doc:      doc,
		prompt:   prompt,
		sched:    sched,
		matcher:  matcher,
		thinking: thinking,
		interval: interval,
	}
}

// Generate reads the prompt from the user-input field. A blank prompt raises
// an alert and nothing else happens. Starting a new generation cancels the
// previous one.
func (g *Generator) Generate() {
	input := ""
	if el, ok := g.doc.Find("user-input"); ok {
		input = strings.TrimSpace(el.Value())
	}
	if input == "" {
		g.prompt.Alert(EmptyInputAlert)
		return
	}
	g.Cancel()

	g.setText("stage-input", input)
	g.setText("stage-thinking", ThinkingStatus)

	response := g.matcher.Match(input)

	output, _ := g.doc.Find("typing-output")
	if output != nil {
		output.SetText("")
	}
	if demo, ok := g.doc.Find("word-demo"); ok {
		demo.RemoveClass("hidden")
	}
	sequence, _ := g.doc.Find("word-sequence")
	if sequence != nil {
		sequence.Clear()
	}

	g.statusTimer = g.sched.After(g.thinking, func() {
		g.statusTimer = 0
		g.setText("stage-thinking", FoundStatus)
	})

	words := SplitWords(response)
	current := 0
	g.typingTimer = g.sched.Every(g.interval, func() {
		if current < len(words) {
			if output != nil {
				sep := ""
				if current > 0 {
					sep = " "
				}
				output.SetText(output.Text() + sep + words[current])
			}
			if sequence != nil {
				span := g.doc.Create("span")
				span.AddClass("word")
				span.SetText(words[current])
				sequence.Append(span)
			}
			current++
			return
		}
		g.sched.Cancel(g.typingTimer)
		g.typingTimer = 0
		g.setText("stage-thinking", DoneStatus)
	})
}

// Cancel stops an in-flight generation, leaving the display as it is.
func (g *Generator) Cancel() {
	if g.statusTimer != 0 {
		g.sched.Cancel(g.statusTimer)
		g.statusTimer = 0
	}
	if g.typingTimer != 0 {
		g.sched.Cancel(g.typingTimer)
		g.typingTimer = 0
	}
}

// Running reports whether words are still being revealed.
func (g *Generator) Running() bool { return g.typingTimer != 0 }

func (g *Generator) setText(id, text string) {
	if el, ok := g.doc.Find(id); ok {
		el.SetText(text)
	}
}

// SplitWords splits on single spaces without collapsing runs, so "" yields
// one empty word and "a  b" yields an empty word between a and b.
func SplitWords(s string) []string {
	return strings.Split(s, " ")
}
