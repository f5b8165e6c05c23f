package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordSequence(p *Page) []string {
	var out []string
	for _, w := range p.Doc.Node("word-sequence").Children() {
		out = append(out, w.Text())
	}
	return out
}

func TestGenerateEmptyInputAlerts(t *testing.T) {
	p, sched, _ := newTestPage(t)
	for _, input := range []string{"", "   \t "} {
		p.Doc.Node("user-input").SetValue(input)
		p.Generator.Generate()
	}
	assert.Equal(t, []string{EmptyInputAlert, EmptyInputAlert}, p.Doc.Alerts())
	assert.Equal(t, 0, sched.Pending())
	assert.Equal(t, "", p.Doc.Node("stage-input").Text())
	assert.True(t, p.Doc.Node("word-demo").HasClass("hidden"))
}

func TestGenerateTypesMatchedResponse(t *testing.T) {
	p, sched, tables := newTestPage(t)
	dna, _ := tables.Output.Get("dna")
	words := SplitWords(dna)

	p.Doc.Node("user-input").SetValue("  What is DNA?  ")
	p.Generator.Generate()

	assert.Equal(t, "What is DNA?", p.Doc.Node("stage-input").Text())
	assert.Equal(t, ThinkingStatus, p.Doc.Node("stage-thinking").Text())
	assert.False(t, p.Doc.Node("word-demo").HasClass("hidden"))
	assert.Empty(t, wordSequence(p))

	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, words[:1], wordSequence(p))
	assert.Equal(t, words[0], p.Doc.Node("typing-output").Text())

	sched.Advance(400 * time.Millisecond)
	assert.Equal(t, FoundStatus, p.Doc.Node("stage-thinking").Text())
	assert.Equal(t, words[:5], wordSequence(p))

	sched.Advance(time.Duration(len(words)-5) * 100 * time.Millisecond)
	assert.Equal(t, words, wordSequence(p))
	assert.Equal(t, dna, p.Doc.Node("typing-output").Text())
	assert.True(t, p.Generator.Running(), "done status lands on the tick after the last word")

	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, DoneStatus, p.Doc.Node("stage-thinking").Text())
	assert.False(t, p.Generator.Running())
	assert.Equal(t, 0, sched.Pending())
}

func TestGenerateFallsBackToDefault(t *testing.T) {
	p, sched, tables := newTestPage(t)
	def, _ := tables.Output.Get(DefaultKeyword)

	p.Doc.Node("user-input").SetValue("How do rainbows form?")
	p.Generator.Generate()
	sched.Advance(time.Minute)
	assert.Equal(t, def, p.Doc.Node("typing-output").Text())
	assert.Equal(t, SplitWords(def), wordSequence(p))
}

func TestGeneratePreservesEmptyTokens(t *testing.T) {
	p, sched, tables := newTestPage(t)
	tables.Output.Set("spaces", "a  b")

	p.Doc.Node("user-input").SetValue("spaces")
	p.Generator.Generate()
	sched.Advance(time.Second)
	assert.Equal(t, []string{"a", "", "b"}, wordSequence(p))
	assert.Equal(t, "a  b", p.Doc.Node("typing-output").Text())
}

func TestGenerateRestartCancelsPreviousAnimation(t *testing.T) {
	p, sched, tables := newTestPage(t)
	water, _ := tables.Output.Get("water")

	p.Doc.Node("user-input").SetValue("gravity")
	p.Generator.Generate()
	sched.Advance(350 * time.Millisecond)
	require.Len(t, wordSequence(p), 3)

	p.Doc.Node("user-input").SetValue("water")
	p.Generator.Generate()
	assert.Equal(t, ThinkingStatus, p.Doc.Node("stage-thinking").Text())
	assert.Empty(t, wordSequence(p))

	// The first run's status update would have fired at 500ms.
	sched.Advance(200 * time.Millisecond)
	assert.Equal(t, ThinkingStatus, p.Doc.Node("stage-thinking").Text())

	sched.Advance(time.Minute)
	assert.Equal(t, water, p.Doc.Node("typing-output").Text())
	assert.Equal(t, SplitWords(water), wordSequence(p))
}

func TestGenerateClickDispatch(t *testing.T) {
	p, sched, tables := newTestPage(t)
	atom, _ := tables.Output.Get("atom")
	p.Dispatch(Event{Type: EventInput, Target: "user-input", Value: "ATOMS"})
	p.Dispatch(Event{Type: EventClick, Target: "generate-btn"})
	sched.Advance(time.Minute)
	assert.Equal(t, atom, p.Doc.Node("typing-output").Text())
}
