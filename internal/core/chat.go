package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"learnai.dev/ai-basics/internal/dom"
	"learnai.dev/ai-basics/internal/scheduler"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatEntry is one rendered line of the conversation.
type ChatEntry struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatSession is the chatbot demo. Its log only ever grows.
type ChatSession struct {
	doc     dom.Registry
	sched   scheduler.Scheduler
	matcher *Matcher
	delay   time.Duration
	now     func() time.Time

	log     []ChatEntry
	pending map[scheduler.Handle]struct{}
}

func NewChatSession(doc dom.Registry, sched scheduler.Scheduler, matcher *Matcher, delay time.Duration) *ChatSession {
	return &ChatSession{
		doc:     doc,
		sched:   sched,
		matcher: matcher,
		delay:   delay,
		now:     time.Now,
		pending: make(map[scheduler.Handle]struct{}),
	}
}

// Send posts the contents of the chat input. Blank input is ignored.
func (c *ChatSession) Send() {
	input, ok := c.doc.Find("chat-input")
	if !ok {
		return
	}
	message := strings.TrimSpace(input.Value())
	if message == "" {
		return
	}

	c.AddMessage(message, SenderUser)
	input.SetValue("")

	response := c.matcher.Match(message)
	var h scheduler.Handle
	h = c.sched.After(c.delay, func() {
		delete(c.pending, h)
		c.AddMessage(response, SenderBot)
	})
	c.pending[h] = struct{}{}
}

// Close drops replies that have not been delivered yet.
func (c *ChatSession) Close() {
	for h := range c.pending {
		c.sched.Cancel(h)
	}
	clear(c.pending)
}

// HandleKeypress sends on Enter.
func (c *ChatSession) HandleKeypress(key string) {
	if key == "Enter" {
		c.Send()
	}
}

// AddMessage appends an entry to the log and renders it at the bottom of
// the message list.
func (c *ChatSession) AddMessage(text string, sender Sender) ChatEntry {
	entry := ChatEntry{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: c.now(),
	}
	c.log = append(c.log, entry)

	container, ok := c.doc.Find("chat-messages")
	if !ok {
		return entry
	}

	message := c.doc.Create("div")
	message.AddClass("chat-message")
	message.AddClass(string(sender))

	icon := c.doc.Create("span")
	icon.AddClass("message-icon")
	if sender == SenderUser {
		icon.SetText("👤")
	} else {
		icon.SetText("🤖")
	}
	content := c.doc.Create("div")
	content.AddClass("message-content")
	content.SetText(text)

	message.Append(icon)
	message.Append(content)
	container.Append(message)
	container.ScrollToBottom()
	return entry
}

// Log returns a copy of the conversation so far.
func (c *ChatSession) Log() []ChatEntry {
	return append([]ChatEntry(nil), c.log...)
}

func (c *ChatSession) Len() int { return len(c.log) }

// PendingReplies counts bot replies still waiting on their delay.
func (c *ChatSession) PendingReplies() int { return len(c.pending) }
