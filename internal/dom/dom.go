// Package dom is the rendering host the demo runs against: a small
// in-memory document with element lookup, class toggling, text and value
// mutation, focus and scroll state.
package dom

import (
	"slices"
	"strings"
)

// Element is the capability set the UI components need from a node.
type Element interface {
	ID() string
	Tag() string
	Text() string
	SetText(text string)
	AddClass(name string)
	RemoveClass(name string)
	HasClass(name string) bool
	Data(key string) string
	Value() string
	SetValue(value string)
	Disabled() bool
	SetDisabled(disabled bool)
	Append(child Element)
	Children() []Element
	Clear()
	ScrollToBottom()
}

// Registry finds and creates elements.
type Registry interface {
	Find(id string) (Element, bool)
	// FindAll accepts ".class", "#id" or a bare tag name and returns
	// matches in document order.
	FindAll(selector string) []Element
	Create(tag string) Element
}

type Viewport interface {
	ScrollToTop()
}

// Prompt is a blocking user-facing notice.
type Prompt interface {
	Alert(message string)
}

// Node is the concrete Element held by a Document.
type Node struct {
	id        string
	tag       string
	classes   []string
	data      map[string]string
	text      string
	value     string
	disabled  bool
	scrollTop int
	children  []*Node
	parent    *Node
	doc       *Document
}

func (n *Node) ID() string  { return n.id }
func (n *Node) Tag() string { return n.tag }

// Text returns the node's own text followed by the text of its children,
// like textContent.
func (n *Node) Text() string {
	if len(n.children) == 0 {
		return n.text
	}
	var b strings.Builder
	b.WriteString(n.text)
	for _, c := range n.children {
		b.WriteString(c.Text())
	}
	return b.String()
}

// SetText replaces the content of the node, children included.
func (n *Node) SetText(text string) {
	n.detachChildren()
	n.text = text
}

func (n *Node) AddClass(name string) {
	if name == "" || slices.Contains(n.classes, name) {
		return
	}
	n.classes = append(n.classes, name)
}

func (n *Node) RemoveClass(name string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool { return c == name })
}

func (n *Node) HasClass(name string) bool {
	return slices.Contains(n.classes, name)
}

// Classes returns a copy of the class list in insertion order.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

func (n *Node) Data(key string) string {
	return n.data[key]
}

func (n *Node) SetData(key, value string) {
	if n.data == nil {
		n.data = make(map[string]string)
	}
	n.data[key] = value
}

func (n *Node) Value() string         { return n.value }
func (n *Node) SetValue(value string) { n.value = value }
func (n *Node) Disabled() bool        { return n.disabled }
func (n *Node) SetDisabled(d bool)    { n.disabled = d }

// Append adds child at the end. Elements from another implementation are
// ignored.
func (n *Node) Append(child Element) {
	c, ok := child.(*Node)
	if !ok || c == n {
		return
	}
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
	if n.attached() {
		n.doc.register(c)
	}
}

func (n *Node) Children() []Element {
	out := make([]Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Clear removes all content, like setting innerHTML to "".
func (n *Node) Clear() {
	n.SetText("")
}

// ScrollToBottom moves the scroll offset to the last child.
func (n *Node) ScrollToBottom() {
	n.scrollTop = len(n.children)
}

func (n *Node) ScrollTop() int { return n.scrollTop }

func (n *Node) attached() bool {
	for p := n; p != nil; p = p.parent {
		if p.doc != nil && p == p.doc.root {
			return true
		}
	}
	return false
}

func (n *Node) removeChild(c *Node) {
	n.children = slices.DeleteFunc(n.children, func(x *Node) bool { return x == c })
	c.parent = nil
	if n.doc != nil {
		n.doc.unregister(c)
	}
}

func (n *Node) detachChildren() {
	for _, c := range n.children {
		c.parent = nil
		if n.doc != nil {
			n.doc.unregister(c)
		}
	}
	n.children = nil
}

func (n *Node) matches(selector string) bool {
	switch {
	case strings.HasPrefix(selector, "."):
		return n.HasClass(selector[1:])
	case strings.HasPrefix(selector, "#"):
		return n.id != "" && n.id == selector[1:]
	default:
		return n.tag == selector
	}
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}
