package core

import "learnai.dev/ai-basics/internal/dom"

// Tab identifiers in keyboard-shortcut order.
const (
	TabHome         = "home"
	TabBasics       = "basics"
	TabInternals    = "internals"
	TabOutput       = "output"
	TabApplications = "applications"
	TabChatbot      = "chatbot"
)

var Tabs = []string{TabHome, TabBasics, TabInternals, TabOutput, TabApplications, TabChatbot}

// ShortcutTab maps the keys "1" to "6" onto tab ids.
func ShortcutTab(key string) (string, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '6' {
		return "", false
	}
	return Tabs[key[0]-'1'], true
}

// TabNavigator keeps exactly one tab container active.
type TabNavigator struct {
	doc      dom.Registry
	viewport dom.Viewport
}

func NewTabNavigator(doc dom.Registry, viewport dom.Viewport) *TabNavigator {
	return &TabNavigator{doc: doc, viewport: viewport}
}

// Navigate activates tabID. Nav highlighting always follows tabID, so an
// id without a matching container leaves every nav item dark while the
// content display and scroll position stay as they were.
func (n *TabNavigator) Navigate(tabID string) {
	for _, item := range n.doc.FindAll(".nav-item") {
		item.RemoveClass("active")
		if item.Data("tab") == tabID {
			item.AddClass("active")
		}
	}

	target, ok := n.doc.Find(tabID)
	if !ok || !target.HasClass("tab-content") {
		return
	}
	for _, content := range n.doc.FindAll(".tab-content") {
		content.RemoveClass("active")
	}
	target.AddClass("active")
	n.viewport.ScrollToTop()
}

// Active returns the id of the active tab container, if any.
func (n *TabNavigator) Active() (string, bool) {
	for _, content := range n.doc.FindAll(".tab-content") {
		if content.HasClass("active") {
			return content.ID(), true
		}
	}
	return "", false
}
