package tui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
	"learnai.dev/ai-basics/internal/core"
	"learnai.dev/ai-basics/internal/dom"
)

// RenderNav draws the tab bar with the shortcut digit before each label.
func RenderNav(snap dom.Snapshot) string {
	nav, ok := snap.Body.Find("nav")
	if !ok {
		return ""
	}
	var parts []string
	for i, item := range nav.Children {
		label := tview.Escape(fmt.Sprintf("%d %s", i+1, item.Text))
		if item.HasClass("active") {
			label = "[black:yellow] " + label + " [-:-]"
		} else {
			label = " " + label + " "
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}

// ActiveSection returns the tab-content section currently shown.
func ActiveSection(snap dom.Snapshot) (dom.NodeSnapshot, bool) {
	content, ok := snap.Body.Find("content")
	if !ok {
		return dom.NodeSnapshot{}, false
	}
	for _, s := range content.Children {
		if s.HasClass("tab-content") && s.HasClass("active") {
			return s, true
		}
	}
	return dom.NodeSnapshot{}, false
}

// RenderContent draws the active tab as tview-tagged text.
func RenderContent(snap dom.Snapshot) string {
	section, ok := ActiveSection(snap)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, c := range section.Children {
		renderNode(&b, c)
	}
	return b.String()
}

func renderNode(b *strings.Builder, n dom.NodeSnapshot) {
	if n.HasClass("hidden") || (n.HasClass("app-section") && !n.HasClass("active")) {
		return
	}
	switch {
	case n.Tag == "h1" || n.Tag == "h2":
		fmt.Fprintf(b, "[yellow::b]%s[-::-]\n\n", tview.Escape(n.Text))
	case n.Tag == "button":
		b.WriteString(button(n) + "\n")
	case n.Tag == "input":
		fmt.Fprintf(b, "[aqua]> %s[-]\n", tview.Escape(n.Value))
	case n.ID == "progress-dots", n.ID == "word-sequence", n.ID == "app-tabs", n.HasClass("chat-message"):
		var parts []string
		for _, c := range n.Children {
			parts = append(parts, inline(c))
		}
		if n.HasClass("chat-message") && n.HasClass(string(core.SenderBot)) {
			b.WriteString("[green]" + strings.Join(parts, " ") + "[-]\n")
		} else {
			b.WriteString(strings.Join(parts, " ") + "\n")
		}
	default:
		if n.Text != "" {
			b.WriteString(tview.Escape(n.Text) + "\n")
		}
		for _, c := range n.Children {
			renderNode(b, c)
		}
	}
}

func inline(n dom.NodeSnapshot) string {
	switch {
	case n.HasClass("progress-dot"):
		if n.HasClass("active") {
			return "●"
		}
		return "○"
	case n.Tag == "button":
		return button(n)
	default:
		return tview.Escape(n.TextContent())
	}
}

func button(n dom.NodeSnapshot) string {
	label := tview.Escape("[" + n.Text + "]")
	switch {
	case n.Disabled:
		return "[gray]" + label + "[-]"
	case n.HasClass("active"):
		return "[::r]" + label + "[::-]"
	}
	return label
}
