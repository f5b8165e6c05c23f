package core

import (
	"strings"

	"learnai.dev/ai-basics/internal/dom"
)

const (
	AppPhysics = "physics"
	AppMath    = "math"
	AppBiology = "biology"
)

var AppSectionIDs = []string{AppPhysics, AppMath, AppBiology}

// AppSections switches the sub-sections of the applications tab. It is
// independent of the tab navigator.
type AppSections struct {
	doc dom.Registry
}

func NewAppSections(doc dom.Registry) *AppSections {
	return &AppSections{doc: doc}
}

// Show highlights every button whose label mentions section and activates
// the app-<section> container when it exists.
func (a *AppSections) Show(section string) {
	for _, btn := range a.doc.FindAll(".app-tab-btn") {
		btn.RemoveClass("active")
		if strings.Contains(strings.ToLower(btn.Text()), section) {
			btn.AddClass("active")
		}
	}

	for _, sec := range a.doc.FindAll(".app-section") {
		sec.RemoveClass("active")
	}

	if target, ok := a.doc.Find("app-" + section); ok {
		target.AddClass("active")
	}
}

func (a *AppSections) Active() (string, bool) {
	for _, sec := range a.doc.FindAll(".app-section") {
		if sec.HasClass("active") {
			return strings.TrimPrefix(sec.ID(), "app-"), true
		}
	}
	return "", false
}
