package core

import "learnai.dev/ai-basics/internal/dom"

var tabLabels = map[string]string{
	TabHome:         "🏠 Home",
	TabBasics:       "📚 AI Basics",
	TabInternals:    "⚙️ How AI Learns",
	TabOutput:       "💬 How AI Answers",
	TabApplications: "🔬 AI in Science",
	TabChatbot:      "🤖 Try a Chatbot",
}

var trainingStepText = [TrainingSteps]string{
	"Step 1: The AI looks at lots of examples, like thousands of pictures of cats and dogs.",
	"Step 2: It finds patterns, like pointy ears and whiskers, and adjusts itself when it guesses wrong.",
	"Step 3: Training is done! The AI can now recognize cats and dogs it has never seen before.",
}

var appSectionText = map[string][2]string{
	AppPhysics: {"🔬 Physics", "AI analyzes experiment data, runs simulations and helps spot new particles."},
	AppMath:    {"📐 Math", "AI solves problems step by step and visualizes functions."},
	AppBiology: {"🧬 Biology", "AI predicts protein structures and helps discover new medicines."},
}

// BuildLayout populates an empty document with the demo's page skeleton.
// The home tab starts active.
func BuildLayout(d *dom.Document) {
	body := d.Root()

	nav := d.NewElement("nav", "nav")
	for _, tab := range Tabs {
		item := d.NewElement("button", "nav-"+tab, "nav-item")
		item.SetData("tab", tab)
		item.SetText(tabLabels[tab])
		nav.Append(item)
	}
	body.Append(nav)

	content := d.NewElement("main", "content")
	for _, tab := range Tabs {
		section := d.NewElement("section", tab, "tab-content")
		switch tab {
		case TabHome:
			section.Append(text(d, "h1", "Basics of AI"))
			section.Append(text(d, "p", "Learn how artificial intelligence works with simple demos. Press 1-6 to switch tabs."))
		case TabBasics:
			section.Append(text(d, "h2", "What is AI?"))
			section.Append(text(d, "p", "AI is a computer program that learns patterns from examples instead of following only fixed rules."))
		case TabInternals:
			buildInternals(d, section)
		case TabOutput:
			buildOutput(d, section)
		case TabApplications:
			buildApplications(d, section)
		case TabChatbot:
			buildChatbot(d, section)
		}
		content.Append(section)
	}
	body.Append(content)

	NewTabNavigator(d, d).Navigate(TabHome)
}

func buildInternals(d *dom.Document, section *dom.Node) {
	section.Append(text(d, "h2", "How AI Learns"))

	btn := d.NewElement("button", startTrainingButtonID)
	btn.SetText(StartTrainingLabel)
	section.Append(btn)
	reset := d.NewElement("button", "reset-training-btn")
	reset.SetText("↺ Reset")
	section.Append(reset)

	for i := 1; i <= TrainingSteps; i++ {
		step := d.NewElement("div", stepID(i), "sim-step")
		step.SetText(trainingStepText[i-1])
		if i > 1 {
			step.AddClass("hidden")
		}
		section.Append(step)
	}

	dots := d.NewElement("div", "progress-dots")
	for i := 1; i <= TrainingSteps; i++ {
		dot := d.NewElement("span", "", "progress-dot")
		if i == 1 {
			dot.AddClass("active")
		}
		dots.Append(dot)
	}
	section.Append(dots)
}

func buildOutput(d *dom.Document, section *dom.Node) {
	section.Append(text(d, "h2", "How AI Answers"))
	section.Append(d.NewElement("input", "user-input"))
	gen := d.NewElement("button", "generate-btn")
	gen.SetText("Generate")
	section.Append(gen)

	section.Append(d.NewElement("div", "stage-input", "stage"))
	section.Append(d.NewElement("div", "stage-thinking", "stage"))
	section.Append(d.NewElement("div", "typing-output"))

	demo := d.NewElement("div", "word-demo", "hidden")
	demo.Append(d.NewElement("div", "word-sequence"))
	section.Append(demo)
}

func buildApplications(d *dom.Document, section *dom.Node) {
	section.Append(text(d, "h2", "AI in Science"))
	tabs := d.NewElement("div", "app-tabs")
	for i, name := range AppSectionIDs {
		btn := d.NewElement("button", "app-btn-"+name, "app-tab-btn")
		btn.SetData("section", name)
		btn.SetText(appSectionText[name][0])
		if i == 0 {
			btn.AddClass("active")
		}
		tabs.Append(btn)
	}
	section.Append(tabs)
	for i, name := range AppSectionIDs {
		sec := d.NewElement("div", "app-"+name, "app-section")
		sec.SetText(appSectionText[name][1])
		if i == 0 {
			sec.AddClass("active")
		}
		section.Append(sec)
	}
}

func buildChatbot(d *dom.Document, section *dom.Node) {
	section.Append(text(d, "h2", "Try a Chatbot"))
	section.Append(d.NewElement("div", "chat-messages"))
	section.Append(d.NewElement("input", "chat-input"))
	send := d.NewElement("button", "chat-send-btn")
	send.SetText("Send")
	section.Append(send)
}

func text(d *dom.Document, tag, s string) *dom.Node {
	n := d.NewElement(tag, "")
	n.SetText(s)
	return n
}
