package dom

// Document owns a tree of nodes rooted at <body> and indexes attached
// nodes by id. It is not safe for concurrent use; callers drive it from a
// single UI thread.
type Document struct {
	root    *Node
	byID    map[string]*Node
	active  *Node
	scrollY int
	alerts  []string
}

func NewDocument() *Document {
	d := &Document{byID: make(map[string]*Node)}
	d.root = &Node{tag: "body", doc: d}
	return d
}

func (d *Document) Root() *Node { return d.root }

func (d *Document) Find(id string) (Element, bool) {
	n, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// Node returns the concrete node for id, nil if absent.
func (d *Document) Node(id string) *Node {
	return d.byID[id]
}

func (d *Document) FindAll(selector string) []Element {
	var out []Element
	if selector == "" {
		return out
	}
	d.root.walk(func(n *Node) {
		if n != d.root && n.matches(selector) {
			out = append(out, n)
		}
	})
	return out
}

func (d *Document) Create(tag string) Element {
	return d.NewElement(tag, "")
}

// NewElement creates a detached node with an id and classes.
func (d *Document) NewElement(tag, id string, classes ...string) *Node {
	n := &Node{tag: tag, id: id, doc: d}
	for _, c := range classes {
		n.AddClass(c)
	}
	return n
}

func (d *Document) ScrollToTop() { d.scrollY = 0 }

func (d *Document) ScrollY() int { return d.scrollY }

// ScrollBy moves the viewport, as a user scrolling the page would.
func (d *Document) ScrollBy(delta int) {
	d.scrollY = max(0, d.scrollY+delta)
}

func (d *Document) Alert(message string) {
	d.alerts = append(d.alerts, message)
}

func (d *Document) Alerts() []string {
	return append([]string(nil), d.alerts...)
}

// DrainAlerts returns the pending alerts and forgets them.
func (d *Document) DrainAlerts() []string {
	out := d.alerts
	d.alerts = nil
	return out
}

// Focus makes the element with id the active element. Unknown ids blur.
func (d *Document) Focus(id string) bool {
	n, ok := d.byID[id]
	if !ok {
		d.active = nil
		return false
	}
	d.active = n
	return true
}

func (d *Document) Blur() { d.active = nil }

// ActiveElement returns the focused element, or <body> when nothing is.
func (d *Document) ActiveElement() Element {
	if d.active == nil || !d.active.attached() {
		return d.root
	}
	return d.active
}

func (d *Document) register(n *Node) {
	n.walk(func(x *Node) {
		x.doc = d
		if x.id == "" {
			return
		}
		if _, exists := d.byID[x.id]; !exists {
			d.byID[x.id] = x
		}
	})
}

func (d *Document) unregister(n *Node) {
	n.walk(func(x *Node) {
		if x.id != "" && d.byID[x.id] == x {
			delete(d.byID, x.id)
		}
		if d.active == x {
			d.active = nil
		}
	})
}
