package dom

// NodeSnapshot is a serializable copy of a node and its subtree.
type NodeSnapshot struct {
	ID       string            `json:"id,omitempty"`
	Tag      string            `json:"tag"`
	Classes  []string          `json:"classes,omitempty"`
	Data     map[string]string `json:"data,omitempty"`
	Text     string            `json:"text,omitempty"`
	Value    string            `json:"value,omitempty"`
	Disabled bool              `json:"disabled,omitempty"`
	Children []NodeSnapshot    `json:"children,omitempty"`
}

type Snapshot struct {
	Body    NodeSnapshot `json:"body"`
	Active  string       `json:"active,omitempty"`
	ScrollY int          `json:"scroll_y"`
	Alerts  []string     `json:"alerts,omitempty"`
}

func (d *Document) Snapshot() Snapshot {
	s := Snapshot{
		Body:    snapshotNode(d.root),
		ScrollY: d.scrollY,
		Alerts:  d.Alerts(),
	}
	if a := d.ActiveElement(); a != Element(d.root) {
		s.Active = a.ID()
	}
	return s
}

func snapshotNode(n *Node) NodeSnapshot {
	s := NodeSnapshot{
		ID:       n.id,
		Tag:      n.tag,
		Classes:  n.Classes(),
		Text:     n.text,
		Value:    n.value,
		Disabled: n.disabled,
	}
	if len(n.data) > 0 {
		s.Data = make(map[string]string, len(n.data))
		for k, v := range n.data {
			s.Data[k] = v
		}
	}
	for _, c := range n.children {
		s.Children = append(s.Children, snapshotNode(c))
	}
	return s
}

// Find returns the first node in the subtree with the given id.
func (s NodeSnapshot) Find(id string) (NodeSnapshot, bool) {
	if s.ID == id {
		return s, true
	}
	for _, c := range s.Children {
		if found, ok := c.Find(id); ok {
			return found, true
		}
	}
	return NodeSnapshot{}, false
}

func (s NodeSnapshot) HasClass(name string) bool {
	for _, c := range s.Classes {
		if c == name {
			return true
		}
	}
	return false
}

// TextContent concatenates the text of the subtree.
func (s NodeSnapshot) TextContent() string {
	out := s.Text
	for _, c := range s.Children {
		out += c.TextContent()
	}
	return out
}
