package core

import "strings"

// Matcher resolves free text to a canned response with a first-match
// linear scan over a ResponseTable. It is not a ranked search: the earliest
// keyword in definition order wins even if a later one is more specific.
type Matcher struct {
	table    *ResponseTable
	skip     string
	exact    bool
	fallback func() string
}

// NewOutputMatcher matches for the generation demo. The "default" entry is
// never matched as a keyword and is returned when nothing else matches.
func NewOutputMatcher(table *ResponseTable) *Matcher {
	return &Matcher{
		table: table,
		skip:  DefaultKeyword,
		fallback: func() string {
			r, _ := table.Get(DefaultKeyword)
			return r
		},
	}
}

// NewChatMatcher matches for the chatbot; unmatched input gets ChatFallback.
func NewChatMatcher(table *ResponseTable) *Matcher {
	return &Matcher{
		table:    table,
		exact:    true,
		fallback: func() string { return ChatFallback },
	}
}

func (m *Matcher) Match(input string) string {
	lower := strings.ToLower(input)
	for _, keyword := range m.table.keys {
		if m.skip != "" && keyword == m.skip {
			continue
		}
		if strings.Contains(lower, keyword) || (m.exact && lower == keyword) {
			return m.table.entries[keyword]
		}
	}
	return m.fallback()
}
