package store

import "time"

// Response is a stored keyword/response pair. Position preserves the
// definition order the matchers depend on.
type Response struct {
	Table     string    `json:"table"`
	Keyword   string    `json:"keyword"`
	Response  string    `json:"response"`
	Position  int64     `json:"position"`
	UpdatedAt time.Time `json:"updated_at"`
}
