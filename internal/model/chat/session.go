package chat

import "time"

// Session is a point-in-time snapshot of one simulated conversation. The
// session service owns the mutable record; snapshots handed out to callers
// carry copies only.
type Session struct {
	ID           string    `json:"id"`
	Persona      string    `json:"persona,omitempty"`
	Messages     []Message `json:"messages"`
	LastActivity time.Time `json:"lastActivity"`
}
