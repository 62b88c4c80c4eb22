package chat

import (
	"strings"
	"time"
)

// Conversation roles. The terminator only ever evaluates customer-authored
// content, so the role tag is load-bearing rather than cosmetic.
const (
	RoleCustomer = "customer"
	RoleBot      = "bot"
)

// Message is a single turn in a conversation. Messages are append-only and
// never edited once stored.
type Message struct {
	ID        string    `json:"id,omitempty"`
	SessionID string    `json:"sessionId,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// FormatTranscript renders a transcript the way prompts expect it:
// one "Customer: ..." or "Assistant: ..." line per message.
func FormatTranscript(messages []Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		speaker := "Assistant"
		if msg.Role == RoleCustomer {
			speaker = "Customer"
		}
		lines = append(lines, speaker+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

// CustomerMessages extracts the customer-authored contents in order.
func CustomerMessages(messages []Message) []string {
	var out []string
	for _, msg := range messages {
		if msg.Role == RoleCustomer {
			out = append(out, msg.Content)
		}
	}
	return out
}
