// Package transcript persists finished conversations as flat JSON files.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MKovacik/Simulator2/internal/model/chat"
)

// Entry is one line of a persisted conversation.
type Entry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Record is the on-disk shape of a finished conversation.
type Record struct {
	Timestamp    string  `json:"timestamp"`
	Persona      string  `json:"persona,omitempty"`
	Conversation []Entry `json:"conversation"`
}

// Store writes one JSON file per session into a fixed directory.
type Store struct {
	dir string
}

// NewStore ensures the target directory exists and returns the store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save serializes the transcript for the session. The filename is derived
// from the session id; a later save for the same session overwrites.
func (s *Store) Save(sessionID, personaName string, messages []chat.Message) error {
	record := Record{
		Timestamp:    time.Now().Format(time.RFC3339),
		Persona:      personaName,
		Conversation: make([]Entry, 0, len(messages)),
	}
	for _, msg := range messages {
		record.Conversation = append(record.Conversation, Entry{Role: msg.Role, Content: msg.Content})
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}

	path := s.Path(sessionID)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write transcript %s: %w", path, err)
	}
	return nil
}

// Path returns the file path used for a session's transcript.
func (s *Store) Path(sessionID string) string {
	return filepath.Join(s.dir, "conversation_"+sessionID+".json")
}
