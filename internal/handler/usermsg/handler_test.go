package usermsg

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKovacik/Simulator2/internal/model/persona"
	"github.com/MKovacik/Simulator2/internal/service/session"
	"github.com/MKovacik/Simulator2/internal/service/simulator"
	"github.com/MKovacik/Simulator2/internal/service/tariff"
	"github.com/MKovacik/Simulator2/internal/service/transcript"
)

type stubGen struct{}

func (stubGen) Complete(_ context.Context, prompt string, _ []string) (string, error) {
	if strings.Contains(prompt, "ANALYZE if the customer has DEFINITIVELY chosen") {
		return "NO", nil
	}
	return "stub agent reply", nil
}

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()

	dir := t.TempDir()
	transcripts, err := transcript.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore err: %v", err)
	}

	controller := simulator.New(
		session.NewService(),
		persona.NewMemoryStore(persona.Seed()),
		tariff.NewSource(filepath.Join(dir, "missing.md")),
		transcripts,
		stubGen{},
		simulator.Config{MaxTurns: 2, TaskTimeout: time.Second},
		rand.New(rand.NewSource(1)),
	)

	r := chi.NewRouter()
	New(controller).RegisterRoutes(r)
	return r
}

func postJSON(r http.Handler, body map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/user_message", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestUserMessageMissingSessionID(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(r, map[string]string{"message": "hello"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUserMessageEmptyMessage(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(r, map[string]string{"session_id": "abc", "message": "   "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUserMessageInvalidBody(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/user_message", strings.NewReader("not json"))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUserMessageReturnsAgentReply(t *testing.T) {
	r := setupRouter(t)

	resp := postJSON(r, map[string]string{"session_id": "abc", "message": "How much is Plan A?"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload struct {
		Content              string `json:"content"`
		ConversationComplete bool   `json:"conversation_complete"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if payload.Content != "stub agent reply" {
		t.Fatalf("unexpected content: %q", payload.Content)
	}
	if payload.ConversationComplete {
		t.Fatal("conversation should not be complete")
	}
}
