package simulate

import (
	"context"
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
		return "YES: Business 100GB", nil
	}
	if strings.Contains(prompt, "confirmation message") {
		return "Welcome to the family!", nil
	}
	return "stub reply", nil
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
		simulator.Config{MaxTurns: 3, TaskTimeout: time.Second},
		rand.New(rand.NewSource(1)),
	)

	r := chi.NewRouter()
	New(controller).RegisterRoutes(r)
	return r
}

func TestSimulateMissingSessionID(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/simulate", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	body := resp.Body.String()
	if !strings.Contains(body, "No session ID provided") {
		t.Fatalf("expected error event, got %q", body)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestSimulateUserMessageMode(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/simulate?session_id=abc&simulator_mode=0", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	body := resp.Body.String()
	if !strings.Contains(body, `"end":true`) {
		t.Fatalf("expected immediate end event, got %q", body)
	}
	if strings.Contains(body, "persona_name") {
		t.Fatalf("no conversation should run in user-message mode, got %q", body)
	}
}

func TestSimulateStreamsConversation(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/simulate?session_id=abc&simulator_mode=1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	body := resp.Body.String()
	for _, want := range []string{"persona_name", `"role":"bot"`, `"role":"customer"`, "Welcome to the family!", `"end":true`} {
		if !strings.Contains(body, want) {
			t.Fatalf("stream missing %q:\n%s", want, body)
		}
	}
	// Every frame is a data: line.
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "data: ") {
			t.Fatalf("unexpected stream line %q", line)
		}
	}
}
