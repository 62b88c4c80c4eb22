// Package simulator drives the turn-taking conversation between the
// synthetic customer, the telecom agent, and the terminator check.
package simulator

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/MKovacik/Simulator2/internal/model/chat"
	"github.com/MKovacik/Simulator2/internal/model/persona"
	"github.com/MKovacik/Simulator2/internal/service/ai"
	"github.com/MKovacik/Simulator2/internal/service/session"
	"github.com/MKovacik/Simulator2/internal/service/tariff"
	"github.com/MKovacik/Simulator2/internal/service/transcript"
)

// BotGreeting opens every simulated conversation. The greeting is fixed
// literal text rather than a model call.
const BotGreeting = "Hello, I am a Deutsche Telekom agent. How can I help you with your tariff today?"

// Generator produces one completion for one prompt. *ai.Client satisfies it;
// tests substitute scripted responses.
type Generator interface {
	Complete(ctx context.Context, prompt string, stop []string) (string, error)
}

// Event is one tagged element of the simulate stream. Exactly one of the
// field groups is populated per event.
type Event struct {
	PersonaName string `json:"persona_name,omitempty"`
	Role        string `json:"role,omitempty"`
	Content     string `json:"content,omitempty"`
	Status      string `json:"status,omitempty"`
	Log         string `json:"log,omitempty"`
	Error       string `json:"error,omitempty"`
	End         bool   `json:"end,omitempty"`
}

// Sink receives stream events as they are produced.
type Sink func(Event)

// Config bounds a conversation run.
type Config struct {
	MaxTurns    int
	MaxRetries  int
	TaskTimeout time.Duration
}

// Controller is the per-session turn-taking state machine. Turns within one
// session are strictly sequential; concurrency across sessions is the
// transport's concern.
type Controller struct {
	sessions    *session.Service
	personas    persona.Store
	tariffs     *tariff.Source
	transcripts *transcript.Store
	gen         Generator
	cfg         Config

	mu  sync.Mutex
	rng *rand.Rand
}

// New wires a controller. rng may be nil, in which case a time-seeded source
// is used; tests inject a fixed seed.
func New(sessions *session.Service, personas persona.Store, tariffs *tariff.Source, transcripts *transcript.Store, gen Generator, cfg Config, rng *rand.Rand) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 10
	}
	return &Controller{
		sessions:    sessions,
		personas:    personas,
		tariffs:     tariffs,
		transcripts: transcripts,
		gen:         gen,
		cfg:         cfg,
		rng:         rng,
	}
}

// Simulate runs one full simulated conversation for the session, emitting
// tagged events along the way. Any model failure aborts the run; prior turns
// stay in the in-memory transcript but nothing is persisted for a failed run.
func (c *Controller) Simulate(ctx context.Context, sessionID string, emit Sink) error {
	if emit == nil {
		emit = func(Event) {}
	}

	if _, err := c.sessions.GetOrCreate(ctx, sessionID); err != nil {
		return err
	}

	tariffs := c.tariffs.Read()
	p := c.pickPersona()
	if err := c.sessions.SetPersona(ctx, sessionID, p.Name); err != nil {
		return err
	}
	emit(Event{PersonaName: p.Name})

	if err := c.append(ctx, sessionID, chat.RoleBot, BotGreeting, emit); err != nil {
		return err
	}

	exec := ai.NewExecutor(c.cfg.MaxRetries, c.cfg.TaskTimeout)
	exec.OnStatus = func(msg string) { emit(Event{Status: msg}) }

	emit(Event{Status: fmt.Sprintf("%s (Customer) is about to speak (first message).", p.Name)})
	introPrompt, err := ai.CustomerIntroPrompt(p.Name, p.Needs)
	if err != nil {
		return fmt.Errorf("render customer intro: %w", err)
	}
	customerMessage, err := c.run(ctx, exec, "customer intro", introPrompt)
	if err != nil {
		return err
	}
	if err := c.append(ctx, sessionID, chat.RoleCustomer, customerMessage, emit); err != nil {
		return err
	}

	closed := false
	for turn := 0; turn < c.cfg.MaxTurns; turn++ {
		botMessage, err := c.agentTurn(ctx, exec, sessionID, tariffs, p, emit)
		if err != nil {
			return err
		}

		customerMessage, err = c.customerTurn(ctx, exec, sessionID, p, botMessage, emit)
		if err != nil {
			return err
		}

		emit(Event{Status: "Terminator Agent: Checking if customer has selected a plan..."})
		verdict, err := c.checkSelection(ctx, exec, customerMessage)
		if err != nil {
			return err
		}

		if verdict.Selected {
			if err := c.confirmSelection(ctx, exec, sessionID, verdict.Plan, emit); err != nil {
				return err
			}
			closed = true
			break
		}
	}

	c.persist(ctx, sessionID, p.Name)

	if !closed {
		emit(Event{Log: fmt.Sprintf("turn budget of %d exhausted without a selection", c.cfg.MaxTurns)})
	}
	emit(Event{End: true})
	return nil
}

// RespondToUser handles the user-driven variant: one externally supplied
// customer message, one agent response, one terminator check. Returns the
// agent reply and whether the conversation completed.
func (c *Controller) RespondToUser(ctx context.Context, sessionID, message string) (string, bool, error) {
	sess, err := c.sessions.GetOrCreate(ctx, sessionID)
	if err != nil {
		return "", false, err
	}

	exec := ai.NewExecutor(c.cfg.MaxRetries, c.cfg.TaskTimeout)
	exec.OnStatus = func(msg string) { log.Printf("[user_message] %s", msg) }

	agentPrompt, err := ai.AgentTurnPrompt(chat.FormatTranscript(sess.Messages), c.tariffs.Read(), "Customer message: "+message)
	if err != nil {
		return "", false, fmt.Errorf("render agent turn: %w", err)
	}
	botMessage, err := c.run(ctx, exec, "agent response", agentPrompt)
	if err != nil {
		return "", false, err
	}

	verdict, err := c.checkSelection(ctx, exec, message)
	if err != nil {
		return "", false, err
	}

	if verdict.Selected {
		confirmationPrompt, err := ai.ConfirmationPrompt(verdict.Plan)
		if err != nil {
			return "", false, fmt.Errorf("render confirmation: %w", err)
		}
		botMessage, err = c.run(ctx, exec, "confirmation", confirmationPrompt)
		if err != nil {
			return "", false, err
		}
	}

	if err := c.sessions.Append(ctx, sessionID, chat.Message{Role: chat.RoleCustomer, Content: message}); err != nil {
		return "", false, err
	}
	if err := c.sessions.Append(ctx, sessionID, chat.Message{Role: chat.RoleBot, Content: botMessage}); err != nil {
		return "", false, err
	}

	if verdict.Selected {
		c.persist(ctx, sessionID, c.sessions.Persona(sessionID))
	}

	return botMessage, verdict.Selected, nil
}

func (c *Controller) agentTurn(ctx context.Context, exec *ai.Executor, sessionID, tariffs string, p persona.Persona, emit Sink) (string, error) {
	emit(Event{Status: "Telekom Agent: Analyzing customer needs and generating response..."})

	history, err := c.sessions.Transcript(ctx, sessionID)
	if err != nil {
		return "", err
	}

	prompt, err := ai.AgentTurnPrompt(chat.FormatTranscript(history), tariffs, p.Name+". "+p.Needs)
	if err != nil {
		return "", fmt.Errorf("render agent turn: %w", err)
	}

	botMessage, err := c.run(ctx, exec, "agent turn", prompt)
	if err != nil {
		return "", err
	}
	if err := c.append(ctx, sessionID, chat.RoleBot, botMessage, emit); err != nil {
		return "", err
	}
	return botMessage, nil
}

func (c *Controller) customerTurn(ctx context.Context, exec *ai.Executor, sessionID string, p persona.Persona, botMessage string, emit Sink) (string, error) {
	emit(Event{Status: "Customer is responding (this may take a minute)..."})

	history, err := c.sessions.Transcript(ctx, sessionID)
	if err != nil {
		return "", err
	}

	prevCustomer := chat.CustomerMessages(history)
	if len(prevCustomer) > 2 {
		prevCustomer = prevCustomer[len(prevCustomer)-2:]
	}

	prompt, err := ai.CustomerTurnPrompt(p.Name, p.Needs, chat.FormatTranscript(history), botMessage, prevCustomer)
	if err != nil {
		return "", fmt.Errorf("render customer turn: %w", err)
	}

	customerMessage, err := c.run(ctx, exec, "customer turn", prompt)
	if err != nil {
		return "", err
	}
	if err := c.append(ctx, sessionID, chat.RoleCustomer, customerMessage, emit); err != nil {
		return "", err
	}
	return customerMessage, nil
}

// checkSelection runs the terminator check on customer-authored content only.
func (c *Controller) checkSelection(ctx context.Context, exec *ai.Executor, customerMessage string) (ai.Verdict, error) {
	prompt, err := ai.TerminatorCheckPrompt(customerMessage)
	if err != nil {
		return ai.Verdict{}, fmt.Errorf("render terminator check: %w", err)
	}

	raw, err := c.run(ctx, exec, "terminator check", prompt)
	if err != nil {
		return ai.Verdict{}, err
	}
	return ai.ParseVerdict(raw), nil
}

func (c *Controller) confirmSelection(ctx context.Context, exec *ai.Executor, sessionID, plan string, emit Sink) error {
	emit(Event{Status: fmt.Sprintf("Telekom Agent: Preparing confirmation for selected plan: %s", plan)})

	prompt, err := ai.ConfirmationPrompt(plan)
	if err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}

	confirmation, err := c.run(ctx, exec, "confirmation", prompt)
	if err != nil {
		return err
	}
	return c.append(ctx, sessionID, chat.RoleBot, confirmation, emit)
}

func (c *Controller) run(ctx context.Context, exec *ai.Executor, name, prompt string) (string, error) {
	return exec.Run(ctx, name, func(taskCtx context.Context) (string, error) {
		return c.gen.Complete(taskCtx, prompt, nil)
	})
}

func (c *Controller) append(ctx context.Context, sessionID, role, content string, emit Sink) error {
	if err := c.sessions.Append(ctx, sessionID, chat.Message{Role: role, Content: content}); err != nil {
		return err
	}
	emit(Event{Role: role, Content: content})
	return nil
}

// persist writes the transcript; failures are logged, never fatal, and the
// already-completed conversation remains valid in memory.
func (c *Controller) persist(ctx context.Context, sessionID, personaName string) {
	messages, err := c.sessions.Transcript(ctx, sessionID)
	if err != nil {
		log.Printf("[sim] transcript load for %s failed: %v", sessionID, err)
		return
	}
	if err := c.transcripts.Save(sessionID, personaName, messages); err != nil {
		log.Printf("[sim] transcript save for %s failed: %v", sessionID, err)
	}
}

func (c *Controller) pickPersona() persona.Persona {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.personas.Pick(c.rng)
}
