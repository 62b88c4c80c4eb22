// Package ai talks to a local OpenAI-compatible chat-completion endpoint
// (LM Studio style) and provides the retry wrapper, prompt templates, and
// verdict parsing the conversation controller is built on.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/MKovacik/Simulator2/internal/config"
)

// ErrEmptyContent is returned when the endpoint answers 200 but the choice
// carries no text.
var ErrEmptyContent = errors.New("empty response content from model endpoint")

// systemPrompt is prepended to every request. Local models served without a
// system role behave better with the instruction folded into the user turn.
const systemPrompt = "You are a helpful AI assistant. Provide clear and concise responses."

// Client issues single blocking calls against the chat-completion endpoint.
// It carries no retry and no deadline of its own: retry belongs to the
// Executor, and waiting arbitrarily long is preferred over degraded answers.
// Cancellation still flows through the request context.
type Client struct {
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// NewClient builds a client from configuration.
func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		baseURL:     normalizeBaseURL(cfg.BaseURL),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{},
	}
}

// normalizeBaseURL makes sure the URL ends in ".../v1/" whatever the operator
// put in the environment.
func normalizeBaseURL(raw string) string {
	url := strings.TrimSpace(raw)
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	if !strings.HasSuffix(url, "v1/") {
		url += "v1/"
	}
	return url
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
	Stop        []string      `json:"stop,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one prompt and returns the raw completion text. It fails on
// connection errors, non-200 statuses, malformed bodies, and empty content.
func (c *Client) Complete(ctx context.Context, prompt string, stop []string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: systemPrompt + "\n\n" + prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Stream:      false,
		Stop:        stop,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request to model endpoint failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("model endpoint returned %d: %s", resp.StatusCode, truncate(string(raw), 500))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("invalid JSON response from model endpoint: %w", err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", ErrEmptyContent
	}

	log.Printf("[ai] model=%s responded in %.2fs", c.model, time.Since(start).Seconds())
	return parsed.Choices[0].Message.Content, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
