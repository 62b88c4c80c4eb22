package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKovacik/Simulator2/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.AIConfig{
		BaseURL:     baseURL,
		Model:       "mistral-7b-instruct-v0.3",
		Temperature: 0.7,
		MaxTokens:   -1,
	})
}

func completionBody(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + jsonString(content) + `}}]}`
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestClientComplete(t *testing.T) {
	var gotPath string
	var gotReq chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody("Hello there!")))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	content, err := client.Complete(context.Background(), "say hello", []string{"\n\n"})

	require.NoError(t, err)
	assert.Equal(t, "Hello there!", content)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "mistral-7b-instruct-v0.3", gotReq.Model)
	assert.False(t, gotReq.Stream)
	assert.Equal(t, []string{"\n\n"}, gotReq.Stop)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "say hello")
}

func TestClientNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not loaded"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Complete(context.Background(), "prompt", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClientMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Complete(context.Background(), "prompt", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestClientEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionBody("")))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Complete(context.Background(), "prompt", nil)

	require.ErrorIs(t, err, ErrEmptyContent)
}

func TestClientConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Complete(context.Background(), "prompt", nil)

	require.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	cases := map[string]string{
		"http://localhost:1234":     "http://localhost:1234/v1/",
		"http://localhost:1234/":    "http://localhost:1234/v1/",
		"http://localhost:1234/v1":  "http://localhost:1234/v1/",
		"http://localhost:1234/v1/": "http://localhost:1234/v1/",
	}

	for in, want := range cases {
		assert.Equal(t, want, normalizeBaseURL(in), "input %q", in)
	}
}
