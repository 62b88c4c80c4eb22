package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every tunable of the simulator service.
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Simulator SimulatorConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	sim, err := loadSimulatorConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Simulator: sim}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	host := strings.TrimSpace(os.Getenv("HOST"))
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "5000"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":5000" or "127.0.0.1:5000" directly.
		return ServerConfig{Addr: port}, nil
	}

	if _, err := strconv.Atoi(port); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: host + ":" + port}, nil
}

// AIConfig describes the local chat-completion endpoint and the retry policy
// applied to every model call.
type AIConfig struct {
	BaseURL     string
	Model       string
	Temperature float64
	// MaxTokens of -1 means no output limit.
	MaxTokens   int
	MaxRetries  int
	TaskTimeout time.Duration
}

func loadAIConfig() (AIConfig, error) {
	temperature := 0.7
	if override, err := parseOptionalFloatEnv("LMSTUDIO_TEMPERATURE"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		temperature = *override
	}

	maxTokens := -1
	if override, err := parseOptionalIntEnv("LMSTUDIO_MAX_TOKENS"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		maxTokens = *override
	}

	maxRetries := 1
	if override, err := parseOptionalIntEnv("TASK_MAX_RETRIES"); err != nil {
		return AIConfig{}, err
	} else if override != nil && *override >= 0 {
		maxRetries = *override
	}

	timeoutSeconds := 120
	if override, err := parseOptionalIntEnv("TASK_TIMEOUT_SECONDS"); err != nil {
		return AIConfig{}, err
	} else if override != nil && *override > 0 {
		timeoutSeconds = *override
	}

	return AIConfig{
		BaseURL:     getEnvOrDefault("LMSTUDIO_BASE_URL", "http://localhost:1234/v1"),
		Model:       getEnvOrDefault("LMSTUDIO_MODEL_NAME", "mistral-7b-instruct-v0.3"),
		Temperature: temperature,
		MaxTokens:   maxTokens,
		MaxRetries:  maxRetries,
		TaskTimeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// SimulatorConfig describes conversation-level settings.
type SimulatorConfig struct {
	TariffsFile   string
	HistoryDir    string
	SessionMaxAge time.Duration
	MaxTurns      int
}

func loadSimulatorConfig() (SimulatorConfig, error) {
	maxAgeMinutes := 30
	if override, err := parseOptionalIntEnv("SESSION_MAX_AGE_MINUTES"); err != nil {
		return SimulatorConfig{}, err
	} else if override != nil && *override > 0 {
		maxAgeMinutes = *override
	}

	maxTurns := 10
	if override, err := parseOptionalIntEnv("MAX_TURNS"); err != nil {
		return SimulatorConfig{}, err
	} else if override != nil && *override > 0 {
		maxTurns = *override
	}

	return SimulatorConfig{
		TariffsFile:   getEnvOrDefault("TARIFFS_FILE", "Tarifs.md"),
		HistoryDir:    getEnvOrDefault("CONVERSATION_HISTORY_DIR", "conversation_history"),
		SessionMaxAge: time.Duration(maxAgeMinutes) * time.Minute,
		MaxTurns:      maxTurns,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
