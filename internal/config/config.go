package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Agent    AgentConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	IngestionTopic     string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	EmbeddingModel    string
	OllamaBaseURL     string
	LLMProvider       string // "ollama" or "openai"
	LLMModel          string
	OpenAIBaseURL     string
	GoogleGeminiKey   string
	OpenAIKey         string
}

type AgentConfig struct {
	PlanTimeout       time.Duration
	CapabilityTimeout time.Duration
	SynthesisTimeout  time.Duration
	MemoryTimeout     time.Duration
	WindowSize        int
	DailyMessageLimit int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			IngestionTopic:     getEnv("EMBED_POLICY_TOPIC_NAME", "EMBED_POLICY_DOCUMENT"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			GoogleGeminiKey:   getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		},
		Agent: AgentConfig{
			PlanTimeout:       getEnvAsDuration("AGENT_PLAN_TIMEOUT", 20*time.Second),
			CapabilityTimeout: getEnvAsDuration("AGENT_CAPABILITY_TIMEOUT", 20*time.Second),
			SynthesisTimeout:  getEnvAsDuration("AGENT_SYNTHESIS_TIMEOUT", 30*time.Second),
			MemoryTimeout:     getEnvAsDuration("AGENT_MEMORY_TIMEOUT", 10*time.Second),
			WindowSize:        getEnvAsInt("AGENT_WINDOW_SIZE", 10),
			DailyMessageLimit: getEnvAsInt("AGENT_DAILY_MESSAGE_LIMIT", 200),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
