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
	Auth     AuthConfig
	Ai       AIConfig
	Cache    CacheConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LLMLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	AppURL             string // sent upstream as HTTP-Referer
	AppName            string // sent upstream as X-Title
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	Mode         string // "jwt" | "header"
	JWTSecret    string
	UserIDHeader string
}

type AIConfig struct {
	LLMProvider       string // "openrouter" | "ollama"
	OpenRouterBaseURL string
	OpenRouterAPIKey  string
	OllamaBaseURL     string
	QuickModel        string
	DetailedModel     string
	RequestTimeout    time.Duration // non-streaming calls only
}

type CacheConfig struct {
	Driver string // "memory" | "redis"
	TTL    time.Duration
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LLMLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			AppURL:             getEnv("APP_URL", "https://supernotes.app"),
			AppName:            getEnv("APP_NAME", "SuperchargedNotes"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			Mode:         getEnv("AUTH_MODE", "header"),
			JWTSecret:    getEnv("JWT_SECRET", ""),
			UserIDHeader: getEnv("AUTH_USER_ID_HEADER", "X-User-Id"),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openrouter"),
			OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			QuickModel:        getEnv("LLM_QUICK_MODEL", "google/gemini-pro-1.5"),
			DetailedModel:     getEnv("LLM_DETAILED_MODEL", "deepseek/deepseek-r1"),
			RequestTimeout:    getEnvAsDuration("LLM_REQUEST_TIMEOUT", 120*time.Second),
		},
		Cache: CacheConfig{
			Driver: getEnv("CONTEXT_CACHE_DRIVER", "memory"),
			TTL:    getEnvAsDuration("CONTEXT_CACHE_TTL", 5*time.Minute),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("5m") or plain seconds ("300").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs := getEnvAsInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
