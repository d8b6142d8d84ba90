package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
	Agent    AgentConfig
	Support  SupportConfig
	Auth     AuthConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	GoogleGemini string
	HuggingFace  string
	Jina         string
	EmbedTopic   string // Embedding topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini", "ollama" or "jina"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "huggingface"
	LLMModel          string // e.g. "llama3", "qwen2.5"
	LLMBaseURL        string
	OracleTimeout     int // seconds, applied to scorer/classifier calls
}

// AgentConfig tunes the retrieval loop. Values map 1:1 to the knobs the
// agent packages expose; defaults match production behavior.
type AgentConfig struct {
	MaxAttempts       int
	RetrievalBaseTopK int
	RetrievalStepTopK int
	MemoExpiryMinutes int
	IntentPrecedence  string // comma separated, highest priority first
}

// SupportConfig carries the human contact channel injected into answers
// and escalation messages.
type SupportConfig struct {
	BrandName    string
	ContactEmail string
	ContactPhone string
	EscalationTo string // inbox receiving escalated inquiries
}

type AuthConfig struct {
	JWTSecret     string
	JWTExpiryHour int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "AquaReef Support"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
			EmbedTopic:   getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_KB_DOCUMENT"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			OracleTimeout:     getEnvAsInt("AI_ORACLE_TIMEOUT_SECONDS", 30),
		},
		Agent: AgentConfig{
			MaxAttempts:       getEnvAsInt("AGENT_MAX_ATTEMPTS", 3),
			RetrievalBaseTopK: getEnvAsInt("AGENT_RETRIEVAL_BASE_TOP_K", 8),
			RetrievalStepTopK: getEnvAsInt("AGENT_RETRIEVAL_STEP_TOP_K", 4),
			MemoExpiryMinutes: getEnvAsInt("AGENT_ANSWER_MEMO_EXPIRY_MINUTES", 30),
			IntentPrecedence:  getEnv("AGENT_INTENT_PRECEDENCE", "production,business,dosage,troubleshooting,support"),
		},
		Support: SupportConfig{
			BrandName:    getEnv("SUPPORT_BRAND_NAME", "AquaReef"),
			ContactEmail: getEnv("SUPPORT_CONTACT_EMAIL", "support@aquareef.example.com"),
			ContactPhone: getEnv("SUPPORT_CONTACT_PHONE", "+1-800-555-0199"),
			EscalationTo: getEnv("SUPPORT_ESCALATION_EMAIL", "escalations@aquareef.example.com"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "change-me"),
			JWTExpiryHour: getEnvAsInt("JWT_EXPIRY_HOUR", 24),
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
