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
	Keys     APIKeys
	Ai       AIConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type APIKeys struct {
	OpenAI       string
	Serper       string
	GoogleGemini string
}

type AIConfig struct {
	LLMProvider       string // "openai" or "ollama"
	LLMModel          string // e.g. "gpt-4o", "llama3"
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaEmbedModel  string
}

type PipelineConfig struct {
	CurriculumDir    string // directory holding per-subject curriculum CSV files
	ChunkSize        int
	ChunkOverlap     int
	RetrievalTopK    int
	SubjectThreshold float64 // fuzzy subject match acceptance threshold
	MaxAttempts      int
	BaseDelayMs      int
	StageEventTopic  string
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
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "lessonplan"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Keys: APIKeys{
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			Serper:       getEnv("SERPER_API_KEY", ""),
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "openai"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
		Pipeline: PipelineConfig{
			CurriculumDir:    getEnv("CURRICULUM_DIR", "data/curriculum"),
			ChunkSize:        getEnvAsInt("RETRIEVAL_CHUNK_SIZE", 1000),
			ChunkOverlap:     getEnvAsInt("RETRIEVAL_CHUNK_OVERLAP", 200),
			RetrievalTopK:    getEnvAsInt("RETRIEVAL_TOP_K", 10),
			SubjectThreshold: getEnvAsFloat("SUBJECT_MATCH_THRESHOLD", 0.6),
			MaxAttempts:      getEnvAsInt("PIPELINE_MAX_ATTEMPTS", 3),
			BaseDelayMs:      getEnvAsInt("PIPELINE_BASE_DELAY_MS", 1000),
			StageEventTopic:  getEnv("STAGE_EVENT_TOPIC_NAME", "STAGE_COMPLETED"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
