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
	Redis    RedisConfig
	Ai       AIConfig
	Engine   EngineConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
}

type DatabaseConfig struct {
	Connection string
}

type RedisConfig struct {
	URL string
}

type AIConfig struct {
	EmbeddingProvider string // "zhipu" or "openai"
	EmbeddingModel    string
	EmbeddingURL      string
	ChatModel         string
	ChatBaseURL       string
	APIKey            string
	RequestTimeoutSec int
}

type EngineConfig struct {
	ContextTTLSec       int     // short-term memory and slot state TTL
	MaxWindowMessages   int     // bound of the conversation window
	EmbeddingCacheSize  int     // entries kept before batch eviction
	SearchTopK          int     // knowledge retrieval result count
	SimilarityThreshold float64 // minimum cosine score returned
	DedupThreshold      float64 // index-time near-duplicate cutoff
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "engine.log"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "zhipu"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "embedding-2"),
			EmbeddingURL:      getEnv("EMBEDDING_URL", "https://open.bigmodel.cn/api/paas/v4/embeddings"),
			ChatModel:         getEnv("CHAT_MODEL", "glm-4"),
			ChatBaseURL:       getEnv("CHAT_BASE_URL", "https://open.bigmodel.cn/api/paas/v4"),
			APIKey:            getEnv("AI_API_KEY", ""),
			RequestTimeoutSec: getEnvAsInt("AI_REQUEST_TIMEOUT_SEC", 30),
		},
		Engine: EngineConfig{
			ContextTTLSec:       getEnvAsInt("CHAT_CONTEXT_TTL", 3600),
			MaxWindowMessages:   getEnvAsInt("MAX_WINDOW_MESSAGES", 20),
			EmbeddingCacheSize:  getEnvAsInt("EMBEDDING_CACHE_SIZE", 1000),
			SearchTopK:          getEnvAsInt("RAG_TOP_K", 3),
			SimilarityThreshold: getEnvAsFloat("RAG_SIMILARITY_THRESHOLD", 0.7),
			DedupThreshold:      getEnvAsFloat("RAG_DEDUP_THRESHOLD", 0.95),
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
