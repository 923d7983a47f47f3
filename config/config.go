package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	Timezone string
	DBPath   string

	// Generative model
	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string

	// Retrieval
	CorpusPath     string
	SearchEndpoint string
	CampusInfoPath string

	// Auth
	JWTSecret        string
	JWTExpireMinutes int

	// SMTP notifications
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	// Voice
	VoiceAPIKey   string
	VoiceEndpoint string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	cfg := AppConfig{
		Port:             get("PORT", "8080"),
		Timezone:         get("TZ", "Asia/Karachi"),
		DBPath:           get("DB_PATH", "campus.db"),
		LLMEndpoint:      get("LLM_ENDPOINT", "https://api.openai.com"),
		LLMAPIKey:        get("LLM_API_KEY", ""),
		LLMModel:         get("LLM_MODEL", "gpt-4o-mini"),
		CorpusPath:       get("CORPUS_PATH", "data/uaf_scraped_data.json"),
		SearchEndpoint:   get("SEARCH_ENDPOINT", "https://html.duckduckgo.com/html/"),
		CampusInfoPath:   get("CAMPUS_INFO_PATH", ""),
		JWTSecret:        get("JWT_SECRET_KEY", "change-me-please"),
		JWTExpireMinutes: getInt("JWT_EXPIRE_MINUTES", 30),
		SMTPHost:         get("SMTP_HOST", ""),
		SMTPPort:         getInt("SMTP_PORT", 587),
		SMTPUsername:     get("SMTP_USERNAME", ""),
		SMTPPassword:     get("SMTP_PASSWORD", ""),
		EmailFrom:        get("EMAIL_FROM", "notifications@example.com"),
		VoiceAPIKey:      get("VOICE_API_KEY", ""),
		VoiceEndpoint:    get("VOICE_ENDPOINT", "https://api.elevenlabs.io"),
	}
	log.Printf("[cfg] port=%s db=%s model=%s corpus=%s", cfg.Port, cfg.DBPath, cfg.LLMModel, cfg.CorpusPath)
	return cfg
}
