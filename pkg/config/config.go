package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	OpenAIAPIKey string
	OpenAIModel  string

	// InstructionsPath optionally overrides the bundled agent instructions file.
	InstructionsPath string

	DatabaseURL string
	SQLitePath  string

	AppEnv       string
	IsProduction bool

	JWTSecret string
	Port      string

	// runtime tunables
	OpenAITimeoutSeconds int
)

func loadAppEnv() {
	AppEnv = os.Getenv("APP_ENV")

	// do not load .env file in production
	if AppEnv == "production" {
		return
	}

	// best effort: a missing .env just means everything comes from the host env
	_ = godotenv.Load()
}

func init() {
	loadAppEnv()

	OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	OpenAIModel = os.Getenv("OPENAI_MODEL")
	InstructionsPath = os.Getenv("AGENT_INSTRUCTIONS_PATH")

	DatabaseURL = os.Getenv("DATABASE_URL")
	SQLitePath = os.Getenv("SQLITE_PATH")
	if SQLitePath == "" {
		SQLitePath = "app.db"
	}

	AppEnv = os.Getenv("APP_ENV")
	IsProduction = AppEnv == "production"

	// default model if not provided; can be overridden via OPENAI_MODEL env
	if OpenAIModel == "" {
		OpenAIModel = "gpt-3.5-turbo"
	}

	JWTSecret = os.Getenv("JWT_SECRET_KEY")
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8000"
	}

	OpenAITimeoutSeconds = atoiOr(os.Getenv("OPENAI_TIMEOUT_SECONDS"), 30)

	// never run production with a blank signing secret
	if IsProduction && JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY must be set in production")
	}

	log.Printf("[config] AppEnv=%s IsProduction=%v", AppEnv, IsProduction)
	log.Printf("[config] OpenAIModel=%s OpenAIAPIKeyPresent=%v timeout=%ds",
		OpenAIModel, OpenAIAPIKey != "", OpenAITimeoutSeconds)
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
