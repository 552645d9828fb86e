package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI   = "openai"
	ProviderGigaChat = "gigachat"
	ProviderGemini   = "gemini"
)

type Config struct {
	Server    ServerConfig
	Analytics AnalyticsConfig
	Database  DatabaseConfig
	LLM       LLMConfig
	GigaChat  GigaChatConfig
	Gemini    GeminiConfig
	Query     QueryConfig
	Schema    SchemaConfig
	Reports   ReportsConfig
	Admin     AdminConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level  string
	Format string // json or console
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
	AccessLog    bool
	// SessionIdleTTL drops chat sessions not touched for this long.
	SessionIdleTTL time.Duration
}

// AnalyticsConfig points at the MySQL database questions are answered against.
type AnalyticsConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	MaxOpen  int
	MaxIdle  int
}

// DatabaseConfig points at the Postgres store for feedback and training data.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Enabled  bool
}

type LLMConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	Model              string
	InsecureSkipVerify bool
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type QueryConfig struct {
	RowLimit      int
	AllowedTables []string
	ReadOnly      bool
}

type SchemaConfig struct {
	CacheFile string
}

type ReportsConfig struct {
	Dir string
}

type AdminConfig struct {
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work too
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "120"))
	llmTimeout, _ := strconv.Atoi(getEnv("LLM_TIMEOUT", "60"))
	tokenTTL, _ := strconv.Atoi(getEnv("ADMIN_TOKEN_HOURS", "12"))
	sessionIdle, _ := strconv.Atoi(getEnv("SESSION_IDLE_MINUTES", "60"))
	maxOpen, _ := strconv.Atoi(getEnv("MYSQL_MAX_OPEN_CONNS", "10"))
	maxIdle, _ := strconv.Atoi(getEnv("MYSQL_MAX_IDLE_CONNS", "5"))

	rowLimit, err := strconv.Atoi(getEnv("ROW_LIMIT", "500"))
	if err != nil {
		return nil, fmt.Errorf("invalid ROW_LIMIT: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8000"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000"),
			AccessLog:    getEnv("ACCESS_LOG", "true") == "true",

			SessionIdleTTL: time.Duration(sessionIdle) * time.Minute,
		},
		Analytics: AnalyticsConfig{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "root"),
			Password: getEnv("MYSQL_PASSWORD", ""),
			DBName:   getEnv("MYSQL_DATABASE", "org_insights"),
			MaxOpen:  maxOpen,
			MaxIdle:  maxIdle,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "prompt_insights"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Enabled:  getEnv("FEEDBACK_STORE_ENABLED", "true") == "true",
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
			APIKey:   getEnv("OPENAI_API_KEY", ""),
			BaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout:  time.Duration(llmTimeout) * time.Second,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			Model:              getEnv("GIGACHAT_MODEL", "GigaChat"),
			InsecureSkipVerify: getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true",
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		},
		Query: QueryConfig{
			RowLimit:      rowLimit,
			AllowedTables: splitList(getEnv("ALLOWED_TABLES", "")),
			ReadOnly:      getEnv("QUERY_READ_ONLY", "true") == "true",
		},
		Schema: SchemaConfig{
			CacheFile: getEnv("SCHEMA_CACHE_FILE", "schema_cache.json"),
		},
		Reports: ReportsConfig{
			Dir: getEnv("REPORT_DIR", "."),
		},
		Admin: AdminConfig{
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("JWT_SECRET_KEY", "change-me-in-production"),
			TokenTTL:     time.Duration(tokenTTL) * time.Hour,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

// Validate reports missing settings the question loop cannot run without.
func (c *Config) Validate() error {
	var errs []error

	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.APIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required"))
		}
	case ProviderGigaChat:
		if c.GigaChat.APIKey == "" {
			errs = append(errs, errors.New("GIGACHAT_API_KEY is required"))
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider))
	}

	if c.Analytics.Host == "" {
		errs = append(errs, errors.New("MYSQL_HOST is required"))
	}
	if c.Analytics.User == "" {
		errs = append(errs, errors.New("MYSQL_USER is required"))
	}
	if c.Analytics.DBName == "" {
		errs = append(errs, errors.New("MYSQL_DATABASE is required"))
	}
	if c.Query.RowLimit <= 0 {
		errs = append(errs, errors.New("ROW_LIMIT must be positive"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
