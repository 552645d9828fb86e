package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ROW_LIMIT", "LLM_PROVIDER", "MYSQL_PORT", "ALLOWED_TABLES", "QUERY_READ_ONLY", "OPENAI_MODEL", "SESSION_IDLE_MINUTES"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Query.RowLimit != 500 {
		t.Errorf("RowLimit = %d, want 500", cfg.Query.RowLimit)
	}
	if cfg.LLM.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q", cfg.LLM.Model)
	}
	if cfg.Analytics.Port != "3306" {
		t.Errorf("MySQL port = %q", cfg.Analytics.Port)
	}
	if !cfg.Query.ReadOnly {
		t.Error("ReadOnly should default to true")
	}
	if len(cfg.Query.AllowedTables) != 0 {
		t.Errorf("AllowedTables = %v", cfg.Query.AllowedTables)
	}
	if cfg.Server.SessionIdleTTL != time.Hour {
		t.Errorf("SessionIdleTTL = %v, want 1h", cfg.Server.SessionIdleTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ROW_LIMIT", "25")
	t.Setenv("ALLOWED_TABLES", " trade_new, counterparty_new ,,")
	t.Setenv("LLM_PROVIDER", "GigaChat")
	t.Setenv("LLM_TIMEOUT", "5")
	t.Setenv("SESSION_IDLE_MINUTES", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Query.RowLimit != 25 {
		t.Errorf("RowLimit = %d", cfg.Query.RowLimit)
	}
	if got := strings.Join(cfg.Query.AllowedTables, "|"); got != "trade_new|counterparty_new" {
		t.Errorf("AllowedTables = %q", got)
	}
	if cfg.LLM.Provider != ProviderGigaChat {
		t.Errorf("Provider = %q", cfg.LLM.Provider)
	}
	if cfg.LLM.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.LLM.Timeout)
	}
	if cfg.Server.SessionIdleTTL != 15*time.Minute {
		t.Errorf("SessionIdleTTL = %v", cfg.Server.SessionIdleTTL)
	}
}

func TestLoadRejectsBadRowLimit(t *testing.T) {
	t.Setenv("ROW_LIMIT", "many")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric ROW_LIMIT")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LLM:       LLMConfig{Provider: ProviderOpenAI, APIKey: "sk-test"},
			Analytics: AnalyticsConfig{Host: "db", User: "u", DBName: "org_insights"},
			Query:     QueryConfig{RowLimit: 500},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing openai key", mutate: func(c *Config) { c.LLM.APIKey = "" }, wantErr: "OPENAI_API_KEY"},
		{name: "gigachat key", mutate: func(c *Config) { c.LLM.Provider = ProviderGigaChat }, wantErr: "GIGACHAT_API_KEY"},
		{name: "gemini key", mutate: func(c *Config) { c.LLM.Provider = ProviderGemini }, wantErr: "GEMINI_API_KEY"},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "other" }, wantErr: "unknown LLM_PROVIDER"},
		{name: "missing database", mutate: func(c *Config) { c.Analytics.DBName = "" }, wantErr: "MYSQL_DATABASE"},
		{name: "zero row limit", mutate: func(c *Config) { c.Query.RowLimit = 0 }, wantErr: "ROW_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
