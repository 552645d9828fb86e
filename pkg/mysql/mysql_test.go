package mysql

import (
	"strings"
	"testing"

	"prompt-insights/pkg/config"

	"github.com/go-sql-driver/mysql"
)

func TestDSNRoundTrip(t *testing.T) {
	cfg := &config.AnalyticsConfig{
		Host:     "db.internal",
		Port:     "3306",
		User:     "analyst",
		Password: "p@ss:word",
		DBName:   "org_insights",
	}

	dsn := DSN(cfg)
	if !strings.Contains(dsn, "tcp(db.internal:3306)/org_insights") {
		t.Fatalf("DSN = %q", dsn)
	}

	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN() error = %v", err)
	}
	if parsed.Passwd != cfg.Password || parsed.User != cfg.User {
		t.Errorf("credentials not preserved: %+v", parsed)
	}
	if !parsed.ParseTime {
		t.Error("parseTime should be enabled")
	}
}
