// Package mysql opens the analytics database that generated statements run against.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"prompt-insights/pkg/config"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// DSN builds a driver connection string for cfg.
func DSN(cfg *config.AnalyticsConfig) string {
	dc := mysql.NewConfig()
	dc.User = cfg.User
	dc.Passwd = cfg.Password
	dc.Net = "tcp"
	dc.Addr = cfg.Host + ":" + cfg.Port
	dc.DBName = cfg.DBName
	dc.ParseTime = true
	dc.Timeout = 10 * time.Second
	return dc.FormatDSN()
}

func Open(ctx context.Context, cfg *config.AnalyticsConfig, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open analytics database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping analytics database: %w", err)
	}

	logger.Info("Analytics database connection established",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName),
	)

	return db, nil
}
