package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Execer is the subset of pgxpool.Pool used for migrations.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var migrations = []struct {
	name string
	sql  string
}{
	{
		name: "create_feedback",
		sql: `CREATE TABLE IF NOT EXISTS feedback (
	id BIGSERIAL PRIMARY KEY,
	message_id TEXT NOT NULL,
	type TEXT NOT NULL,
	feedback TEXT,
	original_query TEXT,
	sql_query TEXT,
	response TEXT,
	session_id TEXT,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	},
	{
		name: "create_training_data",
		sql: `CREATE TABLE IF NOT EXISTS training_data (
	id BIGSERIAL PRIMARY KEY,
	question TEXT NOT NULL,
	answer TEXT NOT NULL,
	context TEXT,
	source TEXT NOT NULL DEFAULT 'manual',
	approved_by TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	},
	{
		name: "index_feedback_status",
		sql:  `CREATE INDEX IF NOT EXISTS idx_feedback_status ON feedback (status, type)`,
	},
}

// Migrate creates the feedback and training tables if they do not exist.
func Migrate(ctx context.Context, db Execer, logger *zap.Logger) error {
	for _, m := range migrations {
		if _, err := db.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
		logger.Debug("Migration applied", zap.String("name", m.name))
	}
	logger.Info("Feedback store schema ready", zap.Int("migrations", len(migrations)))
	return nil
}
