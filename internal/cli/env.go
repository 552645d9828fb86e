package cli

import (
	"context"
	"database/sql"
	"fmt"

	"prompt-insights/internal/executor"
	"prompt-insights/internal/llm"
	"prompt-insights/internal/repository"
	"prompt-insights/internal/schema"
	"prompt-insights/internal/service"
	"prompt-insights/internal/sqlgen"
	"prompt-insights/internal/summary"
	"prompt-insights/pkg/config"
	"prompt-insights/pkg/logger"
	"prompt-insights/pkg/mysql"
	"prompt-insights/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// env holds what a command has opened so far. Close releases all of it.
type env struct {
	cfg    *config.Config
	logger *zap.Logger

	db       *sql.DB
	executor *executor.Executor
	schema   *schema.Cache

	client llm.Client
	pool   *pgxpool.Pool
}

// loadEnv reads configuration and builds a console logger. Nothing is
// connected yet.
func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logLevel, "console")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	e := &env{cfg: cfg, logger: log}
	e.schema = schema.NewCache(nil, e.schemaConfig(), log)
	return e, nil
}

func (e *env) schemaConfig() schema.Config {
	return schema.Config{
		Database:      e.cfg.Analytics.DBName,
		CacheFile:     e.cfg.Schema.CacheFile,
		AllowedTables: e.cfg.Query.AllowedTables,
	}
}

// connect opens the analytics database and binds the executor and schema
// cache to it.
func (e *env) connect(ctx context.Context) error {
	db, err := mysql.Open(ctx, &e.cfg.Analytics, e.logger)
	if err != nil {
		return err
	}
	e.db = db
	e.executor = executor.New(db, executor.Config{
		RowLimit: e.cfg.Query.RowLimit,
		ReadOnly: e.cfg.Query.ReadOnly,
	}, e.logger)
	e.schema = schema.NewCache(db, e.schemaConfig(), e.logger)
	return nil
}

// trainingStore opens the feedback store when it is enabled. A store that
// cannot be reached is reported and skipped.
func (e *env) trainingStore(ctx context.Context) *repository.TrainingRepository {
	if !e.cfg.Database.Enabled {
		return nil
	}
	pool, err := postgres.NewPool(ctx, &e.cfg.Database, e.logger)
	if err != nil {
		e.logger.Warn("Feedback store unavailable, continuing without training context", zap.Error(err))
		return nil
	}
	e.pool = pool
	return repository.NewTrainingRepository(pool, e.logger)
}

// assistant connects everything the question loop needs and loads the
// schema, generating the cache file on first use.
func (e *env) assistant(ctx context.Context) (*service.Assistant, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := e.connect(ctx); err != nil {
		return nil, err
	}
	if _, err := e.schema.LoadOrRefresh(ctx); err != nil {
		return nil, err
	}

	client, err := llm.New(ctx, e.cfg, e.logger)
	if err != nil {
		return nil, err
	}
	e.client = client

	var training service.TrainingContext
	if repo := e.trainingStore(ctx); repo != nil {
		training = repo
	}

	return service.NewAssistant(
		e.schema,
		e.executor,
		training,
		sqlgen.NewGenerator(client, e.logger),
		summary.NewSummarizer(client, e.logger),
		e.logger,
	), nil
}

func (e *env) Close() {
	if e.client != nil {
		if err := e.client.Close(); err != nil {
			e.logger.Warn("Failed to close LLM client", zap.Error(err))
		}
	}
	if e.pool != nil {
		e.pool.Close()
	}
	if e.db != nil {
		_ = e.db.Close()
	}
	_ = e.logger.Sync()
}
