// Package schema builds and caches the plain-text description of the
// analytics database that goes into every generation prompt.
package schema

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"prompt-insights/internal/apperr"

	"go.uber.org/zap"
)

var ErrCacheMissing = errors.New("schema cache file not found")

// Snapshot is the persisted form of the schema description.
type Snapshot struct {
	Database    string    `json:"database"`
	Schema      string    `json:"schema"`
	GeneratedAt time.Time `json:"generated_at"`
	TableCount  int       `json:"table_count"`
}

// Info summarizes the cache file without the schema text.
type Info struct {
	Database    string    `json:"database"`
	TableCount  int       `json:"table_count"`
	GeneratedAt time.Time `json:"generated_at"`
	FileSize    int64     `json:"file_size"`
}

type Config struct {
	Database      string
	CacheFile     string
	AllowedTables []string
}

type Cache struct {
	db      *sql.DB
	cfg     Config
	allowed map[string]bool
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewCache(db *sql.DB, cfg Config, logger *zap.Logger) *Cache {
	var allowed map[string]bool
	if len(cfg.AllowedTables) > 0 {
		allowed = make(map[string]bool, len(cfg.AllowedTables))
		for _, t := range cfg.AllowedTables {
			allowed[t] = true
		}
	}
	return &Cache{
		db:      db,
		cfg:     cfg,
		allowed: allowed,
		logger:  logger,
		now:     time.Now,
	}
}

const (
	tablesQuery = `SELECT table_name FROM information_schema.tables WHERE table_schema = ? ORDER BY table_name`

	columnsQuery = `SELECT column_name, data_type, is_nullable, column_default, column_key
FROM information_schema.columns
WHERE table_schema = ? AND table_name = ?
ORDER BY ordinal_position`
)

// Fetch reads table and column metadata and renders it as text, one
// "Table:" block per table.
func (c *Cache) Fetch(ctx context.Context) (string, error) {
	text, _, err := c.describe(ctx)
	return text, err
}

// describe renders the schema text together with the tables it covers.
func (c *Cache) describe(ctx context.Context) (string, []string, error) {
	tables, err := c.tables(ctx)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	for _, table := range tables {
		cols, err := c.columns(ctx, table)
		if err != nil {
			return "", nil, err
		}
		fmt.Fprintf(&sb, "\nTable: %s\nColumns: %s\n", table, strings.Join(cols, ", "))
	}

	return strings.TrimSpace(sb.String()), tables, nil
}

func (c *Cache) tables(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, tablesQuery, c.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		if c.allowed != nil && !c.allowed[name] {
			continue
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (c *Cache) columns(ctx context.Context, table string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, columnsQuery, c.cfg.Database, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns of %s: %w", table, err)
	}
	defer rows.Close()

	var defs []string
	for rows.Next() {
		var (
			name, dataType, nullable, key string
			def                           sql.NullString
		)
		if err := rows.Scan(&name, &dataType, &nullable, &def, &key); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		defs = append(defs, columnDef(name, dataType, nullable, def.String, key))
	}
	return defs, rows.Err()
}

func columnDef(name, dataType, nullable, def, key string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s", name, dataType)
	if key == "PRI" {
		sb.WriteString(", PRIMARY KEY")
	}
	if nullable == "NO" {
		sb.WriteString(", NOT NULL")
	}
	if def != "" {
		fmt.Fprintf(&sb, ", DEFAULT %s", def)
	}
	sb.WriteString(")")
	return sb.String()
}

// Refresh regenerates the description from the database and persists it.
func (c *Cache) Refresh(ctx context.Context) (*Snapshot, error) {
	text, tables, err := c.describe(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.SchemaUnavailable, "could not read database schema", err).WithOp("schema.Refresh")
	}

	snap := &Snapshot{
		Database:    c.cfg.Database,
		Schema:      text,
		GeneratedAt: c.now().UTC(),
		TableCount:  len(tables),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema cache: %w", err)
	}
	if err := os.WriteFile(c.cfg.CacheFile, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write schema cache: %w", err)
	}

	c.set(snap)
	c.logger.Info("Schema cached",
		zap.String("file", c.cfg.CacheFile),
		zap.String("database", snap.Database),
		zap.Int("tables", snap.TableCount),
	)
	return snap, nil
}

// Load reads the cache file into memory.
func (c *Cache) Load() (*Snapshot, error) {
	snap, err := c.readFile()
	if err != nil {
		return nil, err
	}
	c.set(snap)
	c.logger.Info("Schema loaded from cache",
		zap.String("database", snap.Database),
		zap.Int("tables", snap.TableCount),
		zap.Time("generated_at", snap.GeneratedAt),
	)
	return snap, nil
}

// LoadOrRefresh loads the cache file and regenerates it when it is missing.
func (c *Cache) LoadOrRefresh(ctx context.Context) (*Snapshot, error) {
	snap, err := c.Load()
	if errors.Is(err, ErrCacheMissing) {
		c.logger.Info("Schema cache missing, generating", zap.String("file", c.cfg.CacheFile))
		return c.Refresh(ctx)
	}
	return snap, err
}

// Get returns the loaded schema text.
func (c *Cache) Get() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil || c.snapshot.Schema == "" {
		return "", apperr.New(apperr.SchemaUnavailable, "schema is not loaded").WithOp("schema.Get")
	}
	return c.snapshot.Schema, nil
}

// Info describes the cache file on disk.
func (c *Cache) Info() (*Info, error) {
	snap, err := c.readFile()
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(c.cfg.CacheFile)
	if err != nil {
		return nil, fmt.Errorf("failed to stat schema cache: %w", err)
	}
	return &Info{
		Database:    snap.Database,
		TableCount:  snap.TableCount,
		GeneratedAt: snap.GeneratedAt,
		FileSize:    st.Size(),
	}, nil
}

func (c *Cache) readFile() (*Snapshot, error) {
	data, err := os.ReadFile(c.cfg.CacheFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrCacheMissing, c.cfg.CacheFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schema cache: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse schema cache: %w", err)
	}
	return &snap, nil
}

func (c *Cache) set(snap *Snapshot) {
	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()
}
