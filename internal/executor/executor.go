// Package executor runs generated SQL against the analytics database.
// Database failures are reported inside Result rather than as errors so the
// caller can offer a repair.
package executor

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const DefaultRowLimit = 500

// Row maps column name to value. Byte slices from the driver are converted
// to strings.
type Row map[string]any

// Result describes one execution. Columns keeps the driver's column order.
type Result struct {
	Success   bool          `json:"success"`
	Columns   []string      `json:"columns"`
	Rows      []Row         `json:"data"`
	RowCount  int           `json:"row_count"`
	Truncated bool          `json:"truncated"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"-"`
}

// Empty reports a successful execution that returned no rows.
func (r *Result) Empty() bool {
	return r.Success && r.RowCount == 0
}

// Values returns row's values in column order.
func (r *Result) Values(row Row) []any {
	out := make([]any, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = row[c]
	}
	return out
}

type Config struct {
	RowLimit int
	// ReadOnly runs every statement inside a read-only transaction that is
	// always rolled back.
	ReadOnly bool
}

type Executor struct {
	db     *sql.DB
	cfg    Config
	logger *zap.Logger
}

func New(db *sql.DB, cfg Config, logger *zap.Logger) *Executor {
	if cfg.RowLimit <= 0 {
		cfg.RowLimit = DefaultRowLimit
	}
	return &Executor{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// Execute runs query verbatim and returns at most RowLimit rows.
func (e *Executor) Execute(ctx context.Context, query string) *Result {
	start := time.Now()
	res, err := e.execute(ctx, query)
	if err != nil {
		e.logger.Warn("Query failed", zap.Error(err), zap.String("sql", query))
		return &Result{Success: false, Error: err.Error(), Duration: time.Since(start)}
	}
	res.Duration = time.Since(start)

	e.logger.Info("Query executed",
		zap.Int("rows", res.RowCount),
		zap.Bool("truncated", res.Truncated),
		zap.Duration("took", res.Duration),
	)
	return res
}

func (e *Executor) execute(ctx context.Context, query string) (*Result, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if e.cfg.ReadOnly {
		tx, txErr := e.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
		if txErr != nil {
			return nil, fmt.Errorf("begin read-only transaction: %w", txErr)
		}
		defer func() { _ = tx.Rollback() }()
		rows, err = tx.QueryContext(ctx, query)
	} else {
		rows, err = e.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return e.collect(rows)
}

func (e *Executor) collect(rows *sql.Rows) (*Result, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &Result{Success: true, Columns: cols, Rows: []Row{}}
	for rows.Next() {
		if len(res.Rows) == e.cfg.RowLimit {
			res.Truncated = true
			break
		}

		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = normalize(values[i])
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res.RowCount = len(res.Rows)
	if res.Truncated {
		e.logger.Warn("Result truncated at row limit", zap.Int("limit", e.cfg.RowLimit))
	}
	return res, nil
}

func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// Ping checks the analytics database is reachable.
func (e *Executor) Ping(ctx context.Context) error {
	return e.db.PingContext(ctx)
}
