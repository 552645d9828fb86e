package executor

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
)

func newMock(t *testing.T) (*Executor, sqlmock.Sqlmock, func(cfg Config) *Executor) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	build := func(cfg Config) *Executor { return New(db, cfg, zap.NewNop()) }
	return build(Config{}), mock, build
}

func TestExecuteSuccess(t *testing.T) {
	_, mock, build := newMock(t)
	ex := build(Config{RowLimit: 10})

	query := "SELECT counterparty_sector, COUNT(*) AS n FROM counterparty_new GROUP BY counterparty_sector;"
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(sqlmock.NewRows([]string{"counterparty_sector", "n"}).
			AddRow([]byte("Banking"), int64(3)).
			AddRow("Energy", int64(1)))

	res := ex.Execute(context.Background(), query)
	if !res.Success {
		t.Fatalf("Execute() failed: %s", res.Error)
	}
	if res.RowCount != 2 || res.Truncated || res.Empty() {
		t.Errorf("result = %+v", res)
	}
	if res.Columns[0] != "counterparty_sector" || res.Columns[1] != "n" {
		t.Errorf("columns = %v", res.Columns)
	}
	if got := res.Rows[0]["counterparty_sector"]; got != "Banking" {
		t.Errorf("bytes not converted: %#v", got)
	}
	if vals := res.Values(res.Rows[1]); vals[0] != "Energy" || vals[1] != int64(1) {
		t.Errorf("Values() = %v", vals)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestExecuteEmptyIsNotError(t *testing.T) {
	_, mock, build := newMock(t)
	ex := build(Config{})

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"a"}))

	res := ex.Execute(context.Background(), "SELECT a FROM t WHERE 1 = 0;")
	if !res.Success || !res.Empty() || res.Error != "" {
		t.Errorf("result = %+v", res)
	}
	if res.Rows == nil {
		t.Error("Rows should be an empty slice, not nil")
	}
}

func TestExecuteTruncatesAtLimit(t *testing.T) {
	_, mock, build := newMock(t)
	ex := build(Config{RowLimit: 2})

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).
		AddRow(1).AddRow(2).AddRow(3).AddRow(4))

	res := ex.Execute(context.Background(), "SELECT id FROM t;")
	if res.RowCount != 2 || !res.Truncated {
		t.Errorf("result = %+v", res)
	}
}

func TestExecuteExactLimitNotTruncated(t *testing.T) {
	_, mock, build := newMock(t)
	ex := build(Config{RowLimit: 2})

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))

	res := ex.Execute(context.Background(), "SELECT id FROM t;")
	if res.RowCount != 2 || res.Truncated {
		t.Errorf("result = %+v", res)
	}
}

func TestExecuteFailureCaptured(t *testing.T) {
	_, mock, build := newMock(t)
	ex := build(Config{})

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("Error 1054: Unknown column 'notional'"))

	res := ex.Execute(context.Background(), "SELECT notional FROM trade_new;")
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Error != "Error 1054: Unknown column 'notional'" {
		t.Errorf("Error = %q", res.Error)
	}
	if res.RowCount != 0 || len(res.Rows) != 0 {
		t.Errorf("failed result should carry no rows: %+v", res)
	}
}

func TestExecuteReadOnlyRollsBack(t *testing.T) {
	_, mock, build := newMock(t)
	ex := build(Config{ReadOnly: true})

	mock.ExpectBegin()
	mock.ExpectQuery("SHOW TABLES").WillReturnRows(sqlmock.NewRows([]string{"Tables_in_org_insights"}).AddRow("trade_new"))
	mock.ExpectRollback()

	res := ex.Execute(context.Background(), "SHOW TABLES;")
	if !res.Success || res.RowCount != 1 {
		t.Fatalf("result = %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestExecuteReadOnlyBeginFails(t *testing.T) {
	_, mock, build := newMock(t)
	ex := build(Config{ReadOnly: true})

	mock.ExpectBegin().WillReturnError(errors.New("connection lost"))

	res := ex.Execute(context.Background(), "SELECT 1;")
	if res.Success || res.Error == "" {
		t.Errorf("result = %+v", res)
	}
}

func TestDefaultRowLimit(t *testing.T) {
	ex, _, _ := newMock(t)
	if ex.cfg.RowLimit != DefaultRowLimit {
		t.Errorf("RowLimit = %d", ex.cfg.RowLimit)
	}
}
