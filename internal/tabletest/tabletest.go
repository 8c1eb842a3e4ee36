// Package tabletest holds fixtures shared by the engine package tests:
// sample tables and a DuckDB loader used as a SQL oracle.
package tabletest

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/hugr-lab/tabprobe/table"
)

// RowColumn is the DuckDB column recording each row's position in the source table.
const RowColumn = "_row"

// Students returns a small table with text, numeric, boolean and null-bearing
// columns. "remark" holds only nulls.
func Students(t testing.TB, mem memory.Allocator) *table.Table {
	t.Helper()

	tbl, err := table.New(
		[]string{"name", "grade", "score", "age", "passed", "city", "remark"},
		[][]any{
			{"Ann", "A", 91.5, 20, true, "Oslo", nil},
			{"Bob", "B", 78, 22, true, nil, nil},
			{"Cid", "A", 88, 21, true, "Rome", nil},
			{"Dee", "C", 64.25, 23, false, "Oslo", nil},
			{"Eve", "B", 81, 20, true, "Lima", nil},
			{"Fay", "A", 95, 22, true, nil, nil},
			{"Gus", nil, nil, 24, false, "Rome", nil},
			{"Hal", "B", 72.5, 21, true, "Oslo", nil},
		},
		table.WithAllocator(mem),
	)
	if err != nil {
		t.Fatalf("failed to build students table: %v", err)
	}
	return tbl
}

// Sequence returns a single numeric column "n" holding 0..n-1.
func Sequence(t testing.TB, mem memory.Allocator, n int) *table.Table {
	t.Helper()

	rows := make([][]any, n)
	for i := range rows {
		rows[i] = []any{i}
	}
	tbl, err := table.New([]string{"n"}, rows, table.WithAllocator(mem))
	if err != nil {
		t.Fatalf("failed to build sequence table: %v", err)
	}
	return tbl
}

// OpenDuckDB opens an in-memory DuckDB database closed at test cleanup.
func OpenDuckDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		t.Fatalf("DuckDB not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// LoadDuckDB copies tbl into a DuckDB table called name, adding RowColumn.
// Mixed columns are not loaded.
func LoadDuckDB(t testing.TB, db *sql.DB, name string, tbl *table.Table) {
	t.Helper()

	defs := []string{RowColumn + " BIGINT"}
	var cols []int
	for i, col := range tbl.Columns() {
		sqlType, ok := duckdbType(col, tbl.Schema().Field(i).Type)
		if !ok {
			continue
		}
		cols = append(cols, i)
		defs = append(defs, fmt.Sprintf("%q %s", col.Name, sqlType))
	}

	if _, err := db.Exec(fmt.Sprintf("CREATE TABLE %q (%s)", name, strings.Join(defs, ", "))); err != nil {
		t.Fatalf("failed to create DuckDB table: %v", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)+1), ", ")
	stmt, err := db.Prepare(fmt.Sprintf("INSERT INTO %q VALUES (%s)", name, placeholders))
	if err != nil {
		t.Fatalf("failed to prepare insert: %v", err)
	}
	defer stmt.Close()

	for r := 0; r < tbl.NumRows(); r++ {
		args := []any{int64(r)}
		for _, c := range cols {
			args = append(args, tbl.Value(c, r))
		}
		if _, err := stmt.Exec(args...); err != nil {
			t.Fatalf("failed to insert row %d: %v", r, err)
		}
	}
}

// QueryRows returns the source row positions matching where, in source order.
func QueryRows(t testing.TB, db *sql.DB, name, where string) []int {
	t.Helper()

	rows, err := db.Query(fmt.Sprintf("SELECT %s FROM %q WHERE %s ORDER BY %s", RowColumn, name, where, RowColumn))
	if err != nil {
		t.Fatalf("oracle query failed: %v", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var r int64
		if err := rows.Scan(&r); err != nil {
			t.Fatalf("failed to scan oracle row: %v", err)
		}
		out = append(out, int(r))
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("oracle rows failed: %v", err)
	}
	return out
}

func duckdbType(col table.Column, dt arrow.DataType) (string, bool) {
	switch col.Type {
	case table.TypeNumeric:
		if dt.ID() == arrow.INT64 {
			return "BIGINT", true
		}
		return "DOUBLE", true
	case table.TypeText:
		return "VARCHAR", true
	case table.TypeBoolean:
		return "BOOLEAN", true
	case table.TypeNull:
		return "INTEGER", true
	default:
		return "", false
	}
}
