package summary

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/tabprobe/internal/tabletest"
)

// TestDuckDBOracle compares numeric statistics and null and distinct counts
// with DuckDB aggregates.
func TestDuckDBOracle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping DuckDB oracle in short mode")
	}

	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	tbl := tabletest.Students(t, mem)
	defer tbl.Release()

	db := tabletest.OpenDuckDB(t)
	tabletest.LoadDuckDB(t, db, "students", tbl)

	report, err := Summarize(tbl)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	for _, name := range []string{"score", "age", "remark"} {
		t.Run(name, func(t *testing.T) {
			query := fmt.Sprintf(
				`SELECT min(%[1]s), max(%[1]s), avg(%[1]s), stddev_samp(%[1]s),
				        count(DISTINCT %[1]s), count(*) - count(%[1]s)
				 FROM students`, name)

			var (
				minV, maxV, mean, std sql.NullFloat64
				distinct, nulls       int64
			)
			if err := db.QueryRow(query).Scan(&minV, &maxV, &mean, &std, &distinct, &nulls); err != nil {
				t.Fatalf("oracle query failed: %v", err)
			}

			st, ok := report.Column(name)
			if !ok {
				t.Fatalf("no stats for %s", name)
			}
			floatEq(t, "Min", st.Min, nullable(minV))
			floatEq(t, "Max", st.Max, nullable(maxV))
			floatEq(t, "Mean", st.Mean, nullable(mean))
			floatEq(t, "StdDev", st.StdDev, nullable(std))
			if int64(st.Distinct) != distinct {
				t.Errorf("Distinct = %d, duckdb = %d", st.Distinct, distinct)
			}
			if int64(st.NullCount) != nulls {
				t.Errorf("NullCount = %d, duckdb = %d", st.NullCount, nulls)
			}
		})
	}
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
